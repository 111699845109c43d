// Package worker implements the single-threaded supervision loop that
// claims, runs, and retires one task at a time from a shared queue
// root.
//
// The loop has three levels:
//
//	Run          idle-poll: list queued, claim one, repeat
//	runClaimed   check-claim: read task file, run precondition,
//	             either release back to queued or promote to active
//	runActive    own-and-supervise: launch the command, watch for
//	             exit / external pause / external deletion / SIGTERM
//
// Ownership of a task is expressed entirely by which directory its
// file sits in (see package queue); this package never holds any
// in-memory state that queue.Exists and queue.ListSorted couldn't
// reconstruct from a cold start. That is what lets two independent
// worker processes race for the same task file safely — the loser's
// rename simply fails.
package worker

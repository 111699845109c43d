/*
Package queue implements the on-disk contract shared by submitters and
workers: a queue root directory holding six state subdirectories, task
files named by a monotonic id, and rename-based state transitions. No
other metadata exists — the presence of a task file in a state directory
IS the state.

# Layout

	<root>/queued/<task_id>     awaiting selection
	<root>/checking/<task_id>   precondition being evaluated
	<root>/active/<task_id>     command running
	<root>/paused/<task_id>     command suspended (SIGSTOP'd)
	<root>/done/<task_id>       completed successfully
	<root>/failed/<task_id>     completed with non-zero exit

# Synchronization

Every transition is a single os.Rename within root, which POSIX
guarantees is atomic. That is the package's entire concurrency story:
no locks, no leases, no heartbeats. A rename that reports "source does
not exist" means a peer worker (or an operator) moved the file first —
ErrLostRace, not a real error.
*/
package queue

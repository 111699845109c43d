package queue

import (
	"errors"
	"fmt"
	"os"
)

// ErrLostRace is returned by Claim (and any other rename helper) when the
// source task file is already gone: a peer worker, or an operator,
// renamed or removed it first. It is not an error condition the caller
// should log loudly — spec.md §5 treats rename-atomicity as the sole
// synchronization primitive, and losing a race is the expected outcome
// for every worker but one.
var ErrLostRace = errors.New("queue: lost rename race")

// move renames a task file between two state directories, translating a
// "source does not exist" OS error into ErrLostRace.
func move(root string, from, to State, taskID string) error {
	src := Path(root, from, taskID)
	dst := Path(root, to, taskID)
	if err := os.Rename(src, dst); err != nil {
		if os.IsNotExist(err) {
			return ErrLostRace
		}
		return fmt.Errorf("queue: rename %s -> %s: %w", from, to, err)
	}
	return nil
}

// Claim attempts to move a task from queued to checking. At most one
// worker observes success for a given task id (spec.md §4.3 step 2,
// §8 invariant 3).
func Claim(root, taskID string) error {
	return move(root, Queued, Checking, taskID)
}

// ReleaseToQueued moves a task back to queued from whichever state it is
// currently known to occupy (checking, active or paused). Used both for routine
// precondition failure and for every worker-initiated cancellation path.
func ReleaseToQueued(root string, from State, taskID string) error {
	return move(root, from, Queued, taskID)
}

// Promote moves a task from checking to active once its precondition has
// passed.
func Promote(root, taskID string) error {
	return move(root, Checking, Active, taskID)
}

// Complete moves a task from active to done.
func Complete(root, taskID string) error {
	return move(root, Active, Done, taskID)
}

// Fail moves a task from a given state (active, or checking for a
// malformed task file) to failed.
func Fail(root string, from State, taskID string) error {
	return move(root, from, Failed, taskID)
}

package worker

import (
	"os"
	"os/signal"
	"syscall"
)

// notifyTerm arms a channel-based SIGTERM receiver. Go's os/signal
// delivers to a channel outside of any signal-handler context, so —
// unlike the Python original this supersedes — there is no
// async-signal-safety concern in mutating queue state in response; the
// mutation happens in ordinary goroutine code that merely woke up
// because the channel fired (spec.md §9 redesign note).
func notifyTerm() (chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM)
	return ch, func() { signal.Stop(ch) }
}

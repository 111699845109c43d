package metrics

import (
	"time"

	"github.com/ranjanr/roach/pkg/queue"
)

// Collector periodically scans a queue root's state directories and
// updates QueueDepth, the one gauge that can't be driven from an event
// (queue.ListSorted has no subscribe primitive).
type Collector struct {
	queueRoot string
	interval  time.Duration
	stopCh    chan struct{}
}

// NewCollector creates a Collector for queueRoot, scanning every
// interval once started.
func NewCollector(queueRoot string, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Collector{
		queueRoot: queueRoot,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins collecting in a background goroutine.
func (c *Collector) Start() {
	ticker := time.NewTicker(c.interval)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop halts collection.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	for _, s := range queue.States {
		ids, err := queue.ListSorted(c.queueRoot, s)
		if err != nil {
			continue
		}
		QueueDepth.WithLabelValues(c.queueRoot, string(s)).Set(float64(len(ids)))
	}
}

package seglist

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAppend is called after each append operation.
	// duration is the total time taken, err is nil if successful.
	RecordAppend(duration time.Duration, err error)

	// RecordRead is called after each element read issued against the
	// store (by Get, MustGet, Pop and Slice).
	RecordRead(duration time.Duration, err error)

	// RecordWrite is called after each element write issued against the
	// store (by Append, Set and Load).
	RecordWrite(duration time.Duration, err error)

	// RecordPop is called after each pop operation.
	RecordPop(duration time.Duration, err error)

	// RecordLoad is called after each bulk load.
	// count is the number of elements written, duration the total time.
	RecordLoad(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAppend(time.Duration, error)    {}
func (NoopMetricsCollector) RecordRead(time.Duration, error)      {}
func (NoopMetricsCollector) RecordWrite(time.Duration, error)     {}
func (NoopMetricsCollector) RecordPop(time.Duration, error)       {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AppendCount  atomic.Int64
	AppendErrors atomic.Int64
	ReadCount    atomic.Int64
	ReadErrors   atomic.Int64
	WriteCount   atomic.Int64
	WriteErrors  atomic.Int64
	PopCount     atomic.Int64
	PopErrors    atomic.Int64
	LoadCount    atomic.Int64
	LoadElements atomic.Int64
	LoadErrors   atomic.Int64
}

// RecordAppend implements MetricsCollector.
func (c *BasicMetricsCollector) RecordAppend(_ time.Duration, err error) {
	c.AppendCount.Add(1)
	if err != nil {
		c.AppendErrors.Add(1)
	}
}

// RecordRead implements MetricsCollector.
func (c *BasicMetricsCollector) RecordRead(_ time.Duration, err error) {
	c.ReadCount.Add(1)
	if err != nil {
		c.ReadErrors.Add(1)
	}
}

// RecordWrite implements MetricsCollector.
func (c *BasicMetricsCollector) RecordWrite(_ time.Duration, err error) {
	c.WriteCount.Add(1)
	if err != nil {
		c.WriteErrors.Add(1)
	}
}

// RecordPop implements MetricsCollector.
func (c *BasicMetricsCollector) RecordPop(_ time.Duration, err error) {
	c.PopCount.Add(1)
	if err != nil {
		c.PopErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (c *BasicMetricsCollector) RecordLoad(count int, _ time.Duration, err error) {
	c.LoadCount.Add(1)
	c.LoadElements.Add(int64(count))
	if err != nil {
		c.LoadErrors.Add(1)
	}
}

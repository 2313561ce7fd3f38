package profiler

import (
	"time"

	"go.uber.org/zap"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*profilerImpl)

// WithInterval sets how often a report is produced. Non-positive values keep the 1 second default.
//
// Parameters:
//   - interval: the report interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *profilerImpl) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces time.Now as the profiler's time source.
//
// Parameters:
//   - clock: function returning the current time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(clock func() time.Time) ProfilerBuilderOption {
	return func(p *profilerImpl) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLogger sets the logger reports are written to.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) ProfilerBuilderOption {
	return func(p *profilerImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithReportHandler registers a function called with every report on the worker goroutine.
//
// Parameters:
//   - handler: the report consumer
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithReportHandler(handler func(Report)) ProfilerBuilderOption {
	return func(p *profilerImpl) {
		p.handler = handler
	}
}

// WithMemStats enables or disables heap statistics in reports.
//
// Parameters:
//   - enabled: true to read runtime memory statistics for each report
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithMemStats(enabled bool) ProfilerBuilderOption {
	return func(p *profilerImpl) {
		p.readMemStats = enabled
	}
}

// WithMetrics publishes frame counts, frame times and reports to m.
//
// Parameters:
//   - m: the Prometheus metrics set
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithMetrics(m *Metrics) ProfilerBuilderOption {
	return func(p *profilerImpl) {
		p.metrics = m
	}
}

package seglist

type options struct {
	logger  *Logger
	metrics MetricsCollector
}

// Option configures list attach behavior.
//
// Options primarily exist to avoid exploding the API surface with
// constructor variants.
type Option func(*options)

// WithLogger configures the logger used by list operations.
//
// If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures the metrics collector notified by list
// operations.
//
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metrics = collector
	}
}

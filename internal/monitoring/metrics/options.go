package metrics

type MetricOption func(opts *MetricOpts)

type MetricOpts struct {
	Namespace   string
	ConstLabels Labels
	Description string
}

// WithNamespace prefixes the metric name with namespace and an underscore.
func WithNamespace(namespace string) MetricOption {
	return func(opts *MetricOpts) {
		opts.Namespace = namespace
	}
}

func WithDescription(description string) MetricOption {
	return func(opts *MetricOpts) {
		opts.Description = description
	}
}

func WithConstLabels(labels Labels) MetricOption {
	return func(opts *MetricOpts) {
		opts.ConstLabels = labels
	}
}

// Apply folds opts into a MetricOpts value.
func Apply(opts []MetricOption) MetricOpts {
	var options MetricOpts
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

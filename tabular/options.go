package tabular

import "github.com/hupe1980/kmeans/internal/resource"

type options struct {
	columns    []string
	comma      rune
	controller *resource.Controller
}

// Option configures Read and Load.
type Option func(*options)

func applyOptions(opts []Option) *options {
	o := &options{comma: ','}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithColumns selects the feature columns by header name, in the given order.
func WithColumns(names ...string) Option {
	return func(o *options) {
		o.columns = names
	}
}

// WithComma sets the field delimiter. Default: ','.
func WithComma(r rune) Option {
	return func(o *options) {
		o.comma = r
	}
}

// WithResourceController throttles Load reads to the controller's IO limit.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

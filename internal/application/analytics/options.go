package analytics

import "time"

type options struct {
	now func() time.Time
}

// Option configura os casos de uso do pacote.
type Option func(*options)

// WithClock substitui o relógio (testes).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

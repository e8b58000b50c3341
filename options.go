package halftone

// Option configures a Filter during creation.
//
// Example:
//
//	cfg := halftone.DefaultConfig()
//	cfg.Pattern.Kind = halftone.KindDiamond
//	f := halftone.New(halftone.WithConfig(cfg), halftone.WithWorkers(4))
type Option func(*options)

type options struct {
	cfg     Config
	workers int
	vocab   *Vocab
}

func defaultOptions() options {
	return options{
		cfg:     DefaultConfig(),
		workers: 0, // GOMAXPROCS
	}
}

// WithConfig sets the initial configuration.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.cfg = c
	}
}

// WithWorkers limits how many row bands a pass processes at once.
// Zero or a negative value uses GOMAXPROCS; 1 runs every pass on the
// calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithVocab sets the parameter schema, e.g. one built for another language
// with NewVocab.
func WithVocab(v *Vocab) Option {
	return func(o *options) {
		o.vocab = v
	}
}

package series

import "github.com/sgostarter/i/l"

type Options struct {
	cfg    *Config
	logger l.Wrapper
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{}
	for _, o := range option {
		o(opts)
	}

	if opts.cfg == nil {
		opts.cfg = DefaultConfig()
	}

	if opts.logger == nil {
		opts.logger = l.NewNopLoggerWrapper()
	}

	return opts
}

// ConfigOption shares cfg with the series; the config must not change while series use it.
func ConfigOption(cfg *Config) Option {
	return func(o *Options) {
		if cfg != nil {
			_ = cfg.normalize()
		}

		o.cfg = cfg
	}
}

func LoggerOption(logger l.Wrapper) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

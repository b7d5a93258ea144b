package cmd

// Options holds the shared command-line options for the reposcore CLI.
type Options struct {
	Format    string
	Verbosity int
	Workers   int
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI

	// Significance rule overrides
	Org              string
	MinContributions int
	MinRepositories  int

	// Profiling options
	CPUProfile string // Write CPU profile to file
	MemProfile string // Write memory profile to file
	Trace      string // Write execution trace to file
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Workers: 10,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json, markdown).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithWorkers sets the number of concurrent classification workers.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		o.Workers = workers
	}
}

// WithOrg sets the organization substring for the significance rule.
func WithOrg(org string) Option {
	return func(o *Options) {
		o.Org = org
	}
}

// WithMinContributions sets the contribution threshold for the significance rule.
func WithMinContributions(n int) Option {
	return func(o *Options) {
		o.MinContributions = n
	}
}

// WithMinRepositories sets the repository-count threshold for the significance rule.
func WithMinRepositories(n int) Option {
	return func(o *Options) {
		o.MinRepositories = n
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}

// WithCPUProfile sets the CPU profile output file.
func WithCPUProfile(path string) Option {
	return func(o *Options) {
		o.CPUProfile = path
	}
}

// WithMemProfile sets the memory profile output file.
func WithMemProfile(path string) Option {
	return func(o *Options) {
		o.MemProfile = path
	}
}

// WithTrace sets the execution trace output file.
func WithTrace(path string) Option {
	return func(o *Options) {
		o.Trace = path
	}
}

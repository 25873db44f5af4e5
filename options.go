package emojiextract

import "log/slog"

// Option configures an Extractor during creation.
//
// Example:
//
//	x := emojiextract.New(font,
//		emojiextract.WithOutputDir("public/emojis"),
//		emojiextract.WithSizes(32, 64),
//	)
type Option func(*options)

// options holds optional configuration for an Extractor.
type options struct {
	outputDir string
	sizes     []int
	specs     []Spec
	logger    *slog.Logger
}

// defaultOptions returns the built-in table, sizes and the current directory.
func defaultOptions() options {
	return options{
		outputDir: ".",
		sizes:     DefaultSizes(),
		specs:     DefaultSpecs(),
		logger:    nil, // Logger() at run time
	}
}

// WithOutputDir sets the directory the <size>/<name>.png tree is written to.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.outputDir = dir
	}
}

// WithSizes sets the output pixel sizes.
func WithSizes(sizes ...int) Option {
	return func(o *options) {
		o.sizes = sizes
	}
}

// WithSpecs replaces the built-in emoji table.
func WithSpecs(specs ...Spec) Option {
	return func(o *options) {
		o.specs = specs
	}
}

// WithLogger sets a logger for this Extractor only, overriding the
// package-wide logger from SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

package openmwmm

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/openmwmm/pkg/constants"
	"github.com/agentstation/openmwmm/pkg/errors"
)

// Options configure a Manager.
type options struct {
	configFile  string          // path to openmw.cfg
	modsDir     string          // default install destination
	neverMerge  []string        // plugin names excluded from merging
	mergeOutput string          // default merged plugin path
	logger      *zerolog.Logger // optional logger override
}

func defaultOptions() *options {
	return &options{
		mergeOutput: constants.DefaultMergedName,
	}
}

// Option is a function that configures a Manager.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns manager options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithConfigFile sets the openmw.cfg path the manager operates on.
func WithConfigFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "configFile",
				Message: "cannot be empty",
			}
		}
		o.configFile = path
		return nil
	}
}

// WithModsDir sets the default destination directory for mod installs.
func WithModsDir(path string) Option {
	return func(o *options) error {
		o.modsDir = path
		return nil
	}
}

// WithNeverMerge adds plugin names that are skipped when merging
// leveled lists.
func WithNeverMerge(names ...string) Option {
	return func(o *options) error {
		o.neverMerge = append(o.neverMerge, names...)
		return nil
	}
}

// WithMergeOutput sets the default path for the merged plugin.
func WithMergeOutput(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "mergeOutput",
				Message: "cannot be empty",
			}
		}
		o.mergeOutput = path
		return nil
	}
}

// WithLogger sets the logger used by the manager.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

package migration

import (
	"github.com/spf13/afero"

	"github.com/TykTechnologies/servicemigration/config"
	logger "github.com/TykTechnologies/servicemigration/log"
)

var log = logger.Get().WithPrefix("migration")

// Option configures a ServiceContext.
type Option func(*options)

type options struct {
	fs               afero.Fs
	conf             *config.Config
	log              logger.Logger
	validateSchema   *bool
	validateOnCommit bool
}

// WithFs sets the file system documents are read from and written to.
// The OS file system is used by default.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithConfig sets the configuration holding the fallback locations. Without
// it the configuration is read from the environment on every Load and
// Commit call.
func WithConfig(conf *config.Config) Option {
	return func(o *options) {
		o.conf = conf
	}
}

// WithLogger replaces the package logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithSchemaValidation toggles the document schema check done at load,
// overriding the configured ValidateSchema value.
func WithSchemaValidation(enabled bool) Option {
	return func(o *options) {
		o.validateSchema = &enabled
	}
}

// WithValidateOnCommit runs the structural rule set before every commit.
func WithValidateOnCommit(enabled bool) Option {
	return func(o *options) {
		o.validateOnCommit = enabled
	}
}

func newOptions(opts []Option) options {
	o := options{
		fs:  afero.NewOsFs(),
		log: log,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// config returns the explicit configuration, or the one currently set in
// the environment.
func (o *options) config() (*config.Config, error) {
	if o.conf != nil {
		return o.conf, nil
	}
	return config.FromEnv()
}

func (o *options) schemaValidation(conf *config.Config) bool {
	if o.validateSchema != nil {
		return *o.validateSchema
	}
	return conf.ValidateSchema
}

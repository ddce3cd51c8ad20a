// Package config holds the externally configured fallback locations of the
// migration input and output documents.
//
// The platform hands a migration script its document through the
// MIGRATE_INPUTFILE and MIGRATE_OUTPUTFILE environment variables. Values
// are resolved once, when FromEnv or Load is called, and passed explicitly
// to the migration context from then on.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/afero"

	logger "github.com/TykTechnologies/servicemigration/log"
)

const envPrefix = "MIGRATE"

var log = logger.Get().WithPrefix("config")

// Config is the SDK configuration.
type Config struct {
	// InputFile is the fallback location of the document to load.
	InputFile string `json:"input_file"`
	// OutputFile is the fallback location the document is committed to.
	OutputFile string `json:"output_file"`
	// LogLevel sets the SDK log level: debug, info, warn or error.
	LogLevel string `json:"log_level"`
	// ValidateSchema checks loaded documents against the embedded schema.
	ValidateSchema bool `json:"validate_schema"`
}

// Default is the configuration used when nothing is configured.
var Default = Config{
	LogLevel:       "info",
	ValidateSchema: true,
}

// FillEnv overrides conf with values from MIGRATE_* environment variables.
func FillEnv(conf *Config) error {
	return envconfig.Process(envPrefix, conf)
}

// FromEnv returns the default configuration filled from the environment.
func FromEnv() (*Config, error) {
	conf := Default
	if err := FillEnv(&conf); err != nil {
		return nil, fmt.Errorf("failed to process config env vars: %w", err)
	}
	return &conf, nil
}

// Load will load a configuration file, trying each of the paths given and
// using the first one that exists. Environment variables take precedence
// over file values. If none of the paths exist the defaults are used.
//
// An error will be returned only if any of the paths existed but was not a
// valid config file.
func Load(fs afero.Fs, paths []string, conf *Config) error {
	*conf = Default

	for _, path := range paths {
		data, err := afero.ReadFile(fs, path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, conf); err != nil {
			return fmt.Errorf("couldn't unmarshal config: %w", err)
		}
		log.Debugf("Loaded configuration from %s", path)
		break
	}

	if err := FillEnv(conf); err != nil {
		return fmt.Errorf("failed to process config env vars: %w", err)
	}
	return nil
}

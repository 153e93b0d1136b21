package cufile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rapidsai/cufile-go/pkg/cufile/logging"
)

// Config carries the settings of the native driver and the defaults used by
// handle kinds.
type Config struct {
	// DriverConfigPath points libcufile at a cufile.json. Empty keeps the
	// library default.
	DriverConfigPath string `yaml:"driver_config_path"`

	// ODirect makes OpenFile add O_DIRECT unless overridden per call.
	ODirect bool `yaml:"o_direct"`

	// FileMode is the permission used when OpenFile creates a file.
	FileMode os.FileMode `yaml:"file_mode"`

	// LogLevel is one of debug, info, warn, error. The library itself only
	// validates it; the CLI uses it to build its logger.
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{FileMode: 0o644, LogLevel: "info"}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidArgument, err)
	}
	if c.FileMode&^os.ModePerm != 0 {
		return fmt.Errorf("%w: file_mode %o has non-permission bits", ErrInvalidArgument, uint32(c.FileMode))
	}
	return nil
}

// Package cmd implements the cufile-go command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rapidsai/cufile-go/pkg/cufile"
	"github.com/rapidsai/cufile-go/pkg/cufile/logging"
)

// DriverFunc builds the driver used by commands that touch the native
// subsystem.
type DriverFunc func(cufile.Config) cufile.Driver

func nativeDriver(cfg cufile.Config) cufile.Driver { return cufile.NewNativeDriver(cfg) }

type app struct {
	newDriver DriverFunc
	v         *viper.Viper
	cfgFile   string
	verbose   bool

	cfg    cufile.Config
	logger *zap.Logger
}

// Execute runs the command line against the native driver.
func Execute() error {
	root := NewRootCmd(nil)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// NewRootCmd builds the command tree. A nil newDriver selects the native
// driver.
func NewRootCmd(newDriver DriverFunc) *cobra.Command {
	if newDriver == nil {
		newDriver = nativeDriver
	}
	a := &app{newDriver: newDriver, v: viper.New()}

	root := &cobra.Command{
		Use:           "cufile-go",
		Short:         "Inspect the cuFile GPU-direct storage driver",
		Long:          `cufile-go probes the native cuFile driver and registers files with it, reporting what the driver sees.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.cufile-go/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newVersionCmd(), newProbeCmd(a), newStatCmd(a))
	return root
}

// load reads the config file and CUFILE_ environment over the library
// defaults and builds the logger.
func (a *app) load() error {
	def := cufile.DefaultConfig()
	a.v.SetDefault("driver_config_path", def.DriverConfigPath)
	a.v.SetDefault("o_direct", def.ODirect)
	a.v.SetDefault("file_mode", uint32(def.FileMode))
	a.v.SetDefault("log_level", def.LogLevel)

	a.v.SetEnvPrefix("cufile")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home + "/.cufile-go")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	a.cfg = cufile.Config{
		DriverConfigPath: a.v.GetString("driver_config_path"),
		ODirect:          a.v.GetBool("o_direct"),
		FileMode:         os.FileMode(a.v.GetUint32("file_mode")),
		LogLevel:         a.v.GetString("log_level"),
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(a.cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc = zap.NewDevelopmentConfig()
	} else if level != "" {
		lvl, err := zapcore.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("%w: log_level %q", cufile.ErrInvalidArgument, level)
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zc.Build()
}

func (a *app) subsystem() (*cufile.Subsystem, error) {
	return cufile.NewSubsystem(a.newDriver(a.cfg),
		cufile.WithConfig(a.cfg),
		cufile.WithLogger(logging.NewZap(a.logger)),
	)
}

// initialize runs the gate and maps ErrNotBuilt to a readable message.
func (a *app) initialize(cmd *cobra.Command) (*cufile.Subsystem, error) {
	sub, err := a.subsystem()
	if err != nil {
		return nil, err
	}
	if err := sub.EnsureInitialized(cmd.Context()); err != nil {
		if errors.Is(err, cufile.ErrNotBuilt) {
			return nil, fmt.Errorf("native driver unavailable: %w", err)
		}
		return nil, err
	}
	return sub, nil
}

package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/simonhull/sequel/internal/build"
	"github.com/simonhull/sequel/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configFlagName  = "config"
	verboseFlagName = "verbose"
	rootFlagName    = "root"
	dryRunFlagName  = "dry-run"
	outFlagName     = "out"
	forceFlagName   = "force"

	// configKeyAnnotation marks a flag that overrides a config key.
	configKeyAnnotation = "sequel_config_key"
	// skipConfigAnnotation marks a command that runs without loading sequel.yaml.
	skipConfigAnnotation = "sequel_skip_config"
)

var (
	// current holds the configuration loaded for the running command.
	current *config.Config

	globalLogger = slog.Default()
	logWriter    *lumberjack.Logger
)

// withConfigKey records that flag overrides key once the config is loaded.
func withConfigKey(flags *pflag.FlagSet, flag, key string) {
	cobra.CheckErr(flags.SetAnnotation(flag, configKeyAnnotation, []string{key}))
}

// bindFlagToConfig wires a Cobra flag to a Viper key so an explicit flag wins
// over config and env values.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) error {
	if flag == nil {
		return fmt.Errorf("flag for config key %q not found", key)
	}
	return v.BindPFlag(key, flag)
}

// loadSettings reads configuration for cmd, binding every annotated flag.
func loadSettings(cmd *cobra.Command, file string) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys := f.Annotations[configKeyAnnotation]
		if len(keys) == 0 || bindErr != nil {
			return
		}
		bindErr = bindFlagToConfig(v, f, keys[0])
	})
	if bindErr != nil {
		return nil, bindErr
	}

	cfg, err := config.Load(v, resolveConfigFile(cmd, file, v.GetString("project.root")))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// resolveConfigFile places a relative default config path in the project
// root. An explicit --config is used as given.
func resolveConfigFile(cmd *cobra.Command, file, root string) string {
	if cmd.Flags().Changed(configFlagName) || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(root, file)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the global slog logger at a rotating file in the
// project root. Verbose forces Debug.
func configureLogger(root string, cfg config.LogConfig, verbose bool) {
	logLevel := parseSlogLevel(cfg.Level, slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	if logWriter != nil {
		_ = logWriter.Close()
	}
	logWriter = &lumberjack.Logger{
		Filename:   filepath.Join(root, cfg.Filename),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// projectFs returns a filesystem rooted at the project root.
func projectFs(cfg *config.Config) (afero.Fs, error) {
	root, err := filepath.Abs(cfg.Project.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), root), nil
}

func newBuilder(cfg *config.Config, opts build.Options) (*build.Builder, error) {
	fsys, err := projectFs(cfg)
	if err != nil {
		return nil, err
	}
	return build.New(fsys, opts, globalLogger), nil
}

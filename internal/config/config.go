// Package config loads sequel.yaml. Values come from, in increasing
// precedence: built-in defaults, the config file, SEQUEL_* environment
// variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/simonhull/sequel/internal/build"
	"github.com/simonhull/sequel/internal/discovery"
	"github.com/simonhull/sequel/internal/pathname"
	"github.com/simonhull/sequel/internal/pysource"
	"github.com/simonhull/sequel/internal/stage"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file looked up in the project root.
	FileName = "sequel.yaml"

	// EnvPrefix prefixes environment overrides, e.g. SEQUEL_OUTPUT_DIR.
	EnvPrefix = "SEQUEL"
)

// Config represents sequel.yaml
type Config struct {
	Project ProjectConfig `yaml:"project" mapstructure:"project"`
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Library LibraryConfig `yaml:"library" mapstructure:"library"`
	Support SupportConfig `yaml:"support" mapstructure:"support"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Routes  RoutesConfig  `yaml:"routes" mapstructure:"routes"`
	ORM     ORMConfig     `yaml:"orm" mapstructure:"orm"`
	Runtime RuntimeConfig `yaml:"runtime" mapstructure:"runtime"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ProjectConfig locates the project
type ProjectConfig struct {
	Root string `yaml:"root" mapstructure:"root"`
}

// SourceConfig describes the input tree, relative to the project root
type SourceConfig struct {
	Dir            string   `yaml:"dir" mapstructure:"dir"`
	API            string   `yaml:"api" mapstructure:"api"`       // relative to Dir
	Models         string   `yaml:"models" mapstructure:"models"` // relative to Dir
	Extension      string   `yaml:"extension" mapstructure:"extension"`
	Ignore         []string `yaml:"ignore" mapstructure:"ignore"`
	IgnorePatterns []string `yaml:"ignore_patterns" mapstructure:"ignore_patterns"`
	IncludeHidden  bool     `yaml:"include_hidden" mapstructure:"include_hidden"`
}

// LibraryConfig describes the support library copied into the output
type LibraryConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Package string `yaml:"package" mapstructure:"package"`
}

// SupportConfig lists files copied into the output root
type SupportConfig struct {
	Files []stage.SupportFile `yaml:"files" mapstructure:"files"`
}

// OutputConfig describes the generated tree
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	Src        string `yaml:"src" mapstructure:"src"`
	Entrypoint string `yaml:"entrypoint" mapstructure:"entrypoint"`
}

// RoutesConfig controls route detection
type RoutesConfig struct {
	Marker            string `yaml:"marker" mapstructure:"marker"`
	IncludeAPISegment bool   `yaml:"include_api_segment" mapstructure:"include_api_segment"`
}

// ORMConfig names the document base class
type ORMConfig struct {
	Module string `yaml:"module" mapstructure:"module"`
	Base   string `yaml:"base" mapstructure:"base"`
}

// RuntimeConfig holds values baked into the generated code
type RuntimeConfig struct {
	DatabaseEnv string `yaml:"database_env" mapstructure:"database_env"`
}

// LogConfig configures the rotating diagnostic log
type LogConfig struct {
	Filename   string `yaml:"filename" mapstructure:"filename"`
	Level      string `yaml:"level" mapstructure:"level"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// Default returns the conventional layout
func Default() *Config {
	return &Config{
		Project: ProjectConfig{Root: "."},
		Source: SourceConfig{
			Dir:            "src",
			API:            "api",
			Models:         "models/beanie",
			Extension:      ".py",
			Ignore:         []string{"__pycache__", ".venv", "venv", ".git", "node_modules", ".mypy_cache", ".pytest_cache"},
			IgnorePatterns: []string{},
		},
		Library: LibraryConfig{Dir: "lib", Package: "sequel"},
		Support: SupportConfig{Files: []stage.SupportFile{
			{From: "Dockerfile", To: "Dockerfile"},
			{From: "src/requirements.txt", To: "requirements.txt"},
		}},
		Output:  OutputConfig{Dir: "dist", Src: "src", Entrypoint: "main.py"},
		Routes:  RoutesConfig{Marker: "route.py"},
		ORM:     ORMConfig{Module: "beanie", Base: "Document"},
		Runtime: RuntimeConfig{DatabaseEnv: "MONGODB_CONN_STRING"},
		Log: LogConfig{
			Filename:   ".sequel.log",
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
	}
}

// SetDefaults registers every default with v and enables environment overrides.
func SetDefaults(v *viper.Viper) {
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("project.root", d.Project.Root)
	v.SetDefault("source.dir", d.Source.Dir)
	v.SetDefault("source.api", d.Source.API)
	v.SetDefault("source.models", d.Source.Models)
	v.SetDefault("source.extension", d.Source.Extension)
	v.SetDefault("source.ignore", d.Source.Ignore)
	v.SetDefault("source.ignore_patterns", d.Source.IgnorePatterns)
	v.SetDefault("source.include_hidden", d.Source.IncludeHidden)
	v.SetDefault("library.dir", d.Library.Dir)
	v.SetDefault("library.package", d.Library.Package)
	v.SetDefault("support.files", d.Support.Files)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.src", d.Output.Src)
	v.SetDefault("output.entrypoint", d.Output.Entrypoint)
	v.SetDefault("routes.marker", d.Routes.Marker)
	v.SetDefault("routes.include_api_segment", d.Routes.IncludeAPISegment)
	v.SetDefault("orm.module", d.ORM.Module)
	v.SetDefault("orm.base", d.ORM.Base)
	v.SetDefault("runtime.database_env", d.Runtime.DatabaseEnv)
	v.SetDefault("log.filename", d.Log.Filename)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
}

// Load reads the config file into v, if it exists, and decodes the merged
// settings. An empty file means FileName in the working directory.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file == "" {
		file = FileName
	}
	v.SetConfigFile(file)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations that cannot produce a build.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"source.dir", c.Source.Dir},
		{"source.extension", c.Source.Extension},
		{"library.dir", c.Library.Dir},
		{"library.package", c.Library.Package},
		{"output.dir", c.Output.Dir},
		{"output.entrypoint", c.Output.Entrypoint},
		{"routes.marker", c.Routes.Marker},
		{"orm.module", c.ORM.Module},
		{"orm.base", c.ORM.Base},
		{"runtime.database_env", c.Runtime.DatabaseEnv},
	}

	var errs []error
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", r.key))
		}
	}

	if strings.ContainsAny(c.Routes.Marker, `/\`) {
		errs = append(errs, fmt.Errorf("routes.marker %q must be a file name", c.Routes.Marker))
	}

	out := path.Clean(filepathSlash(c.Output.Dir))
	src := path.Clean(filepathSlash(c.Source.Dir))
	lib := path.Clean(filepathSlash(c.Library.Dir))
	switch {
	case out == "." || out == "/" || out == src || out == lib:
		errs = append(errs, fmt.Errorf("output.dir %q would overwrite project files", c.Output.Dir))
	case pathname.Within(out, src), pathname.Within(out, lib):
		errs = append(errs, fmt.Errorf("output.dir %q must not be inside source.dir or library.dir", c.Output.Dir))
	case pathname.Within(src, out), pathname.Within(lib, out):
		errs = append(errs, fmt.Errorf("output.dir %q must not contain source.dir or library.dir", c.Output.Dir))
	}

	for i, f := range c.Support.Files {
		if f.From == "" || f.To == "" {
			errs = append(errs, fmt.Errorf("support.files[%d] needs both from and to", i))
		}
	}

	return errors.Join(errs...)
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// BuildOptions maps the config onto the build pipeline. Paths are relative
// to the project root.
func (c *Config) BuildOptions() build.Options {
	return build.Options{
		Discovery: discovery.Options{
			SourceDir:         c.Source.Dir,
			APIDir:            c.Source.API,
			ModelsDir:         c.Source.Models,
			Extension:         c.Source.Extension,
			Marker:            c.Routes.Marker,
			IgnoreDirs:        c.Source.Ignore,
			IgnorePatterns:    c.Source.IgnorePatterns,
			IncludeHidden:     c.Source.IncludeHidden,
			IncludeAPISegment: c.Routes.IncludeAPISegment,
			Classifier:        pysource.Classifier{Module: c.ORM.Module, Base: c.ORM.Base},
		},
		Stage: stage.Options{
			OutputDir:    c.Output.Dir,
			OutputSrc:    c.Output.Src,
			LibraryDir:   c.Library.Dir,
			Package:      c.Library.Package,
			SupportFiles: c.Support.Files,
		},
		Entrypoint:  c.Output.Entrypoint,
		DatabaseEnv: c.Runtime.DatabaseEnv,
	}
}

// Save writes cfg to file as YAML
func Save(file string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

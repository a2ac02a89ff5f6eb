package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/sequel/internal/stage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, file string) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v, file)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := load(t, filepath.Join(t.TempDir(), FileName))

	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Output.Dir = "build"
	cfg.Library.Package = "platform"
	cfg.Routes.IncludeAPISegment = true
	cfg.Support.Files = []stage.SupportFile{{From: "deploy/Dockerfile", To: "Dockerfile"}}
	require.NoError(t, Save(file, cfg))

	got := load(t, file)
	assert.Equal(t, cfg, got)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SEQUEL_OUTPUT_DIR", "out")
	t.Setenv("SEQUEL_RUNTIME_DATABASE_ENV", "MONGO_URI")

	cfg := load(t, filepath.Join(t.TempDir(), FileName))
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "MONGO_URI", cfg.Runtime.DatabaseEnv)
}

func TestLoad_InvalidYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(file, []byte("output: [unclosed\n"), 0644))

	v := viper.New()
	SetDefaults(v)
	_, err := Load(v, file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty source dir", func(c *Config) { c.Source.Dir = "" }, "source.dir must not be empty"},
		{"empty package", func(c *Config) { c.Library.Package = " " }, "library.package must not be empty"},
		{"marker with separator", func(c *Config) { c.Routes.Marker = "api/route.py" }, "must be a file name"},
		{"output is project root", func(c *Config) { c.Output.Dir = "." }, "would overwrite project files"},
		{"output is source dir", func(c *Config) { c.Output.Dir = "./src" }, "would overwrite project files"},
		{"output is library", func(c *Config) { c.Output.Dir = "lib/" }, "would overwrite project files"},
		{"output inside source dir", func(c *Config) { c.Output.Dir = "src/dist" }, "must not be inside source.dir"},
		{"output inside library", func(c *Config) { c.Output.Dir = "./lib/build" }, "must not be inside source.dir"},
		{"output contains source dir", func(c *Config) { c.Source.Dir = "dist/src" }, "must not contain source.dir"},
		{"sibling with shared prefix", func(c *Config) { c.Output.Dir = "src-dist" }, ""},
		{"incomplete support file", func(c *Config) { c.Support.Files[0].To = "" }, "support.files[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_BuildOptions(t *testing.T) {
	cfg := Default()
	cfg.ORM = ORMConfig{Module: "odmantic", Base: "Model"}
	cfg.Source.IgnorePatterns = []string{"test_*.py"}
	cfg.Source.IncludeHidden = true

	opts := cfg.BuildOptions()
	assert.Equal(t, "src", opts.Discovery.SourceDir)
	assert.Equal(t, "models/beanie", opts.Discovery.ModelsDir)
	assert.Equal(t, "route.py", opts.Discovery.Marker)
	assert.Equal(t, "odmantic", opts.Discovery.Classifier.Module)
	assert.Equal(t, "Model", opts.Discovery.Classifier.Base)
	assert.Equal(t, []string{"test_*.py"}, opts.Discovery.IgnorePatterns)
	assert.True(t, opts.Discovery.IncludeHidden)
	assert.Equal(t, filepath.Join("dist", "src"), opts.Stage.SourceRoot())
	assert.Equal(t, "sequel", opts.Stage.Package)
	assert.Equal(t, "main.py", opts.Entrypoint)
	assert.Equal(t, "MONGODB_CONN_STRING", opts.DatabaseEnv)
}

package generator

import (
	"embed"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.tmpl
var testFS embed.FS

func TestRenderFS(t *testing.T) {
	templates := fstest.MapFS{
		"plain.tmpl":   {Data: []byte("import os")},
		"router.tmpl":  {Data: []byte("app.include_router(r, prefix={{ pyString .Prefix }})")},
		"env.tmpl":     {Data: []byte("os.environ[{{ pyDQString .Env }}]")},
		"missing.tmpl": {Data: []byte("{{ .Missing }}")},
	}

	tests := []struct {
		name        string
		path        string
		data        any
		expected    string
		errContains string
	}{
		{name: "plain text", path: "plain.tmpl", expected: "import os"},
		{
			name:     "python string helper",
			path:     "router.tmpl",
			data:     map[string]any{"Prefix": "/airports/{code}"},
			expected: "app.include_router(r, prefix='/airports/{code}')",
		},
		{
			name:     "double quoted helper",
			path:     "env.tmpl",
			data:     map[string]any{"Env": "MONGODB_CONN_STRING"},
			expected: `os.environ["MONGODB_CONN_STRING"]`,
		},
		{name: "execution error", path: "missing.tmpl", data: struct{}{}, errContains: "failed to render template"},
		{name: "not found", path: "nonexistent.tmpl", errContains: "failed to read template from fs"},
	}

	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.RenderFS(templates, tt.path, tt.data)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestRenderFS_Embedded(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderFS(testFS, "testdata/simple.tmpl", struct{ Name string }{Name: "Plan"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Plan!", string(out))

	_, err = r.RenderFS(testFS, "testdata/invalid_syntax.tmpl", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")
}

func TestRenderer_Cache(t *testing.T) {
	templates := fstest.MapFS{"greeting.tmpl": {Data: []byte("v1")}}

	r := NewRenderer()
	_, err := r.RenderFS(templates, "greeting.tmpl", nil)
	require.NoError(t, err)

	// A parsed template is reused even after the source changes.
	templates["greeting.tmpl"] = &fstest.MapFile{Data: []byte("v2")}
	out, err := r.RenderFS(templates, "greeting.tmpl", nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(out))

	out, err = NewRenderer().RenderFS(templates, "greeting.tmpl", nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(out))
}

func TestPyString(t *testing.T) {
	assert.Equal(t, `'/items'`, PyString("/items"))
	assert.Equal(t, `'it\'s'`, PyString("it's"))
	assert.Equal(t, `'a\\b'`, PyString(`a\b`))
	assert.Equal(t, `"MONGODB_CONN_STRING"`, PyDQString("MONGODB_CONN_STRING"))
	assert.Equal(t, `"say \"hi\""`, PyDQString(`say "hi"`))
}

package pysource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *File {
	t.Helper()
	p := NewParser()
	t.Cleanup(p.Close)

	f, err := p.Parse(context.Background(), "plan.py", []byte(src))
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   string
		wantOK bool
	}{
		{
			name:   "attribute base with import",
			src:    "import beanie\n\nclass Foo(beanie.Document):\n    name: str\n",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "attribute base without any import",
			src:    "class Foo(beanie.Document):\n    pass\n",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "bare base imported from beanie",
			src:    "from beanie import Document\n\nclass Foo(Document):\n    pass\n",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "aliased symbol",
			src:    "from beanie import Document as Doc\n\nclass Foo(Doc):\n    pass\n",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "aliased module",
			src:    "import beanie as b\n\nclass Foo(b.Document):\n    pass\n",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "submodule import binds package",
			src:    "import beanie.odm\n\nclass Foo(beanie.Document):\n    pass\n",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "bare base with no beanie import",
			src:    "class Foo(Document):\n    pass\n",
			wantOK: false,
		},
		{
			name:   "bare base with unrelated Document and plain import beanie",
			src:    "import beanie\nfrom docs import Document\n\nclass Foo(Document):\n    pass\n",
			wantOK: false,
		},
		{
			name:   "plain import beanie alone does not bind Document",
			src:    "import beanie\n\nclass Foo(Document):\n    pass\n",
			wantOK: false,
		},
		{
			name:   "alias rebinds beanie name",
			src:    "import pymongo as beanie\n\nclass Foo(beanie.Document):\n    pass\n",
			wantOK: false,
		},
		{
			name:   "later import shadows earlier",
			src:    "from beanie import Document\nfrom other import Document\n\nclass Foo(Document):\n    pass\n",
			wantOK: false,
		},
		{
			name:   "imported as a different symbol",
			src:    "from beanie import Link as Document\n\nclass Foo(Document):\n    pass\n",
			wantOK: false,
		},
		{
			name:   "relative import binds nothing",
			src:    "from .beanie import Document\n\nclass Foo(Document):\n    pass\n",
			wantOK: false,
		},
		{
			name:   "wildcard import binds nothing",
			src:    "from beanie import *\n\nclass Foo(Document):\n    pass\n",
			wantOK: false,
		},
		{
			name:   "second base matches",
			src:    "from beanie import Document\n\nclass Foo(Mixin, Document, metaclass=Meta):\n    pass\n",
			want:   "Foo",
			wantOK: true,
		},
		{
			name:   "class without bases",
			src:    "class Foo:\n    pass\n",
			wantOK: false,
		},
		{
			name:   "empty file",
			src:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DefaultClassifier.Classify(parse(t, tt.src))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_ClassifyAll(t *testing.T) {
	src := `from beanie import Document
from pydantic import BaseModel


class Settings(BaseModel):
    pass


class Plan(Document):
    class Settings:
        name = "plans"


@decorated
class Airport(Document):
    pass


def factory():
    class Local(Document):
        pass
    return Local
`
	got := DefaultClassifier.ClassifyAll(parse(t, src))
	assert.Equal(t, []string{"Plan", "Airport", "Local"}, got)
}

func TestClassifier_CustomBase(t *testing.T) {
	c := Classifier{Module: "odmantic", Base: "Model"}
	f := parse(t, "from odmantic import Model\n\nclass Car(Model):\n    pass\n\nclass Doc(beanie.Document):\n    pass\n")
	assert.Equal(t, []string{"Car"}, c.ClassifyAll(f))
}

func TestParser_ParseError(t *testing.T) {
	p := NewParser()
	defer p.Close()

	_, err := p.Parse(context.Background(), "models/beanie/broken.py", []byte("class Foo(beanie.Document:\n    pass\n"))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "models/beanie/broken.py", perr.Path)
	assert.Equal(t, 1, perr.Line)
	assert.Contains(t, perr.Error(), "models/beanie/broken.py:1:")
}

func TestFile_Bindings(t *testing.T) {
	src := `import os
import os.path
import beanie as b
import a.b.c as abc
from beanie import Document, Indexed as Idx
from . import sibling
from typing import (
    List,
    Optional,
)
`
	got := parse(t, src).Bindings()

	assert.Equal(t, Binding{Kind: ModuleBinding, Module: "os"}, got["os"])
	assert.Equal(t, Binding{Kind: ModuleBinding, Module: "beanie"}, got["b"])
	assert.Equal(t, "a.b.c", got["abc"].Target())
	assert.Equal(t, "beanie.Document", got["Document"].Target())
	assert.Equal(t, Binding{Kind: SymbolBinding, Module: "beanie", Symbol: "Indexed"}, got["Idx"])
	assert.Equal(t, "typing.Optional", got["Optional"].Target())

	_, ok := got.Lookup("sibling")
	assert.False(t, ok)
	_, ok = got.Lookup("Indexed")
	assert.False(t, ok)
}

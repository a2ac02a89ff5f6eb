package pyimports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = Options{FirstParty: []string{"api", "models", "sequel"}}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "entry point header",
			in: `from fastapi import FastAPI
from fastapi.middleware.gzip import GZipMiddleware
from sequel.metering.openmeter import CloudEventMetering
import os
from sequel.auth.clerk import ClerkBearerAuthProvider
from beanie import init_beanie
from motor.motor_asyncio import AsyncIOMotorClient
from api.items.route import router as api_items_route_router
from models.beanie.plan import Plan
auth_provider = ClerkBearerAuthProvider()
`,
			want: `import os

from beanie import init_beanie
from fastapi import FastAPI
from fastapi.middleware.gzip import GZipMiddleware
from motor.motor_asyncio import AsyncIOMotorClient

from api.items.route import router as api_items_route_router
from models.beanie.plan import Plan
from sequel.auth.clerk import ClerkBearerAuthProvider
from sequel.metering.openmeter import CloudEventMetering

auth_provider = ClerkBearerAuthProvider()
`,
		},
		{
			name: "merges from-imports and orders names by type",
			in: `from typing import Optional
from typing import TYPE_CHECKING, cast
from typing import Any
x = 1
`,
			want: `from typing import TYPE_CHECKING, Any, Optional, cast

x = 1
`,
		},
		{
			name: "straight imports before from-imports and split",
			in: `from os import path
import sys, os
import json as j
`,
			want: `import json as j
import os
import sys
from os import path
`,
		},
		{
			name: "future and local folder sections",
			in: `from . import sibling
from ..pkg import helper
import requests
from __future__ import annotations
`,
			want: `from __future__ import annotations

import requests

from . import sibling
from ..pkg import helper
`,
		},
		{
			name: "case-insensitive module order",
			in: `import Zeta
import alpha
import Beta
`,
			want: `import alpha
import Beta
import Zeta
`,
		},
		{
			name: "aliased names keep their own line",
			in: `from m import b as c, a, d
`,
			want: `from m import a, d
from m import b as c
`,
		},
		{
			name: "parenthesized and continued imports",
			in: `from fastapi import (
    APIRouter,
    Depends,  # auth
)
from os.path import \
    join
`,
			want: `from os.path import join

# auth
from fastapi import APIRouter, Depends
`,
		},
		{
			name: "two blank lines before definitions",
			in: `import os
def main():
    pass
`,
			want: `import os


def main():
    pass
`,
		},
		{
			name: "two blank lines before decorators",
			in: `import functools

@functools.cache
def f():
    pass
`,
			want: `import functools


@functools.cache
def f():
    pass
`,
		},
		{
			name: "preamble is kept and comments follow their import",
			in: `"""Service entry point."""

# needs to run first
import sys
import os
`,
			want: `"""Service entry point."""

import os
# needs to run first
import sys
`,
		},
		{
			name: "comment between block and code stays with code",
			in: `import os

# setup

x = os.getcwd()
`,
			want: `import os

# setup

x = os.getcwd()
`,
		},
		{
			name: "only first block is touched",
			in: `import sys
x = 1
import b
import a
`,
			want: `import sys

x = 1
import b
import a
`,
		},
		{
			name: "duplicates collapse",
			in: `import os
import os
from a import b
from a import b
`,
			want: `import os

from a import b
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]byte(tt.in), testOpts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"from z import y\nimport a\n# note\nfrom sequel.x import Y as Z\n\n\n\nclass A:\n    pass\n",
		"import os\n",
		"from __future__ import annotations\nfrom . import x\nimport requests, os\nprint(1)\n",
		"x = 1\n",
		"",
	}

	for _, in := range inputs {
		once, err := Normalize([]byte(in), testOpts)
		require.NoError(t, err)
		twice, err := Normalize(once, testOpts)
		require.NoError(t, err)
		assert.Equal(t, string(once), string(twice), "input %q", in)
	}
}

func TestNormalize_NoImports(t *testing.T) {
	in := []byte("x = 1\n\n\n")
	got, err := Normalize(in, testOpts)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unterminated parenthesis", "from a import (b,\n"},
		{"missing names", "from a import \nx = 1\n"},
		{"garbage alias", "import a as\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.in), testOpts)
			assert.Error(t, err)
		})
	}
}

func TestOptions_SectionOf(t *testing.T) {
	tests := []struct {
		module string
		want   Section
	}{
		{"__future__", Future},
		{"os", Stdlib},
		{"os.path", Stdlib},
		{"asyncio", Stdlib},
		{"fastapi", ThirdParty},
		{"beanie", ThirdParty},
		{"sequel.auth.clerk", FirstParty},
		{"api.items.route", FirstParty},
		{".", LocalFolder},
		{"..pkg", LocalFolder},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			assert.Equal(t, tt.want, testOpts.SectionOf(tt.module))
			assert.NotEqual(t, "UNKNOWN", tt.want.String())
		})
	}
}

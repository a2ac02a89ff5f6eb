package generator

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOp struct {
	name        string
	validateErr error
	executeErr  error
	log         *[]string
}

func (op *recordingOp) Validate(ctx context.Context) error {
	*op.log = append(*op.log, "validate "+op.name)
	return op.validateErr
}

func (op *recordingOp) Execute(ctx context.Context) error {
	*op.log = append(*op.log, "execute "+op.name)
	return op.executeErr
}

func (op *recordingOp) Description() string { return op.name }

func TestExecute_ValidatesBeforeExecuting(t *testing.T) {
	var log []string
	ops := []Operation{
		&recordingOp{name: "a", log: &log},
		&recordingOp{name: "b", log: &log},
	}

	var buf bytes.Buffer
	require.NoError(t, Execute(context.Background(), ops, ExecuteOptions{Writer: &buf}))

	assert.Equal(t, []string{"validate a", "validate b", "execute a", "execute b"}, log)
	assert.Equal(t, "✓ a\n✓ b\n", buf.String())
}

func TestExecute_ValidationFailureRunsNothing(t *testing.T) {
	var log []string
	ops := []Operation{
		&recordingOp{name: "a", log: &log},
		&recordingOp{name: "b", log: &log, validateErr: errors.New("missing source")},
	}

	err := Execute(context.Background(), ops, ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed: missing source")
	assert.Equal(t, []string{"validate a", "validate b"}, log)
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	var log []string
	ops := []Operation{
		&recordingOp{name: "a", log: &log, executeErr: errors.New("disk full")},
		&recordingOp{name: "b", log: &log},
	}

	err := Execute(context.Background(), ops, ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execution failed: disk full")
	assert.NotContains(t, log, "execute b")
}

func TestExecute_DryRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	ops := []Operation{
		&WriteFileOp{Fs: fsys, Path: "/dist/src/main.py", Content: []byte("import os\n"), Mode: 0644},
	}

	var buf bytes.Buffer
	require.NoError(t, Execute(context.Background(), ops, ExecuteOptions{DryRun: true, Writer: &buf}))

	assert.Contains(t, buf.String(), "[DRY RUN] Create /dist/src/main.py (10 bytes)")
	exists, err := afero.Exists(fsys, "/dist/src/main.py")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExecute_Quiet(t *testing.T) {
	var log []string
	var buf bytes.Buffer
	ops := []Operation{&recordingOp{name: "a", log: &log}}

	require.NoError(t, Execute(context.Background(), ops, ExecuteOptions{Quiet: true, Writer: &buf}))
	assert.Empty(t, buf.String())
}

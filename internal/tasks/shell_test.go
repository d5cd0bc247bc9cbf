package tasks

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
)

func TestShell_Output(t *testing.T) {
	exec, stdout := newExecution(t, t.TempDir())

	err := (&Shell{Command: "echo one; echo two >&2; printf three"}).Run(context.Background(), exec)

	require.NoError(t, err)
	assert.Equal(t, "       [sh] one\n       [sh] two\n       [sh] three\n", stdout.String())
}

func TestShell_InterpolatesAndExportsProperties(t *testing.T) {
	exec, stdout := newExecution(t, t.TempDir())

	err := (&Shell{Command: `echo "${flob}" "$flob"`}).Run(context.Background(), exec)

	require.NoError(t, err)
	assert.Equal(t, "       [sh] adob adob\n", stdout.String())
}

func TestShell_Dir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "marker.txt"), "found")
	exec, stdout := newExecution(t, dir)

	err := (&Shell{Command: "cat < marker.txt", Dir: "sub"}).Run(context.Background(), exec)

	require.NoError(t, err)
	assert.Equal(t, "       [sh] found\n", stdout.String())
}

func TestShell_ExitStatus(t *testing.T) {
	exec, stdout := newExecution(t, t.TempDir())

	err := (&Shell{Command: "echo before; exit 3; echo after"}).Run(context.Background(), exec)

	require.Error(t, err)
	assert.True(t, gerrors.Is(err, gerrors.KindBuild))
	assert.Contains(t, err.Error(), "status 3")
	assert.Equal(t, "       [sh] before\n", stdout.String())
}

func TestShell_StopsOnFirstFailure(t *testing.T) {
	exec, stdout := newExecution(t, t.TempDir())

	err := (&Shell{Command: "false\necho unreachable"}).Run(context.Background(), exec)

	require.Error(t, err)
	assert.Empty(t, stdout.String())
}

func TestShell_ParseError(t *testing.T) {
	exec, _ := newExecution(t, t.TempDir())

	err := (&Shell{Command: "if then"}).Run(context.Background(), exec)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse command")
}

func TestShell_DevNull(t *testing.T) {
	exec, stdout := newExecution(t, t.TempDir())

	err := (&Shell{Command: "echo hidden > /dev/null; echo shown"}).Run(context.Background(), exec)

	require.NoError(t, err)
	assert.Equal(t, "       [sh] shown\n", stdout.String())
}

func TestIsEnvName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"flob", true},
		{"_x1", true},
		{"1x", false},
		{"project.name", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isEnvName(tt.name))
		})
	}
}

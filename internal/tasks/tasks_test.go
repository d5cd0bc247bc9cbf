package tasks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/gantry/internal/config"
	gerrors "github.com/AndreyAkinshin/gantry/internal/errors"
	"github.com/AndreyAkinshin/gantry/internal/output"
	"github.com/AndreyAkinshin/gantry/internal/target"
)

func newExecution(t *testing.T, baseDir string) (*target.Execution, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	return &target.Execution{
		Project:    "demo",
		Target:     "build",
		BaseDir:    baseDir,
		Result:     target.NewResult(),
		Log:        output.NewWithWriters(stdout, &bytes.Buffer{}, false),
		Properties: map[string]string{"flob": "adob"},
	}, stdout
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func strPtr(s string) *string { return &s }

func TestEcho(t *testing.T) {
	exec, stdout := newExecution(t, t.TempDir())

	err := (&Echo{Message: "flob=${flob}\nsecond"}).Run(context.Background(), exec)

	require.NoError(t, err)
	assert.Equal(t, "     [echo] flob=adob\n     [echo] second\n", stdout.String())
}

func TestResult(t *testing.T) {
	exec, _ := newExecution(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, (&Result{Value: "a"}).Run(ctx, exec))
	require.NoError(t, (&Result{Value: "${project.name}", Mode: config.ResultModeAppend}).Run(ctx, exec))
	assert.Equal(t, "ademo", exec.Result.String())

	require.NoError(t, (&Result{Value: "OK.", Mode: config.ResultModeSet}).Run(ctx, exec))
	assert.Equal(t, "OK.", exec.Result.String())

	err := (&Result{Value: "x", Mode: "prepend"}).Run(ctx, exec)
	assert.True(t, gerrors.Is(err, gerrors.KindBuild))
}

func TestFail(t *testing.T) {
	exec, _ := newExecution(t, t.TempDir())

	err := (&Fail{Message: "broken ${flob}"}).Run(context.Background(), exec)
	require.Error(t, err)
	assert.Equal(t, "broken adob", err.Error())
	assert.True(t, gerrors.Is(err, gerrors.KindBuild))

	err = (&Fail{}).Run(context.Background(), exec)
	assert.Equal(t, config.DefaultFailMessage, err.Error())
}

func TestSequence_StopsAtFirstFailure(t *testing.T) {
	exec, stdout := newExecution(t, t.TempDir())
	seq := Sequence{
		&Echo{Message: "one"},
		&Fail{Message: "stop"},
		&Echo{Message: "two"},
	}

	err := seq.Run(context.Background(), exec)

	require.EqualError(t, err, "stop")
	assert.Equal(t, "     [echo] one\n", stdout.String())
}

func TestSequence_Canceled(t *testing.T) {
	exec, stdout := newExecution(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sequence{&Echo{Message: "one"}}.Run(ctx, exec)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stdout.String())
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		tc   config.TaskConfig
		want Task
	}{
		{"echo", config.TaskConfig{Echo: &config.EchoTask{Message: "m"}}, &Echo{Message: "m"}},
		{"result", config.TaskConfig{Result: &config.ResultTask{Value: "v", Mode: "set"}}, &Result{Value: "v", Mode: "set"}},
		{"sh", config.TaskConfig{Sh: &config.ShTask{Command: "true", Dir: "sub"}}, &Shell{Command: "true", Dir: "sub"}},
		{"fail", config.TaskConfig{Fail: &config.FailTask{Message: "m"}}, &Fail{Message: "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromConfig(tt.tc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.Name())
		})
	}
}

func TestFromConfig_Gant(t *testing.T) {
	got, err := FromConfig(config.TaskConfig{Gant: &config.GantTask{
		File:        "build.gant",
		Target:      "first",
		Targets:     []string{"second"},
		Definitions: []config.Definition{{Name: "flob", Value: strPtr("adob")}, {Name: "burble"}},
	}})
	require.NoError(t, err)

	g, ok := got.(*Gant)
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, g.Targets)
	require.Len(t, g.Definitions, 2)
	assert.Equal(t, "adob", *g.Definitions[0].Value)
	assert.Nil(t, g.Definitions[1].Value)
}

func TestFromConfig_Invalid(t *testing.T) {
	_, err := FromConfig(config.TaskConfig{})
	assert.True(t, gerrors.Is(err, gerrors.KindConfig))

	_, err = FromConfig(config.TaskConfig{Echo: &config.EchoTask{}, Fail: &config.FailTask{}})
	assert.True(t, gerrors.Is(err, gerrors.KindConfig))
}

func TestSequenceFromConfig(t *testing.T) {
	body, err := SequenceFromConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, body)

	body, err = SequenceFromConfig([]config.TaskConfig{
		{Result: &config.ResultTask{Value: "a"}},
		{Result: &config.ResultTask{Value: "b"}},
	})
	require.NoError(t, err)

	exec, _ := newExecution(t, t.TempDir())
	require.NoError(t, body.Run(context.Background(), exec))
	assert.Equal(t, "ab", exec.Result.String())
}

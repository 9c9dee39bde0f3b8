package run

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunnerRecordsSpecs(t *testing.T) {
	f := NewFakeRunner()

	h1, err := f.Submit(CommandSpec{Args: []string{"git", "status"}})
	require.NoError(t, err)
	h2, err := f.Submit(CommandSpec{Args: []string{"git", "fetch"}, Dir: "/tmp/repo"})
	require.NoError(t, err)

	assert.Equal(t, Handle(1), h1)
	assert.Equal(t, Handle(2), h2)
	assert.Equal(t, []Handle{1, 2}, f.Handles())
	assert.Equal(t, h2, f.LastHandle())

	specs := f.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, []string{"git", "status"}, specs[0].Args)
	assert.Equal(t, "/tmp/repo", specs[1].Dir)
}

func TestFakeRunnerRejectsEmptyArgs(t *testing.T) {
	f := NewFakeRunner()
	_, err := f.Submit(CommandSpec{})
	require.ErrorIs(t, err, ErrEmptyArgs)
}

func TestFakeRunnerDrivesLifecycle(t *testing.T) {
	f := NewFakeRunner()
	h, err := f.Submit(CommandSpec{Args: []string{"git", "log"}})
	require.NoError(t, err)

	go func() {
		f.EmitOutput(h, Stdout, []byte("partial"))
		f.Finish(h, 0, "partial done", "")
	}()

	ev := <-f.Events()
	out, ok := ev.(OutputEvent)
	require.True(t, ok)
	assert.Equal(t, "partial", string(out.Chunk))

	ev = <-f.Events()
	fin, ok := ev.(FinishedEvent)
	require.True(t, ok)
	assert.Equal(t, h, fin.Handle)
	assert.Equal(t, []string{"git", "log"}, fin.Spec.Args)
	assert.Equal(t, "partial done", string(fin.Result.Stdout))
	assert.True(t, fin.Result.OK())
}

func TestFakeRunnerCancelSemantics(t *testing.T) {
	f := NewFakeRunner()
	h, err := f.Submit(CommandSpec{Args: []string{"git", "fetch"}})
	require.NoError(t, err)

	assert.True(t, f.Cancel(h))
	assert.Equal(t, []Handle{h}, f.Cancelled())

	go f.Finish(h, -1, "", "terminated")
	<-f.Events()

	// Finished handles no longer accept cancel or kill.
	assert.False(t, f.Cancel(h))
	assert.False(t, f.Kill(h))
	assert.False(t, f.Cancel(Handle(42)))
}

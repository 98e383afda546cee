package host

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/altc/lang"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"csound":   FormatCsound,
		" MIDI \n": FormatMIDI,
		"Midi":     FormatMIDI,
		"":         FormatCsound,
		"wav":      FormatCsound,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseFormat(in), "ParseFormat(%q)", in)
	}

	assert.Equal(t, []string{"csound", "midi"}, slices.Collect(Formats()))

	var f Format
	require.NoError(t, f.UnmarshalText([]byte("midi")))
	assert.Equal(t, FormatMIDI, f)
}

func TestInstructionFile(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"In_C.altc":         "In_C_user_instruction.rb",
		"My.Tune.altc":      "My.Tune_user_instruction.rb",
		"LOUD.ALTC":         "LOUD_user_instruction.rb",
		"dir/score":         "dir/score_user_instruction.rb",
		"a.altc/b.altc":     "a.altc/b_user_instruction.rb",
		"score.altc.backup": "score_user_instruction.rb",
	}

	for in, want := range tests {
		assert.Equal(t, want, InstructionFile(in), "InstructionFile(%q)", in)
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	scriptDir := t.TempDir()
	libDir := t.TempDir()
	name := "song_user_instruction.rb"

	_, ok := Locate(name, libDir, scriptDir)
	assert.False(t, ok, "nothing to find yet")

	require.NoError(t, os.WriteFile(filepath.Join(libDir, name), nil, 0o600))

	path, ok := Locate(name, libDir, scriptDir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(libDir, name), path)

	require.NoError(t, os.WriteFile(filepath.Join(scriptDir, name), nil, 0o600))

	path, ok = Locate(name, libDir, scriptDir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(scriptDir, name), path, "script directory is searched first")
}

func TestSearchPath_DropsMissingDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	list := filepath.SplitList(SearchPath(missing, dir))
	assert.Contains(t, list, dir)
	assert.NotContains(t, list, missing)
}

func TestArtifact_WriteTo(t *testing.T) {
	t.Parallel()

	a := Artifact{
		Script:      "In_C.altc",
		Instruction: "In_C_user_instruction.rb",
		Body:        "note \"C4\"\n",
	}

	var buf bytes.Buffer

	n, err := a.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)
	assert.Equal(t,
		"require 'util'\nrequire 'global'\nrequire 'In_C_user_instruction.rb'\n"+
			"module Aleatoric\n\nnote \"C4\"\n\n\nend\n",
		buf.String())

	buf.Reset()

	a.Bare = true
	_, err = a.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.Body, buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestArtifact_WriteTo_Error(t *testing.T) {
	t.Parallel()

	_, err := Artifact{Body: "x"}.WriteTo(failWriter{})
	require.ErrorIs(t, err, lang.ErrEmit)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "song.altc")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "meter 4, 4\nquantize on\n")
	ctx := context.Background()

	a, err := Prepare(ctx, script, WithFormat(FormatMIDI))
	require.NoError(t, err)
	assert.Equal(t, FormatMIDI, a.Format)
	assert.Equal(t, "meter 4,4 do\nquantize on\nend\n", a.Body)
	assert.Equal(t, strings.TrimSuffix(script, ".altc")+InstructionSuffix, a.Instruction)

	raw, err := Prepare(ctx, script, WithPreprocess(false))
	require.NoError(t, err)
	assert.Equal(t, "meter 4, 4\nquantize on\n", raw.Body)
}

func TestPrepare_ResolvesInstruction(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "note\n")
	lib := t.TempDir()
	instr := filepath.Join(lib, "song"+InstructionSuffix)
	require.NoError(t, os.WriteFile(instr, nil, 0o600))

	a, err := Prepare(context.Background(), script, WithSearchPath(lib))
	require.NoError(t, err)
	assert.Equal(t, instr, a.Instruction)
}

func TestPrepare_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := Prepare(ctx, filepath.Join(t.TempDir(), "missing.altc"))
	require.ErrorIs(t, err, lang.ErrReadInput)

	_, err = Prepare(ctx, writeScript(t, "repeat \"x\"\n"))
	require.ErrorIs(t, err, lang.ErrArgument)

	var e *lang.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 1, e.Line)
}

func TestArtifact_Save(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "note\n")

	a, err := Prepare(context.Background(), script, WithBare(true))
	require.NoError(t, err)

	path, err := a.Save("")
	require.NoError(t, err)
	assert.Equal(t, script+".tmp", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "note do\nend\n", string(data))
}

func TestPrepare_Cached(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "phrase \"cached\"\nnote\n")
	ctx := context.Background()

	first, err := Prepare(ctx, script, WithCache(true))
	require.NoError(t, err)

	second, err := Prepare(ctx, script, WithCache(true))
	require.NoError(t, err)

	plain, err := Prepare(ctx, script)
	require.NoError(t, err)

	assert.Equal(t, plain.Body, first.Body)
	assert.Equal(t, first.Body, second.Body)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauraamui/frameextract/pkg/extract"
	"github.com/tauraamui/frameextract/pkg/procedure"
)

func overloadFs(overload afero.Fs) func() {
	fsRef := fs
	fs = overload
	return func() { fs = fsRef }
}

func overloadStdout(overload io.Writer) func() {
	stdoutRef := stdout
	stdout = overload
	return func() { stdout = stdoutRef }
}

type cliHarness struct {
	fs  afero.Fs
	out *bytes.Buffer
}

func newHarness(t *testing.T) cliHarness {
	t.Helper()
	t.Setenv("FRAMEEXTRACT_CONFIG", filepath.Join(t.TempDir(), "config.json"))
	t.Setenv("FRAMEEXTRACT_LOG_LEVEL", "silent")

	h := cliHarness{fs: afero.NewMemMapFs(), out: &bytes.Buffer{}}
	t.Cleanup(overloadFs(h.fs))
	t.Cleanup(overloadStdout(h.out))
	return h
}

func run(args ...string) error {
	return newApp().RunContext(context.Background(), append([]string{name}, args...))
}

func decodeRecords(t *testing.T, data []byte) []extract.FrameRecord {
	t.Helper()
	records := []extract.FrameRecord{}
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestExtractKeyFramesFromMockVideo(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, run("extract", "--backend", "mock", "mock.mp4"))

	records := decodeRecords(t, h.out.Bytes())
	require.Len(t, records, 5)
	indices, stamps := []int{}, []string{}
	for _, r := range records {
		indices = append(indices, r.Index)
		stamps = append(stamps, r.Timestamp)
		assert.Equal(t, 640, r.Width)
		assert.Equal(t, 360, r.Height)
		assert.Contains(t, r.Image, "data:image/jpeg;base64,")
	}
	assert.Equal(t, []int{0, 74, 149, 224, 299}, indices)
	assert.Equal(t, []string{"00:00:00", "00:00:02", "00:00:04", "00:00:07", "00:00:09"}, stamps)
}

func TestExtractScenesFromMockVideoWithMaxWidth(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, run(
		"extract", "--backend", "mock", "--mode", "scenes", "--threshold", "30",
		"--max-width", "320", "--output", "/out/scenes.json", "mock.mp4",
	))
	assert.Empty(t, h.out.String())

	data, err := afero.ReadFile(h.fs, "/out/scenes.json")
	require.NoError(t, err)
	records := decodeRecords(t, data)
	require.Len(t, records, 2)
	assert.Equal(t, 100, records[0].Index)
	assert.Equal(t, 200, records[1].Index)
	assert.Equal(t, 320, records[0].Width)
	assert.Equal(t, 180, records[0].Height)
}

func TestExtractTimestampsFromMockVideo(t *testing.T) {
	h := newHarness(t)
	marks := "- timestamp: 1.0\n  description: opening\n- timestamp: 5.5\n  target_size:\n    width: 160\n"
	require.NoError(t, afero.WriteFile(h.fs, "/marks.yaml", []byte(marks), 0644))

	require.NoError(t, run(
		"extract", "--backend", "mock", "--mode", "timestamps", "--timestamps", "/marks.yaml", "mock.mp4",
	))

	records := decodeRecords(t, h.out.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, 30, records[0].Index)
	assert.Equal(t, "opening", records[0].Description)
	assert.Equal(t, 640, records[0].Width)
	assert.Equal(t, 165, records[1].Index)
	assert.Equal(t, 160, records[1].Width)
	assert.Equal(t, 90, records[1].Height)
}

func TestExtractAcceptsMixedCaseNames(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, run(
		"extract", "--backend", " Mock", "--mode", "Scenes", "--threshold", "30",
		"--log-level", "ERROR", "mock.mp4",
	))

	records := decodeRecords(t, h.out.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, 100, records[0].Index)
	assert.Equal(t, 200, records[1].Index)
}

func TestExtractTimestampsModeNeedsMarksFile(t *testing.T) {
	is := is.New(t)
	newHarness(t)

	err := run("extract", "--backend", "mock", "--mode", "timestamps", "mock.mp4")
	is.True(errors.Is(err, extract.ErrInvalidParameters))
}

func TestExtractRejectsInvalidFlags(t *testing.T) {
	is := is.New(t)
	newHarness(t)

	err := run("extract", "--backend", "mock", "--num-frames", "0", "mock.mp4")
	is.True(errors.Is(err, extract.ErrInvalidParameters))

	err = run("extract", "--backend", "mock", "--mode", "everything", "mock.mp4")
	is.True(errors.Is(err, extract.ErrInvalidParameters))
}

func TestExtractNeedsVideoPath(t *testing.T) {
	is := is.New(t)
	newHarness(t)
	is.True(run("extract", "--backend", "mock") != nil)
}

func TestExtractYAMLOutput(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, run("extract", "--backend", "mock", "--num-frames", "1", "--format", "yaml", "mock.mp4"))
	assert.Contains(t, h.out.String(), "frame_index: 0")
	assert.Contains(t, h.out.String(), "00:00:00")
}

func TestProcedureParse(t *testing.T) {
	h := newHarness(t)
	text := "TITLE: Restarting the kiosk\nSTEPS:\n1. Hold the power button\n   ⚠️ Wait for the fan to stop\n"
	require.NoError(t, afero.WriteFile(h.fs, "/procedure.txt", []byte(text), 0644))

	require.NoError(t, run("procedure", "parse", "/procedure.txt"))

	p := procedure.Procedure{}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &p))
	assert.Equal(t, "Restarting the kiosk", p.Title)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, []string{"Wait for the fan to stop"}, p.Steps[0].Warnings)
}

func TestProcedureParseWithoutSections(t *testing.T) {
	is := is.New(t)
	h := newHarness(t)
	is.NoErr(afero.WriteFile(h.fs, "/notes.txt", []byte("nothing to see here"), 0644))

	err := run("procedure", "parse", "/notes.txt")
	is.True(errors.Is(err, procedure.ErrNoSections))
}

package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/streamplay/vikinglink"
	main "github.com/streamplay/vikinglink/cmd/vikinglink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests drive the wired binary end to end against a real database
// file. Commands that fetch pages are covered by the command tests over
// mocks instead.

func TestMain_Run_ListEmptyDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"list"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No records found")
}

func TestMain_Run_ImportShowStats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	record := `{
  "id": "rec-1",
  "code": "abc123",
  "fileName": "Movie.2024.mkv",
  "vikingLink": "https://vikingfile.com/f/abc123",
  "status": "active"
}`
	recordPath := filepath.Join(dir, "rec.json")
	require.NoError(t, os.WriteFile(recordPath, []byte(record), 0644))

	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"import", recordPath}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Imported 1 records")

	stdout.Reset()
	err = m.Run(context.Background(), []string{"show", "rec-1"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "abc123")
	assert.Contains(t, stdout.String(), "https://vikingfile.com/f/abc123")

	stdout.Reset()
	err = m.Run(context.Background(), []string{"stats", "--json"}, stdout, stderr)
	require.NoError(t, err)

	var stats vikinglink.VikingStats
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalFiles)
	assert.Equal(t, 1, stats.FilesWithVikingLink)
	assert.InDelta(t, 100.0, stats.SuccessRate, 0.001)
}

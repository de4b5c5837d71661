package digest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "arxiv-daily.yaml")
	state := State{
		"SLAM": {
			{
				ID:          "2401.00001",
				Title:       "A Paper | With Pipes",
				Authors:     []string{"Ada Lovelace", "Alan Turing"},
				Published:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				AbstractURL: "http://arxiv.org/abs/2401.00001",
				CodeURL:     "https://github.com/example/repo",
				Summary:     "Does a thing.",
			},
		},
	}

	require.NoError(t, SaveState(path, state))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestLoadStateMissingFileIsEmpty(t *testing.T) {
	loaded, err := LoadState(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestLoadStateEmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestLoadStateMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := LoadState(path)
	require.Error(t, err)
}

func TestSaveStateOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	first := State{"SLAM": {{ID: "2401.00001", Title: "Old"}}}
	second := State{"NeRF": {{ID: "2402.00002", Title: "New"}}}

	require.NoError(t, SaveState(path, first))
	require.NoError(t, SaveState(path, second))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestToState(t *testing.T) {
	sections := []types.KeywordSection{
		{Name: "SLAM", Papers: []types.PaperRecord{{ID: "2401.00001"}}},
		{Name: "NeRF"},
	}

	s := ToState(sections)
	assert.Len(t, s, 2)
	assert.Len(t, s["SLAM"], 1)
	assert.Empty(t, s["NeRF"])
}

package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/truetype/internal/fontfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "truetype")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "sample.ttf")
	font := fontfixture.Sample()
	require.NoError(t, os.WriteFile(path, font, 0o644))
	ff, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, ff.Filepath)
	assert.Equal(t, font, ff.Binary)
	assert.Empty(t, ff.Fontname, "sample font has no table 'name'")
	//
	_, err = Load(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.True(t, os.IsNotExist(err), "got %v", err)
}

func TestLoadRejectsLargeFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "truetype")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "large.ttf")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxFontSize+1))
	require.NoError(t, f.Close())
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

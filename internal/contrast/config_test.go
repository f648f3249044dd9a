package contrast

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/docrecon/internal/testutil"
)

func TestLoadConfig_OverridesLists(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "contrast.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{".tsx"}, cfg.Extensions)
	assert.Equal(t, []string{"bg-navy-(?:800|900)"}, cfg.DarkBackgrounds)
	assert.Equal(t, []string{"text-white", "text-navy-50"}, cfg.LightTexts)
	// Not in the file: defaults kept
	assert.Equal(t, DefaultConfig().ExcludeDirs, cfg.ExcludeDirs)
}

func TestLoadConfig_EmptyFileKeepsDefaults(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "empty.yaml", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ExplicitEmptyExcludes(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "c.yaml", "exclude_dirs: []\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.ExcludeDirs)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "c.yaml", "dark_background:\n  - bg-black\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dark_background")
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open contrast config")
}

func TestDefaultConfig_Compiles(t *testing.T) {
	_, err := NewScanner(DefaultConfig(), nil)
	require.NoError(t, err)
}

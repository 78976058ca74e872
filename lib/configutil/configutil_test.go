package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Output   string   `json:"output"`
	PageSize int      `json:"page_size"`
	Keywords []string `json:"keywords"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0644)
	require.NoError(t, err)
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, name, `{
		// comments are allowed
		output: "report.csv",
		page_size: 100,
		keywords: ["IoT"],
	}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "report.csv", cfg.Output)
	require.Equal(t, 100, cfg.PageSize)
	require.Equal(t, []string{"IoT"}, cfg.Keywords)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{output: "report.csv", page_size: 100}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{output: "local.csv"}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "local.csv", cfg.Output)
	require.Equal(t, 100, cfg.PageSize)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "nope.json5"))
	require.True(t, os.IsNotExist(err))
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert"
)

func TestLoadConfig(t *testing.T) {
	config, err := loadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, "windows-1252", config.Codepage)
	assert.Equal(t, int64(104857600), config.MaxResourceDataSize)
	assert.False(t, config.Debug)

	path := filepath.Join(t.TempDir(), "wrcinfo.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("codepage: cp1251\ndebug: true\n"), 0600))

	config, err = loadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "cp1251", config.Codepage)
	assert.Equal(t, int64(104857600), config.MaxResourceDataSize)
	assert.True(t, config.Debug)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMatchName(t *testing.T) {
	assert.True(t, matchName("RT_VERSION", 16, "RT_VERSION"))
	assert.True(t, matchName("RT_VERSION", 16, "16"))
	assert.True(t, matchName("1", 1, "0x1"))
	assert.False(t, matchName("CONFIG", 0x80000010, "16"))
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFileMissing(t *testing.T) {
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadEnvFileApplies(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("ODDSITE_TEST_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("ODDSITE_TEST_LOG_LEVEL", "")
	os.Unsetenv("ODDSITE_TEST_LOG_LEVEL")

	require.NoError(t, loadEnvFile(p))
	assert.Equal(t, "debug", os.Getenv("ODDSITE_TEST_LOG_LEVEL"))
}

func TestLoadEnvFileReportsUnreadableFile(t *testing.T) {
	// A directory exists but cannot be parsed as an env file.
	err := loadEnvFile(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load env file")
}

func TestSignatureCarriesVersion(t *testing.T) {
	assert.Contains(t, TOOL_SIGNATURE, TOOL_NAME+"/"+TOOL_VERSION)
}

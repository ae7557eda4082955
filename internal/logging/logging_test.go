package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickward/twospace/internal/logging"
)

func TestDefaultLogConfig(t *testing.T) {
	t.Parallel()

	cfg := logging.DefaultLogConfig("/tmp/twospace")
	assert.Equal(t, filepath.Join("/tmp/twospace", "twospace.log"), cfg.LogFile)
	assert.True(t, cfg.Compress)

	assert.Empty(t, logging.DefaultLogConfig("").LogFile)
}

func TestSetupLogging_WritesFile(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	cfg := logging.DefaultLogConfig(filepath.Join(tmp, "logs"))

	logger, err := logging.SetupLogging(cfg)
	require.NoError(t, err)

	logger.Info("rewrote document")
	_ = logger.Sync()

	content, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "rewrote document"))
}

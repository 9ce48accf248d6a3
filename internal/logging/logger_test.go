package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, GetLevel("warning"))
	assert.Equal(t, log.ErrorLevel, GetLevel("error"))
	assert.Equal(t, log.InfoLevel, GetLevel("nonsense"))
	assert.Equal(t, log.InfoLevel, GetLevel(""))
}

func TestSetup_WritesToRotatedFile(t *testing.T) {
	// given
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})
	fileName := filepath.Join(t.TempDir(), "caley")

	// when
	Setup(SetupParams{LogFileName: fileName, LogLevel: "debug", LogFormatJSON: true})
	log.Debug("written to file")

	// then
	content, err := os.ReadFile(fileName + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"written to file"`)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetup_WritesToConsole(t *testing.T) {
	// given
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})
	var console bytes.Buffer

	// when
	Setup(SetupParams{LogLevel: "warn", Console: &console})
	log.Info("hidden")
	log.Warn("shown")

	// then
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreStandard(t *testing.T) {
	t.Cleanup(func() {
		Setup("info", "text", os.Stderr)
	})
}

func TestSetup_JSON(t *testing.T) {
	restoreStandard(t)
	var buf bytes.Buffer

	log := Setup("debug", "JSON", &buf)
	log.WithField("room", "cell1").Debug("moved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "moved", entry["msg"])
	assert.Equal(t, "cell1", entry["room"])
	assert.Equal(t, "debug", entry["level"])
}

func TestSetup_TextAndLevel(t *testing.T) {
	restoreStandard(t)
	var buf bytes.Buffer

	log := Setup("warn", "text", &buf)
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `msg=shown`)
	assert.Same(t, logrus.StandardLogger(), log)
}

func TestSetup_BadLevelFallsBackToInfo(t *testing.T) {
	restoreStandard(t)
	log := Setup("loud", "text", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

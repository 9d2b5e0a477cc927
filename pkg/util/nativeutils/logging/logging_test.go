package logging

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogJSON(t *testing.T) {
	var buf bytes.Buffer
	InitLog(&buf, "warn", "json")
	defer InitLog(os.Stderr, "info", "text")

	log.WithField("process", "test").Info("hidden")
	log.WithField("process", "test").Warn("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "test", entry["process"])
	assert.Equal(t, "warning", entry["level"])
}

func TestSetToLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	InitLog(&buf, "not-a-level", "text")
	defer InitLog(os.Stderr, "info", "text")

	assert.Equal(t, log.TraceLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Parse logger level")
}

func TestOpenOutputFile(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "ecash")

	w, err := OpenOutput(prefix)
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err := ioutil.ReadFile(prefix + ".log")
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(b))

	w, err = OpenOutput("stdout")
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}

package logging

import (
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testName = "mouse-sim"

// inTempDir runs the test from an empty working directory so logs/ is isolated
func inTempDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	prev := log.Writer()
	t.Cleanup(func() { log.SetOutput(prev) })
}

func TestSetup_DisabledByDefault(t *testing.T) {
	inTempDir(t)

	f := Setup(testName, false)
	assert.Nil(t, f)
	assert.Equal(t, io.Discard, log.Writer())

	_, err := os.Stat(Dir)
	assert.True(t, os.IsNotExist(err), "no logs directory without debug")
}

func TestSetup_EnabledWithDebug(t *testing.T) {
	inTempDir(t)

	f := Setup(testName, true)
	require.NotNil(t, f)
	defer f.Close()

	log.Println("[SIM] test line")

	data, err := os.ReadFile(Path(testName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[SIM] test line")

	assert.NotEqual(t, os.Stdout, log.Writer())
	assert.NotEqual(t, os.Stderr, log.Writer())
}

func TestSetup_Rotation(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.MkdirAll(Dir, 0755))

	logPath := Path(testName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, MaxSize+1), 0644))

	f := Setup(testName, true)
	require.NotNil(t, f)
	defer f.Close()

	entries, err := os.ReadDir(Dir)
	require.NoError(t, err)

	rotated := false
	for _, e := range entries {
		if e.Name() != testName+".log" && strings.HasPrefix(e.Name(), testName+"-") && strings.HasSuffix(e.Name(), ".log") {
			rotated = true
		}
	}
	assert.True(t, rotated, "oversized log renamed")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(MaxSize))
}

func TestCapture_ReplayedIntoDebugLog(t *testing.T) {
	inTempDir(t)

	Capture()
	assert.NotEqual(t, os.Stderr, log.Writer(), "early lines stay off the terminal")
	log.Println("[CFG] early line")

	f := Setup(testName, true)
	require.NotNil(t, f)
	defer f.Close()
	log.Println("[SIM] later line")

	data, err := os.ReadFile(Path(testName))
	require.NoError(t, err)
	early := strings.Index(string(data), "[CFG] early line")
	later := strings.Index(string(data), "[SIM] later line")
	require.GreaterOrEqual(t, early, 0)
	assert.Greater(t, later, early)
}

func TestCapture_DroppedWithoutDebug(t *testing.T) {
	inTempDir(t)

	Capture()
	log.Println("[CFG] early line")
	assert.Nil(t, Setup(testName, false))

	_, err := os.Stat(Dir)
	assert.True(t, os.IsNotExist(err))

	// A later debug setup does not resurrect discarded lines
	f := Setup(testName, true)
	require.NotNil(t, f)
	defer f.Close()
	data, err := os.ReadFile(Path(testName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "early line")
}

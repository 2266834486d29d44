package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effective-digital/flowkit/internal/logging"
)

const demoScript = `process_id: demo
steps:
  - step: WEB_VIEW
    params:
      secondParams: "https://x.test"
      clientID: "c1"
    next:
      id: demo-2
      action: IDENTITY_CHECK
  - step: IDENTITY_CHECK
    result:
      status: verified
    next:
      id: demo-3
      action: DONE
`

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScript(t *testing.T) {
	sc, err := loadScript(writeScript(t, demoScript))
	require.NoError(t, err)

	assert.Equal(t, "demo", sc.ProcessID)
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, "WEB_VIEW", sc.Steps[0].Step)
	assert.Equal(t, "verified", sc.Steps[1].Result["status"])
}

func TestLoadScript_Empty(t *testing.T) {
	_, err := loadScript(writeScript(t, "steps: []\n"))
	assert.Error(t, err)
}

func TestLoadScript_Missing(t *testing.T) {
	_, err := loadScript(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunScript_DrivesAllSteps(t *testing.T) {
	sc, err := loadScript(writeScript(t, demoScript))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	require.NoError(t, runScript(cmd, sc, logging.NewNop()))

	text := out.String()
	assert.Contains(t, text, "running step WEB_VIEW")
	assert.Contains(t, text, "running step IDENTITY_CHECK")
	assert.Contains(t, text, "present flow: id=demo-2 action=IDENTITY_CHECK")
	assert.Contains(t, text, "present flow: id=demo-3 action=DONE")
	assert.Contains(t, text, "session ended")

	// Each continuation clears the screen before presenting the next one.
	assert.Equal(t, 2, strings.Count(text, "dismissing current screen"))
	assert.Equal(t, 2, strings.Count(text, "showing interstitial"))
	assert.Equal(t, 2, strings.Count(text, "hiding interstitial"))
}

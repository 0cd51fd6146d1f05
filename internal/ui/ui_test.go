package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")

	assert.Contains(t, buf.String(), "v1.2.3 - ShiftLeft critical findings")
	assert.Contains(t, buf.String(), "SHIFTLEFT_ORG_ID")
}

func TestInteractiveOnRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, Interactive(f))
	assert.False(t, Interactive(nil))
}

func TestSpinnerHelpersAcceptNil(t *testing.T) {
	assert.NotPanics(t, func() {
		UpdateSpinner(nil, "x")
		StopSpinner(nil)
	})
}

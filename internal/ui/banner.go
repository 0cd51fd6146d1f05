package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func PrintBanner(w io.Writer, version string) {
	logo, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("crit", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("findings", pterm.FgGray.ToStyle()),
	).Srender()
	if err != nil {
		// the banner is drawn before the logger exists; fall back to the plain name
		logo = pterm.FgRed.Sprint("critfindings")
	}
	fmt.Fprintln(w, logo)
	fmt.Fprintln(w, pterm.DefaultCenter.Sprint(pterm.FgGray.Sprint(version+" - ShiftLeft critical findings")))

	fmt.Fprintln(w, pterm.DefaultBox.
		WithTitle(pterm.FgYellow.Sprint("API TOKEN IN USE")).
		WithTitleBottomCenter().
		WithRightPadding(2).
		WithLeftPadding(2).
		Sprint("Findings are read from the ShiftLeft organization set in SHIFTLEFT_ORG_ID.\nTreat the printed report as confidential."))
}

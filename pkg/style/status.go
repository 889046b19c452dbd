package style

import (
	"fmt"

	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/pterm/pterm"
)

// ResultStyle returns the badge style for an action result
func ResultStyle(result types.ActionResult) *pterm.Style {
	switch result {
	case types.ResultApplied, types.ResultCreated:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.ResultAlreadyApplied:
		return pterm.NewStyle(pterm.BgBlue, pterm.FgWhite)
	case types.ResultSkipped:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RenderResult renders result as a padded badge
func RenderResult(result types.ActionResult) string {
	return ResultStyle(result).Sprint(fmt.Sprintf(" %s ", result))
}

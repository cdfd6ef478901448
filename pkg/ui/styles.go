package ui

import (
	"github.com/pterm/pterm"
)

// prefix styles for the progress reporter
var (
	infoPrefix  = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	warnPrefix  = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	errorPrefix = pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	detailStyle = pterm.NewStyle(pterm.FgGray)
)

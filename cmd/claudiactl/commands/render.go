package commands

import "github.com/fatih/color"

// Color accents for terminal output. Partial response content is always
// printed verbatim and uncolored so it can be piped.
var (
	statusColor = color.New(color.FgCyan)
	noticeColor = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
	headerColor = color.New(color.FgWhite, color.Bold)
)

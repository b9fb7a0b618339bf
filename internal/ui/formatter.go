package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PadRight pads str with spaces up to width display cells
func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Truncate shortens str to width display cells, ending with "..." when cut
func Truncate(str string, width int) string {
	return runewidth.Truncate(str, width, "...")
}

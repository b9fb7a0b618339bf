package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
)

const (
	summaryTitleWidth  = 50
	summaryStatusWidth = 18
)

// SummaryItem is one PR line of the console summary
type SummaryItem struct {
	Number    int
	Title     string
	Author    string
	Status    string
	Reviewers string
}

// ConfirmOverwrite asks whether an existing report may be replaced
func ConfirmOverwrite(path string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s already exists. Overwrite", path),
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}

// PrintSummary writes an aligned one-line-per-PR overview to w
func PrintSummary(w io.Writer, items []SummaryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No open pull requests found.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "#%s %s %s %s %s\n",
			PadRight(fmt.Sprintf("%d", item.Number), 6),
			PadRight(Truncate(item.Title, summaryTitleWidth), summaryTitleWidth),
			PadRight(item.Author, 15),
			PadRight(item.Status, summaryStatusWidth),
			item.Reviewers,
		)
	}
}

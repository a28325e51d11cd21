// Package input provides interactive terminal prompts.
//
// Prompts read from stdin and write to stdout unless redirected with
// SetIO, which tests use to script answers.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	in  io.Reader = os.Stdin
	out io.Writer = os.Stdout
)

// SetIO redirects prompts to r and w. It returns a func restoring the
// previous pair.
func SetIO(r io.Reader, w io.Writer) (restore func()) {
	prevIn, prevOut := in, out
	in, out = r, w
	return func() { in, out = prevIn, prevOut }
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true. A read error such as
// EOF on a closed stdin also yields the default.
//
// Example:
//
//	if input.Confirm("wren.yml exists. Overwrite?", false) {
//	    // User said yes
//	}
//	// Displays: wren.yml exists. Overwrite? [y/N]: _
func Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return defaultYes
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer == "" {
		return defaultYes
	}

	return answer == "y" || answer == "yes"
}

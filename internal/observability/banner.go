package observability

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	colorReset    = "\033[0m"
	colorNeonCyan = "\033[96m"
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return w
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func PrintBanner() {
	banner := `
    ____  ____  ________  ________________
   / __ \/ __ \/  _/ ___// / / /_  __/  _/
  / / / / /_/ // / \__ \/ /_/ / / /  / /
 / /_/ / _, _// / ___/ / __  / / / _/ /
/_____/_/ |_/___//____/_/ /_/ /_/ /___/

     >> DATA-BACKED DECISION AGENT <<
`

	width := termWidth()
	for _, l := range strings.Split(banner, "\n") {
		padding := (width - len(l)) / 2
		if padding < 0 {
			padding = 0
		}
		fmt.Printf("%s%s%s\n", strings.Repeat(" ", padding), colorNeonCyan+l, colorReset)
	}
}

package pretty

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/taskflow/common"
)

const splashLogo = `
  _____         _    _____ _
 |_   _|_ _ ___| | _|  ___| | _____      __
   | |/ _' / __| |/ / |_  | |/ _ \ \ /\ / /
   | | (_| \__ \   <|  _| | | (_) \ V  V /
   |_|\__,_|___/_|\_\_|   |_|\___/ \_/\_/
`

var (
	splashDelay = 2 * time.Second

	// splashPause is replaceable so tests do not wait out the pacing
	// delay.
	splashPause = time.Sleep

	splashBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 4).
			Align(lipgloss.Center)

	splashLogoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	splashVersionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("220"))

	splashTaglineStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("252"))
)

// RenderSplash writes the one-shot startup banner and pauses briefly. The
// pause is cosmetic pacing, nothing waits on it for correctness.
func RenderSplash(out io.Writer) {
	content := splashLogoStyle.Render(splashLogo) + "\n\n" +
		splashVersionStyle.Render("Version "+common.Version) + "\n" +
		splashTaglineStyle.Render("A Full-Screen CLI Task Runner") + "\n\n" +
		timestampStyle.Render("Initializing...")

	fmt.Fprintln(out, splashBoxStyle.Render(content))
	splashPause(splashDelay)
}

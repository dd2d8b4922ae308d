package pretty

import (
	"os"

	"github.com/joshyorko/taskflow/common"
	"github.com/joshyorko/taskflow/flowcore"
	"github.com/mattn/go-isatty"
)

var (
	Colorless   bool
	Iconic      bool
	Disabled    bool
	Interactive bool
	White       string
	Grey        string
	Red         string
	Green       string
	Blue        string
	Yellow      string
	Magenta     string
	Cyan        string
	Reset       string
	Home        string
	Clear       string
	Bold        string
	Faint       string
	Italic      string
)

func csi(code string) string {
	return "\033[" + code
}

// Setup detects terminal capabilities and fills in the ANSI variables.
// Interactive requires stdin, stdout and stderr to all be TTYs, so prompts
// and the full-screen dashboard stay safe with piped streams.
func Setup() {
	stdin := isatty.IsTerminal(os.Stdin.Fd())
	stdout := isatty.IsTerminal(os.Stdout.Fd())
	stderr := isatty.IsTerminal(os.Stderr.Fd())

	if os.Getenv("NO_COLOR") != "" {
		Colorless = true
	}
	if os.Getenv("TERM") == "" || os.Getenv("TERM") == "dumb" {
		Colorless = true
	}

	Interactive = stdin && stdout && stderr
	Iconic = Interactive && !Colorless
	flowcore.Iconic = Iconic

	visualOutput := stdout && !Colorless

	common.Trace("Interactive mode enabled: %v; colors enabled: %v; icons enabled: %v",
		Interactive, visualOutput && !Disabled, Iconic)

	if visualOutput && !Disabled {
		White = csi("97m")
		Grey = csi("90m")
		Red = csi("91m")
		Green = csi("92m")
		Yellow = csi("93m")
		Blue = csi("94m")
		Magenta = csi("95m")
		Cyan = csi("96m")
		Reset = csi("0m")
		Home = csi("1;1H")
		Clear = csi("0J")
		Bold = csi("1m")
		Faint = csi("2m")
		Italic = csi("3m")
	}
}

// LevelColor maps a log level to its ANSI color, empty when colors are
// off.
func LevelColor(level flowcore.Level) string {
	if Colorless || Disabled {
		return ""
	}
	switch level {
	case flowcore.LevelStart:
		return Green
	case flowcore.LevelProgress:
		return Yellow
	case flowcore.LevelComplete:
		return Blue
	case flowcore.LevelWarning:
		return Bold + Yellow
	case flowcore.LevelSummary:
		return Magenta
	default:
		return White
	}
}

package refresh

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Observer defines the logging surface the refresh stages write to.
type Observer interface {
	// Printf logs a formatted line.
	Printf(format string, v ...interface{})

	// Warnf logs a formatted warning line. Warnings never fail the run.
	Warnf(format string, v ...interface{})

	// Banner opens a stage section.
	Banner(title string)

	// StageCompleted closes a stage section successfully.
	StageCompleted(title string)

	// StageFailed closes a stage section with an error.
	StageFailed(title string, err error)
}

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3b82f6"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22c55e"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#eab308"))
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

// ConsoleObserver implements Observer using the standard log package.
// Glyphs and banners are colored only when stderr is a terminal.
type ConsoleObserver struct {
	color bool
}

// NewConsoleObserver creates a console observer. Color is enabled when
// stderr is a terminal.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		color: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Warnf implements Observer.
func (o *ConsoleObserver) Warnf(format string, v ...interface{}) {
	log.Printf("%s %s", o.styled(warnStyle, warnMark), fmt.Sprintf(format, v...))
}

// Banner implements Observer.
func (o *ConsoleObserver) Banner(title string) {
	line := strings.Repeat("=", len(title)+8)
	log.Print(o.styled(bannerStyle, line))
	log.Print(o.styled(bannerStyle, fmt.Sprintf("=== %s ===", title)))
	log.Print(o.styled(bannerStyle, line))
}

// StageCompleted implements Observer.
func (o *ConsoleObserver) StageCompleted(title string) {
	log.Printf("%s %s", o.styled(okStyle, checkMark), title)
}

// StageFailed implements Observer.
func (o *ConsoleObserver) StageFailed(title string, err error) {
	log.Printf("%s %s: %v", o.styled(failStyle, crossMark), title, err)
}

func (o *ConsoleObserver) styled(style lipgloss.Style, s string) string {
	if !o.color {
		return s
	}
	return style.Render(s)
}

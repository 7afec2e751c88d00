package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/accountsystem/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// isTerminal is swapped in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor := lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}

	levels := map[log.Level]struct {
		icon  string
		color lipgloss.AdaptiveColor
	}{
		log.ErrorLevel: {"❌", errorTxtColor},
		log.InfoLevel:  {"ℹ️", infoTxtColor},
		log.WarnLevel:  {"⚠️", warnTxtColor},
		log.DebugLevel: {"🐛", debugTxtColor},
	}
	for level, s := range levels {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(s.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(s.color)
	}

	keyColors := map[string]lipgloss.AdaptiveColor{
		"error":     errorTxtColor,
		"kind":      warnTxtColor,
		"operation": infoTxtColor,
		"prefix":    debugTxtColor,
		"caller":    debugTxtColor,
		"time":      debugTxtColor,
	}
	for key, color := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// newLogger builds the process logger over w. An empty format picks text on a
// terminal and JSON otherwise. Logs never go to stdout, which carries the
// legacy transcript.
func newLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{}
	}

	formatter := log.JSONFormatter
	switch cfg.Format {
	case "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	default:
		if isTerminal(w) {
			formatter = log.TextFormatter
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level <= int(log.DebugLevel),
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(logStyles())

	return slog.New(logger)
}

func setupLogger(cfg *config.Log) *slog.Logger {
	slogger := newLogger(cfg, os.Stderr)
	slog.SetDefault(slogger)
	return slogger
}

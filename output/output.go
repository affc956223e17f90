// Package output provides terminal output utilities.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"

	"github.com/viniciuscsouza/create-mcp-server/version"
)

// Logger is the global logger instance.
var Logger = log.NewWithOptions(os.Stderr, log.Options{})

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("44"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// SetupLogging configures the logger based on verbosity.
func SetupLogging(w io.Writer, verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
	})
}

func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...any) {
	Logger.Error(msg, keyvals...)
}

// Dump logs a full dump of v at debug level.
func Dump(msg string, v any) {
	if Logger.GetLevel() > log.DebugLevel {
		return
	}

	Logger.Debug(msg + "\n" + spew.Sdump(v))
}

func Banner(w io.Writer, info version.Info) {
	_, _ = fmt.Fprintf(w, "\n%s\n%s\n\n", bannerStyle.Render(fmt.Sprintf("Welcome to %s %s!", info.Name, info.Version)), dimStyle.Render(info.Description))
}

func Success(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, successStyle.Render(msg))
}

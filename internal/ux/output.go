package ux

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// ANSI color helpers. Empty when stdout is not a terminal or NO_COLOR is set.
var (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func init() {
	if os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		DisableColor()
	}
}

// DisableColor turns every color helper into an empty string.
func DisableColor() {
	Reset, Bold, Dim, Red, Green, Yellow, Cyan = "", "", "", "", "", "", ""
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// StageHeader prints a timestamped stage header.
func StageHeader(index, total int, name, desc string) {
	if desc != "" {
		desc = " — " + desc
	}
	fmt.Printf("\n%s[%s]%s %sStage %d/%d: %s%s%s\n",
		Dim, timestamp(), Reset, Bold, index+1, total, name, desc, Reset)
}

// StageComplete prints a stage completion message.
func StageComplete(index int, duration time.Duration, detail string) {
	if detail != "" {
		detail = ": " + detail
	}
	fmt.Printf("%s[%s]%s  %s✓ Stage %d complete (%s)%s%s\n",
		Dim, timestamp(), Reset, Green, index+1, formatDuration(duration), detail, Reset)
}

// StageFail prints a stage failure message.
func StageFail(index int, name, errMsg string) {
	fmt.Printf("%s[%s]%s  %s✗ Stage %d (%s) failed: %s%s\n",
		Dim, timestamp(), Reset, Red, index+1, name, errMsg, Reset)
}

// Item prints an indented per-file line.
func Item(format string, args ...any) {
	fmt.Printf("    %s\n", fmt.Sprintf(format, args...))
}

// Verdict prints the triage decision for one document.
func Verdict(path string, needed bool) {
	if needed {
		fmt.Printf("    %s→ update needed%s  %s\n", Yellow, Reset, path)
		return
	}
	fmt.Printf("    %s– no update%s     %s\n", Dim, Reset, path)
}

// Warn prints a recoverable warning to stderr.
func Warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %swarning:%s %s\n", Yellow, Reset, fmt.Sprintf(format, args...))
}

// Done prints the terminal status line of a run that had nothing to do.
func Done(msg string) {
	fmt.Printf("\n%s[%s]%s  %s%s%s\n\n", Dim, timestamp(), Reset, Bold, msg, Reset)
}

// Success prints the terminal status line of a run that opened a pull request.
func Success(url string) {
	fmt.Printf("\n%s[%s]%s  %s%s══ Created pull request: %s ══%s\n\n",
		Dim, timestamp(), Reset, Bold, Green, url, Reset)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}

// Package output delivers completion text to the configured sink. The
// clipboard, notification, and dialog sinks shell out to macOS tooling
// (pbcopy / osascript), matching the platform the tool targets; stdout works
// everywhere and is what the serve mode and tests use.
package output

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"rephraser/internal/errs"
)

// maxNotificationLength caps notification text; longer output is truncated
// with an ellipsis.
const maxNotificationLength = 200

// Sink accepts the final completion text.
type Sink interface {
	Deliver(text string) error
}

// New dispatches a method name to a sink. Unknown methods are a
// configuration error.
func New(method string) (Sink, error) {
	switch method {
	case "stdout":
		return &StdoutSink{W: os.Stdout}, nil
	case "clipboard":
		return &ClipboardSink{}, nil
	case "notification":
		return &NotificationSink{}, nil
	case "dialog":
		return &DialogSink{}, nil
	default:
		return nil, errs.New(errs.KindConfig, "unknown output method: %s", method)
	}
}

// StdoutSink writes the text followed by a newline.
type StdoutSink struct {
	W io.Writer
}

func (s *StdoutSink) Deliver(text string) error {
	if _, err := fmt.Fprintln(s.W, text); err != nil {
		return errs.Wrap(errs.KindOutput, err, "failed to write output")
	}
	return nil
}

// ClipboardSink pipes the text into pbcopy.
type ClipboardSink struct{}

func (s *ClipboardSink) Deliver(text string) error {
	if err := requireMacOS(); err != nil {
		return err
	}
	cmd := exec.Command("pbcopy")
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errs.Wrap(errs.KindOutput, err, "pbcopy failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// NotificationSink shows a system notification titled "Rephraser".
type NotificationSink struct{}

func (s *NotificationSink) Deliver(text string) error {
	if err := requireMacOS(); err != nil {
		return err
	}
	body := escapeAppleScript(flattenLines(truncateNotification(text)))
	script := fmt.Sprintf(`display notification "%s" with title "Rephraser"`, body)
	return runOsascript(script)
}

// DialogSink shows a blocking dialog with an OK button.
type DialogSink struct{}

func (s *DialogSink) Deliver(text string) error {
	if err := requireMacOS(); err != nil {
		return err
	}
	script := fmt.Sprintf(`display dialog "%s" with title "Rephraser" buttons {"OK"} default button "OK"`, escapeAppleScript(text))
	return runOsascript(script)
}

func runOsascript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errs.Wrap(errs.KindOutput, err, "osascript failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func requireMacOS() error {
	if runtime.GOOS != "darwin" {
		return errs.New(errs.KindOutput, "this output method requires macOS (running on %s)", runtime.GOOS)
	}
	return nil
}

// truncateNotification shortens text to maxNotificationLength runes,
// appending an ellipsis when anything was cut.
func truncateNotification(text string) string {
	runes := []rune(text)
	if len(runes) <= maxNotificationLength {
		return text
	}
	return string(runes[:maxNotificationLength]) + "…"
}

// flattenLines collapses newlines to spaces; notifications are single-line.
func flattenLines(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}

// escapeAppleScript escapes backslashes and double quotes for embedding in
// an AppleScript string literal.
func escapeAppleScript(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(text, `"`, `\"`)
}

// Package output provides consistent CLI output formatting for the
// one-shot commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/userpeek/userpeek/internal/platform"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out io.Writer
}

// New creates a new output Writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// JSON prints v as indented JSON, for scripting consumers.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Users prints a search result list, one user per entry.
func (w *Writer) Users(users []platform.User) {
	if len(users) == 0 {
		w.Status("", "No users found")
		return
	}
	for _, u := range users {
		line := fmt.Sprintf("%s (@%s) id=%d", u.DisplayName, u.Name, u.ID)
		if u.HasVerifiedBadge {
			line += " [Verified]"
		}
		_, _ = fmt.Fprintln(w.out, line)
		if len(u.PreviousUsernames) > 0 {
			_, _ = fmt.Fprintf(w.out, "    previously: %s\n", strings.Join(u.PreviousUsernames, ", "))
		}
	}
}

// UserDetail prints one user with avatar and profile links.
func (w *Writer) UserDetail(u platform.User, avatarURL, profileURL string) {
	title := u.DisplayName
	if u.HasVerifiedBadge {
		title += " [Verified]"
	}
	_, _ = fmt.Fprintln(w.out, title)
	_, _ = fmt.Fprintf(w.out, "  Handle:   @%s\n", u.Name)
	_, _ = fmt.Fprintf(w.out, "  ID:       %d\n", u.ID)
	if len(u.PreviousUsernames) > 0 {
		_, _ = fmt.Fprintf(w.out, "  Previously: %s\n", strings.Join(u.PreviousUsernames, ", "))
	}
	_, _ = fmt.Fprintf(w.out, "  Avatar:   %s\n", avatarURL)
	_, _ = fmt.Fprintf(w.out, "  Profile:  %s\n", profileURL)
}

// Headshots prints resolved thumbnail URLs keyed by user id. Pending
// or failed ids render as pending so callers can tell them apart from
// an empty response.
func (w *Writer) Headshots(ids []int64, urls map[int64]string) {
	for _, id := range ids {
		if url, ok := urls[id]; ok {
			_, _ = fmt.Fprintf(w.out, "%d  %s\n", id, url)
		} else {
			_, _ = fmt.Fprintf(w.out, "%d  (pending)\n", id)
		}
	}
}

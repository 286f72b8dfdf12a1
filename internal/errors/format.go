package errors

import (
	"fmt"
	"sort"
	"strings"
)

// FormatForUser returns a user-friendly error message. This is what
// the widget's error row and the CLI surface to the terminal: the
// transport's own message, with the code appended for reference.
func FormatForUser(err error) string {
	if err == nil {
		return ""
	}

	pe, ok := err.(*PeekError)
	if !ok {
		// Standard error - just return message
		return err.Error()
	}

	var sb strings.Builder
	sb.WriteString(pe.Message)
	if len(pe.Details) > 0 {
		keys := make([]string, 0, len(pe.Details))
		for key := range pe.Details {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sb.WriteString(fmt.Sprintf(" (%s: %s)", key, pe.Details[key]))
		}
	}
	return sb.String()
}

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	pe, ok := err.(*PeekError)
	if !ok {
		pe = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", pe.Message))
	sb.WriteString(fmt.Sprintf("  Code: %s\n", pe.Code))
	return sb.String()
}

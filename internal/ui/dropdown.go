package ui

import (
	"fmt"
	"strings"

	"github.com/userpeek/userpeek/internal/platform"
	"github.com/userpeek/userpeek/internal/search"
)

// AvatarLookup resolves a user id to a thumbnail URL, falling back to
// the placeholder. Satisfied by *avatar.Resolver.
type AvatarLookup interface {
	URL(id int64) string
	Resolved(id int64) bool
}

// renderDropdown renders the result dropdown for the given state.
// Pure over its inputs so the per-state rendering is testable without
// a running program.
func renderDropdown(d search.Dropdown, cursor int, avatars AvatarLookup, spinnerView string, styles Styles, width int) string {
	switch d.State {
	case search.StateHidden:
		return ""
	case search.StateLoading:
		return styles.Panel.Width(width).Render(spinnerView + " Searching...")
	case search.StateError:
		return styles.Panel.Width(width).Render(styles.Error.Render("✗ " + d.ErrorMessage))
	case search.StateEmpty:
		return styles.Panel.Width(width).Render(styles.Dim.Render("No users found"))
	case search.StatePopulated:
		var rows []string
		for i, user := range d.Users {
			rows = append(rows, renderRow(user, i == cursor, avatars, styles))
		}
		return styles.Panel.Width(width).Render(strings.Join(rows, "\n"))
	default:
		return ""
	}
}

// renderRow renders one result row: cursor marker, avatar indicator,
// display name, handle, Verified tag, and a second line with previous
// usernames when the profile has any.
func renderRow(user platform.User, selected bool, avatars AvatarLookup, styles Styles) string {
	marker := "  "
	nameStyle := styles.Name
	if selected {
		marker = "> "
		nameStyle = styles.Selected
	}

	// Resolved avatars show a filled indicator; placeholder a hollow one.
	indicator := styles.Dim.Render("○")
	if avatars.Resolved(user.ID) {
		indicator = styles.Header.Render("◉")
	}

	line := marker + indicator + " " +
		nameStyle.Render(user.DisplayName) + " " +
		styles.Handle.Render("@"+user.Name)
	if user.HasVerifiedBadge {
		line += " " + styles.Verified.Render("[Verified]")
	}

	if len(user.PreviousUsernames) > 0 {
		line += "\n" + "    " + styles.Dim.Render(
			fmt.Sprintf("Previously: %s", strings.Join(user.PreviousUsernames, ", ")))
	}

	return line
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/userpeek/userpeek/internal/platform"
)

// Margin between the modal edge and the screen edge, so the user can
// see the search view is still behind it. Collapses on small screens.
const modalMargin = 2

// renderModal renders the profile detail panel for the selected user,
// centered on the screen. Opening triggers no network call: the avatar
// URL comes from whatever the resolver already cached.
func renderModal(user platform.User, avatarURL, profileURL string, styles Styles, screenWidth, screenHeight int) string {
	var lines []string

	title := user.DisplayName
	if user.HasVerifiedBadge {
		title += " " + styles.Verified.Render("[Verified]")
	}
	lines = append(lines, styles.Header.Render(title))
	lines = append(lines, styles.Handle.Render("@"+user.Name))
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("%s %d", styles.Label.Render("ID:"), user.ID))
	lines = append(lines, fmt.Sprintf("%s %s", styles.Label.Render("Avatar:"), styles.Link.Render(avatarURL)))

	if len(user.PreviousUsernames) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s",
			styles.Label.Render("Previously:"),
			strings.Join(user.PreviousUsernames, ", ")))
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %s", styles.Label.Render("Profile:"), styles.Link.Render(profileURL)))
	lines = append(lines, "")
	lines = append(lines, styles.Dim.Render("esc to close"))

	content := strings.Join(lines, "\n")

	maxWidth := screenWidth - modalMargin*2
	panel := styles.Panel
	if maxWidth > 0 {
		panel = panel.MaxWidth(maxWidth)
	}
	rendered := panel.Render(content)

	if screenWidth <= 0 || screenHeight <= 0 {
		return rendered
	}
	return lipgloss.Place(screenWidth, screenHeight, lipgloss.Center, lipgloss.Center, rendered)
}

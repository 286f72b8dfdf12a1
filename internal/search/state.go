package search

import (
	"github.com/userpeek/userpeek/internal/errors"
	"github.com/userpeek/userpeek/internal/platform"
)

// State is the presentation state of the result dropdown.
type State int

const (
	// StateHidden means the dropdown is not rendered.
	StateHidden State = iota
	// StateLoading means a search has been dispatched and is in flight.
	StateLoading
	// StateError means the last search failed; the message is shown.
	StateError
	// StateEmpty means the last search succeeded with zero results.
	StateEmpty
	// StatePopulated means the last search returned at least one result.
	StatePopulated
)

// String returns the state name for logging and tests.
func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// Dropdown holds the result dropdown's state: which presentation state
// it is in, the current result list, and the error message when in the
// error state. Transitions follow the controller's update stream plus
// explicit dismissal.
type Dropdown struct {
	State        State
	Users        []platform.User
	ErrorMessage string

	// suppressed is set by Dismiss and holds the dropdown hidden while
	// the cycle that was live at dismissal completes. The next
	// dispatched cycle clears it and re-opens the dropdown.
	suppressed bool
}

// Apply transitions the dropdown according to a controller update:
// dispatch moves to loading, results to populated or empty, a failure
// to error with the message set, and a cleared cycle back to hidden.
func (d *Dropdown) Apply(u Update) {
	switch u.Kind {
	case UpdateDispatched:
		d.suppressed = false
		d.State = StateLoading
		d.ErrorMessage = ""
	case UpdateResults:
		if d.suppressed {
			return
		}
		d.Users = u.Users
		d.ErrorMessage = ""
		if len(u.Users) == 0 {
			d.State = StateEmpty
		} else {
			d.State = StatePopulated
		}
	case UpdateError:
		if d.suppressed {
			return
		}
		d.Users = nil
		d.ErrorMessage = errors.FormatForUser(u.Err)
		d.State = StateError
	case UpdateCleared:
		d.suppressed = false
		d.Users = nil
		d.ErrorMessage = ""
		d.State = StateHidden
	}
}

// Dismiss hides the dropdown without touching any in-flight request:
// outside-click and selection both suppress the visual surface only.
// A response from the cycle that was live at dismissal stays hidden;
// the next dispatched search re-opens the dropdown.
func (d *Dropdown) Dismiss() {
	d.State = StateHidden
	d.suppressed = true
}

// Visible reports whether the dropdown renders at all.
func (d *Dropdown) Visible() bool {
	return d.State != StateHidden
}

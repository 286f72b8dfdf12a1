package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/userpeek/userpeek/internal/platform"
)

func TestDropdown_TransitionTable(t *testing.T) {
	users := []platform.User{{ID: 1, Name: "roblox"}}

	tests := []struct {
		name   string
		from   State
		update Update
		want   State
	}{
		{"hidden to loading on dispatch", StateHidden, Update{Kind: UpdateDispatched}, StateLoading},
		{"loading to populated", StateLoading, Update{Kind: UpdateResults, Users: users}, StatePopulated},
		{"loading to empty", StateLoading, Update{Kind: UpdateResults}, StateEmpty},
		{"loading to error", StateLoading, Update{Kind: UpdateError, Err: fmt.Errorf("boom")}, StateError},
		{"populated to loading on new dispatch", StatePopulated, Update{Kind: UpdateDispatched}, StateLoading},
		{"error to loading on new dispatch", StateError, Update{Kind: UpdateDispatched}, StateLoading},
		{"empty to loading on new dispatch", StateEmpty, Update{Kind: UpdateDispatched}, StateLoading},
		{"populated to hidden on clear", StatePopulated, Update{Kind: UpdateCleared}, StateHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dropdown{State: tt.from}
			d.Apply(tt.update)
			assert.Equal(t, tt.want, d.State)
		})
	}
}

func TestDropdown_ErrorClearsResultsAndSetsMessage(t *testing.T) {
	d := Dropdown{State: StatePopulated, Users: []platform.User{{ID: 1}}}
	d.Apply(Update{Kind: UpdateError, Err: fmt.Errorf("status 500")})

	assert.Equal(t, StateError, d.State)
	assert.Empty(t, d.Users)
	assert.Equal(t, "status 500", d.ErrorMessage)
}

func TestDropdown_ResultsClearPriorError(t *testing.T) {
	d := Dropdown{State: StateError, ErrorMessage: "status 500"}
	d.Apply(Update{Kind: UpdateResults, Users: []platform.User{{ID: 1}}})

	assert.Equal(t, StatePopulated, d.State)
	assert.Empty(t, d.ErrorMessage)
	assert.Len(t, d.Users, 1)
}

func TestDropdown_DismissFromAnyState(t *testing.T) {
	for _, from := range []State{StateLoading, StateError, StateEmpty, StatePopulated} {
		d := Dropdown{State: from, Users: []platform.User{{ID: 1}}}
		d.Dismiss()
		assert.Equal(t, StateHidden, d.State, "from %s", from)
		// Dismissal is visual only; results survive for the session
		assert.Len(t, d.Users, 1)
	}
}

func TestDropdown_DismissSuppressesInFlightResponse(t *testing.T) {
	d := Dropdown{}

	// A search is in flight when the dropdown is dismissed.
	d.Apply(Update{Kind: UpdateDispatched})
	d.Dismiss()

	// Its late response must not re-open the dropdown.
	d.Apply(Update{Kind: UpdateResults, Users: []platform.User{{ID: 1}}})
	assert.Equal(t, StateHidden, d.State)

	// The next dispatched cycle re-opens it as usual.
	d.Apply(Update{Kind: UpdateDispatched})
	assert.Equal(t, StateLoading, d.State)
	d.Apply(Update{Kind: UpdateResults, Users: []platform.User{{ID: 2}}})
	assert.Equal(t, StatePopulated, d.State)
	assert.Equal(t, int64(2), d.Users[0].ID)
}

func TestDropdown_DismissSuppressesInFlightError(t *testing.T) {
	d := Dropdown{}
	d.Apply(Update{Kind: UpdateDispatched})
	d.Dismiss()

	d.Apply(Update{Kind: UpdateError, Err: fmt.Errorf("status 500")})
	assert.Equal(t, StateHidden, d.State)
	assert.Empty(t, d.ErrorMessage)
}

func TestDropdown_Visible(t *testing.T) {
	d := Dropdown{}
	assert.False(t, d.Visible())
	d.Apply(Update{Kind: UpdateDispatched})
	assert.True(t, d.Visible())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "hidden", StateHidden.String())
	assert.Equal(t, "populated", StatePopulated.String())
	assert.Equal(t, "unknown", State(99).String())
}

package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline-backend/internal/user"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "confirmed", "completed", "cancelled"} {
		s, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), s)
	}

	_, err := ParseStatus("archived")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)

	// Case sensitive on purpose: the API validates lowercase values.
	_, err = ParseStatus("Pending")
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]Status{from, to}]
			assert.Equal(t, want, CanTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestCanTransitionRejectsSelfAndTerminal(t *testing.T) {
	// Self-transitions are never allowed.
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		assert.False(t, CanTransition(s, s), "self transition for %s", s)
	}

	// Nothing leaves a terminal state.
	for _, from := range []Status{StatusCompleted, StatusCancelled} {
		require.True(t, from.IsTerminal())
		for _, to := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
			assert.False(t, CanTransition(from, to), "transition %s -> %s", from, to)
		}
	}

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestRoleMayTransition(t *testing.T) {
	// Customers may only cancel.
	assert.True(t, RoleMayTransition(user.RoleCustomer, StatusPending, StatusCancelled))
	assert.True(t, RoleMayTransition(user.RoleCustomer, StatusConfirmed, StatusCancelled))
	assert.False(t, RoleMayTransition(user.RoleCustomer, StatusPending, StatusConfirmed))
	assert.False(t, RoleMayTransition(user.RoleCustomer, StatusConfirmed, StatusCompleted))

	// Business owners may perform every table-allowed transition.
	assert.True(t, RoleMayTransition(user.RoleBusiness, StatusPending, StatusConfirmed))
	assert.True(t, RoleMayTransition(user.RoleBusiness, StatusConfirmed, StatusCompleted))
	assert.True(t, RoleMayTransition(user.RoleBusiness, StatusPending, StatusCancelled))

	// Admins too.
	assert.True(t, RoleMayTransition(user.RoleAdmin, StatusPending, StatusConfirmed))
	assert.True(t, RoleMayTransition(user.RoleAdmin, StatusConfirmed, StatusCompleted))

	// Unknown roles get nothing.
	assert.False(t, RoleMayTransition(user.Role("guest"), StatusPending, StatusCancelled))
}

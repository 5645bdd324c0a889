package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusIssued},
		{StatusApproved, StatusRejected},
		{StatusIssued, StatusReturned},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{StatusPending, StatusIssued},
		{StatusPending, StatusReturned},
		{StatusApproved, StatusReturned},
		{StatusApproved, StatusPending},
		{StatusIssued, StatusApproved},
		{StatusIssued, StatusRejected},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestTerminalStatusesAcceptNoTransition(t *testing.T) {
	statuses := []string{StatusPending, StatusApproved, StatusRejected, StatusIssued, StatusReturned}
	for _, terminal := range []string{StatusRejected, StatusReturned} {
		assert.True(t, IsTerminalStatus(terminal))
		for _, to := range statuses {
			assert.False(t, CanTransition(terminal, to), "%s must stay terminal", terminal)
		}
	}
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusApproved))
	assert.False(t, IsTerminalStatus(StatusIssued))
}

func TestApplyIssue(t *testing.T) {
	c := Component{TotalQuantity: 10, AvailableQuantity: 7, IssuedQuantity: 2, DamagedQuantity: 1}

	assert.NoError(t, c.ApplyIssue(3))
	assert.Equal(t, 4, c.AvailableQuantity)
	assert.Equal(t, 5, c.IssuedQuantity)
	assert.Equal(t, 10, c.TotalQuantity)

	// Cannot issue more than available
	assert.ErrorIs(t, c.ApplyIssue(5), ErrInsufficientStock)
	assert.Equal(t, 4, c.AvailableQuantity, "failed issue must not change counters")

	// Zero and negative quantities are rejected
	assert.ErrorIs(t, c.ApplyIssue(0), ErrInsufficientStock)
	assert.ErrorIs(t, c.ApplyIssue(-1), ErrInsufficientStock)
}

func TestApplyReturn(t *testing.T) {
	base := Component{TotalQuantity: 10, AvailableQuantity: 3, IssuedQuantity: 6, DamagedQuantity: 1}

	good := base
	assert.NoError(t, good.ApplyReturn(4, ReturnConditionGood))
	assert.Equal(t, 7, good.AvailableQuantity)
	assert.Equal(t, 2, good.IssuedQuantity)
	assert.Equal(t, 10, good.TotalQuantity)

	damaged := base
	assert.NoError(t, damaged.ApplyReturn(2, ReturnConditionDamaged))
	assert.Equal(t, 3, damaged.DamagedQuantity)
	assert.Equal(t, 4, damaged.IssuedQuantity)
	assert.Equal(t, 10, damaged.TotalQuantity)

	missing := base
	assert.NoError(t, missing.ApplyReturn(1, ReturnConditionMissing))
	assert.Equal(t, 9, missing.TotalQuantity)
	assert.Equal(t, 5, missing.IssuedQuantity)

	over := base
	assert.ErrorIs(t, over.ApplyReturn(7, ReturnConditionGood), ErrInsufficientStock)

	bogus := base
	assert.Error(t, bogus.ApplyReturn(1, "pristine"))
}

func TestCountersNeverGoNegative(t *testing.T) {
	// Property: no sequence of issue/return operations drives any counter
	// below zero or breaks the quantity invariant.
	c := Component{TotalQuantity: 2, AvailableQuantity: 2}

	assert.NoError(t, c.ApplyIssue(2))
	assert.ErrorIs(t, c.ApplyIssue(1), ErrInsufficientStock)
	assert.NoError(t, c.ApplyReturn(1, ReturnConditionDamaged))
	assert.NoError(t, c.ApplyReturn(1, ReturnConditionMissing))
	assert.ErrorIs(t, c.ApplyReturn(1, ReturnConditionGood), ErrInsufficientStock)

	assert.NoError(t, c.CheckQuantities())
	assert.GreaterOrEqual(t, c.AvailableQuantity, 0)
	assert.GreaterOrEqual(t, c.IssuedQuantity, 0)
	assert.GreaterOrEqual(t, c.DamagedQuantity, 0)
	assert.GreaterOrEqual(t, c.TotalQuantity, 0)
}

func TestCheckQuantities(t *testing.T) {
	ok := Component{TotalQuantity: 5, AvailableQuantity: 2, IssuedQuantity: 2, DamagedQuantity: 1}
	assert.NoError(t, ok.CheckQuantities())

	mismatch := Component{TotalQuantity: 5, AvailableQuantity: 5, IssuedQuantity: 1}
	assert.ErrorIs(t, mismatch.CheckQuantities(), ErrQuantityInvariant)

	negative := Component{TotalQuantity: 0, AvailableQuantity: -1, IssuedQuantity: 1}
	assert.ErrorIs(t, negative.CheckQuantities(), ErrQuantityInvariant)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleStudent))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleSuperAdmin))
	assert.False(t, ValidRole("super-admin"))
	assert.False(t, ValidRole(""))
}

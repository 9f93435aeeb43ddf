package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from RegistrationStatus
		to   RegistrationStatus
		want bool
	}{
		{RegStatusRegistered, RegStatusConfirmed, true},
		{RegStatusRegistered, RegStatusAttended, false},
		{RegStatusRegistered, RegStatusCancelled, true},
		{RegStatusConfirmed, RegStatusAttended, true},
		{RegStatusConfirmed, RegStatusRegistered, false},
		{RegStatusConfirmed, RegStatusCancelled, true},
		{RegStatusAttended, RegStatusCancelled, true},
		{RegStatusAttended, RegStatusConfirmed, false},
		{RegStatusCancelled, RegStatusRegistered, false},
		{RegStatusCancelled, RegStatusConfirmed, false},
		{RegStatusCancelled, RegStatusCancelled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestRegistration_Advance(t *testing.T) {
	reg := &Registration{Status: RegStatusRegistered}

	require.NoError(t, reg.Advance(RegStatusConfirmed))
	assert.Equal(t, RegStatusConfirmed, reg.Status)

	require.NoError(t, reg.Advance(RegStatusAttended))
	assert.Equal(t, RegStatusAttended, reg.Status)

	err := reg.Advance(RegStatusConfirmed)
	require.Error(t, err)
	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, RegStatusAttended, invalid.From)
	assert.Equal(t, RegStatusConfirmed, invalid.To)
	assert.Equal(t, RegStatusAttended, reg.Status, "failed advance must not change status")
}

func TestRegistration_Advance_CancelledIsTerminal(t *testing.T) {
	reg := &Registration{Status: RegStatusConfirmed}
	require.NoError(t, reg.Advance(RegStatusCancelled))

	err := reg.Advance(RegStatusRegistered)
	require.Error(t, err)
	assert.Equal(t, RegStatusCancelled, reg.Status)
}

func TestClampCompanions(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{-1, 0},
		{0, 0},
		{3, 3},
		{10, 10},
		{11, 10},
		{100, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampCompanions(tt.in), "clamp(%d)", tt.in)
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"VENDOR", RoleVendor, false},
		{" customer ", RoleCustomer, false},
		{"Rider", RoleRider, false},
		{"manager", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleVendor.IsValid())
	assert.False(t, Role("GUEST").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestOrderStatusIsImportant(t *testing.T) {
	important := []OrderStatus{
		StatusAssigned, StatusPickedUp, StatusOutForDelivery,
		StatusDelivered, StatusCancelled,
	}
	for _, s := range important {
		assert.True(t, s.IsImportant(), s.String())
	}

	quiet := []OrderStatus{
		StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
	}
	for _, s := range quiet {
		assert.False(t, s.IsImportant(), s.String())
	}
}

func TestViewerZero(t *testing.T) {
	assert.True(t, Viewer{}.Zero())
	assert.False(t, Viewer{ID: "vendor-7", Role: RoleVendor}.Zero())
}

package kernel_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingNumber(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		tn := kernel.NewTrackingNumber()
		require.NoError(t, tn.Validate())
		assert.Regexp(t, `^PMS-[0-9A-F]{8}$`, tn.String())
		seen[tn.String()] = struct{}{}
	}
	assert.Greater(t, len(seen), 95)
}

func TestParseTrackingNumber(t *testing.T) {
	tn, err := kernel.ParseTrackingNumber("PMS-0A1B2C3D")
	require.NoError(t, err)
	assert.Equal(t, "PMS-0A1B2C3D", tn.String())
	again, _ := kernel.ParseTrackingNumber("PMS-0A1B2C3D")
	assert.True(t, tn.IsEqual(again))

	tests := []struct {
		in   string
		want error
	}{
		{"", errs.ErrValueIsRequired},
		{"PMS-0a1b2c3d", errs.ErrValueIsInvalid},
		{"PMS-0A1B2C3", errs.ErrValueIsInvalid},
		{"XYZ-0A1B2C3D", errs.ErrValueIsInvalid},
		{"PMS-0A1B2C3DE", errs.ErrValueIsInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := kernel.ParseTrackingNumber(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTrackingNumber_ZeroValue(t *testing.T) {
	var tn kernel.TrackingNumber
	assert.Equal(t, kernel.ErrTrackingNumberIsNotConstructed, tn.Validate())
}

package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpecValidate(t *testing.T) {
	base := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		spec    Spec
		wantErr error
	}{
		{
			name: "valid range",
			spec: Spec{ResourceID: "r1", Kind: KindEvent, Start: base, End: base.Add(time.Hour)},
		},
		{
			name:    "zero-length range",
			spec:    Spec{ResourceID: "r1", Kind: KindEvent, Start: base, End: base},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "inverted range",
			spec:    Spec{ResourceID: "r1", Kind: KindDeliveryLeg, Start: base.Add(time.Hour), End: base},
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLowestFreeSlot(t *testing.T) {
	tests := []struct {
		name     string
		occupied []int
		capacity int
		want     int
		wantFree bool
	}{
		{name: "empty resource", occupied: nil, capacity: 1, want: 0, wantFree: true},
		{name: "capacity-1 resource busy", occupied: []int{0}, capacity: 1, wantFree: false},
		{name: "capacity-2 crew with one job gets second slot", occupied: []int{0}, capacity: 2, want: 1, wantFree: true},
		{name: "capacity-2 crew fully booked", occupied: []int{0, 1}, capacity: 2, wantFree: false},
		{name: "released lower slot is reused", occupied: []int{1}, capacity: 2, want: 0, wantFree: true},
		{name: "gap in the middle", occupied: []int{0, 2}, capacity: 3, want: 1, wantFree: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, free := lowestFreeSlot(tt.occupied, tt.capacity)
			assert.Equal(t, tt.wantFree, free)
			if tt.wantFree {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

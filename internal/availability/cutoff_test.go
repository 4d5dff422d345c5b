package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func testPolicy(t *testing.T) Policy {
	return Policy{
		Location:   chicago(t),
		LeadTime:   18 * time.Hour,
		CutoffHour: 12,
	}
}

func TestEarliestBookableDate(t *testing.T) {
	p := testPolicy(t)
	loc := p.Location

	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "before cutoff, tomorrow is bookable",
			at:   time.Date(2026, 6, 10, 11, 59, 0, 0, loc),
			want: time.Date(2026, 6, 11, 0, 0, 0, 0, loc),
		},
		{
			name: "at cutoff, next-day window closed",
			at:   time.Date(2026, 6, 10, 12, 0, 0, 0, loc),
			want: time.Date(2026, 6, 12, 0, 0, 0, 0, loc),
		},
		{
			name: "after cutoff",
			at:   time.Date(2026, 6, 10, 17, 30, 0, 0, loc),
			want: time.Date(2026, 6, 12, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.EarliestBookableDate(tt.at)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestCheckCutoff(t *testing.T) {
	p := testPolicy(t)
	loc := p.Location

	morning := time.Date(2026, 6, 10, 9, 0, 0, 0, loc)
	afternoon := time.Date(2026, 6, 10, 14, 0, 0, 0, loc)

	tests := []struct {
		name         string
		at           time.Time
		eventDate    time.Time
		wantErr      bool
		wantEarliest time.Time
	}{
		{
			name:      "same-day always rejected",
			at:        morning,
			eventDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			wantErr:   true,
			// Before cutoff, tomorrow is still open.
			wantEarliest: time.Date(2026, 6, 11, 0, 0, 0, 0, loc),
		},
		{
			name:      "past date rejected",
			at:        morning,
			eventDate: time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC),
			wantErr:   true,
		},
		{
			name:      "next-day before cutoff accepted",
			at:        morning,
			eventDate: time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC),
			wantErr:   false,
		},
		{
			name:         "next-day after cutoff rejected",
			at:           afternoon,
			eventDate:    time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC),
			wantErr:      true,
			wantEarliest: time.Date(2026, 6, 12, 0, 0, 0, 0, loc),
		},
		{
			name:      "two days out after cutoff accepted",
			at:        afternoon,
			eventDate: time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckCutoff(tt.at, tt.eventDate)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, IsCutoffViolation(err))

			var dre *DateRuleError
			require.ErrorAs(t, err, &dre)
			if !tt.wantEarliest.IsZero() {
				assert.True(t, dre.EarliestAvailable.Equal(tt.wantEarliest),
					"earliest got %v, want %v", dre.EarliestAvailable, tt.wantEarliest)
			}
		})
	}
}

// Requested dates arrive as UTC midnights from the HTTP layer. They must be
// treated as calendar days, not shifted to the previous day by timezone
// conversion.
func TestCheckCutoffCalendarDateSemantics(t *testing.T) {
	p := testPolicy(t)

	at := time.Date(2026, 6, 10, 9, 0, 0, 0, p.Location)
	// 2026-06-11T00:00Z is 2026-06-10 19:00 in Chicago. As a calendar day
	// it still means June 11.
	err := p.CheckCutoff(at, time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
}

func TestCheckLeadTime(t *testing.T) {
	p := testPolicy(t)
	loc := p.Location

	at := time.Date(2026, 6, 10, 20, 0, 0, 0, loc)

	// 18h lead from 20:00 lands at 14:00 tomorrow: a 9am event the next day
	// is inside the lead window even though the date passes the cutoff rule.
	err := p.CheckLeadTime(at, time.Date(2026, 6, 11, 9, 0, 0, 0, loc))
	require.Error(t, err)
	assert.True(t, IsLeadTimeViolation(err))

	assert.NoError(t, p.CheckLeadTime(at, time.Date(2026, 6, 11, 15, 0, 0, 0, loc)))
	assert.True(t, p.meetsLeadTime(at, time.Date(2026, 6, 11, 14, 0, 0, 0, loc)))
	assert.False(t, p.meetsLeadTime(at, time.Date(2026, 6, 11, 13, 59, 0, 0, loc)))
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []Status{StatusScheduled, StatusCompleted, StatusNoShow, StatusCancelled}

func TestLedgerDelta(t *testing.T) {
	tests := []struct {
		prev, next Status
		want       int
	}{
		{StatusScheduled, StatusCompleted, -1},
		{StatusNoShow, StatusCompleted, -1},
		{StatusCancelled, StatusCompleted, -1},
		{StatusCompleted, StatusCancelled, 1},
		{StatusCompleted, StatusScheduled, 1},
		{StatusCompleted, StatusNoShow, 1},
		{StatusCompleted, StatusCompleted, 0},
		{StatusScheduled, StatusCancelled, 0},
		{StatusNoShow, StatusCancelled, 0},
		{StatusScheduled, StatusScheduled, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.prev)+"->"+string(tt.next), func(t *testing.T) {
			assert.Equal(t, tt.want, LedgerDelta(tt.prev, tt.next))
		})
	}
}

func TestLedgerDeltaRoundTripIsZero(t *testing.T) {
	for _, a := range allStatuses {
		for _, b := range allStatuses {
			assert.Zero(t, LedgerDelta(a, b)+LedgerDelta(b, a), "%s <-> %s", a, b)
		}
	}
}

func TestDeleteDeltaMatchesUncompleting(t *testing.T) {
	for _, s := range allStatuses {
		assert.Equal(t, LedgerDelta(s, StatusCancelled), DeleteDelta(s), s)
	}
}

func TestUpdateRequestKeepsPackageLink(t *testing.T) {
	link := 11
	s := Session{MemberPackageID: &link, Status: StatusScheduled, DurationMinutes: 60}

	completed := StatusCompleted
	minutes := 45
	UpdateSessionRequest{Status: &completed, DurationMinutes: &minutes}.apply(&s)

	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, 45, s.DurationMinutes)
	assert.Equal(t, &link, s.MemberPackageID)
}

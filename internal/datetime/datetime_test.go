package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_AddDays(t *testing.T) {
	start := NewDate(2024, time.January, 1)

	assert.Equal(t, "2024-01-31", start.AddDays(30).String())
	assert.Equal(t, "2024-03-01", NewDate(2024, time.February, 28).AddDays(2).String())
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		StartDate Date `json:"start_date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start_date":"2024-01-01"}`), &payload))
	assert.Equal(t, NewDate(2024, time.January, 1), payload.StartDate)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start_date":"2024-01-01"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start_date":"01/01/2024"}`), &payload))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2024-07-08")))
	assert.Equal(t, "2024-07-08", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-07-08", v)
}

func TestLocalTime_StripsOffset(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-10T09:30:00+09:00", "2024-03-10T09:30:00"},
		{"2024-03-10T09:30:00Z", "2024-03-10T09:30:00"},
		{"2024-03-10T09:30:00-05:00", "2024-03-10T09:30:00"},
		{"2024-03-10T09:30:00", "2024-03-10T09:30:00"},
		{"2024-03-10T09:30", "2024-03-10T09:30:00"},
		{"2024-03-10 09:30:00", "2024-03-10T09:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocalTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestLocalTime_JSON(t *testing.T) {
	var payload struct {
		ScheduledAt LocalTime `json:"scheduled_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"scheduled_at":"2024-03-10T18:00:00+02:00"}`), &payload))

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"scheduled_at":"2024-03-10T18:00:00"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"scheduled_at":"tomorrow"}`), &payload))
}

func TestDayBounds(t *testing.T) {
	d := NewDate(2024, time.March, 10)

	assert.Equal(t, "2024-03-10T00:00:00", StartOfDay(d).String())
	end := EndOfDay(d)
	assert.Equal(t, "2024-03-10T23:59:59", end.String())
	assert.True(t, end.Before(StartOfDay(d.AddDays(1)).Time))
}

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampMarshalFormat(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 15, 9, 30, 12, 345_000_000, time.UTC))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15T09:30:12.345Z"`, string(data))
}

func TestTimestampMarshalNormalizesToUTC(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	ts := NewTimestamp(time.Date(2024, 7, 1, 14, 0, 0, 0, paris))
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-01T12:00:00.000Z"`, string(data))
}

func TestTimestampRoundTrip(t *testing.T) {
	original := NewTimestamp(time.Date(2024, 12, 31, 23, 59, 59, 999_000_000, time.UTC))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equal(decoded.Time))
}

func TestTimestampUnmarshalNullAndEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte("null"), &ts))
	assert.True(t, ts.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestampUnmarshalRejectsOtherShapes(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"2024-03-15"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12345`), &ts))
}

func TestTimestampZeroMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestSameDayIsTimezoneSensitive(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Paris.
	late := NewTimestamp(time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC))
	nextMorning := NewTimestamp(time.Date(2024, 6, 11, 6, 0, 0, 0, time.UTC))

	assert.False(t, late.SameDay(nextMorning, time.UTC))
	assert.True(t, late.SameDay(nextMorning, paris))
}

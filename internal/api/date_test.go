package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-03-04"}`), &payload))
	assert.Equal(t, NewDate(2024, time.March, 4), payload.Date)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-04"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"04/03/2024"}`), &payload))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-04", d.String())

	require.NoError(t, d.Scan([]byte("2024-12-31T00:00:00Z")))
	assert.Equal(t, "2024-12-31", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDateOfDropsClock(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	d := DateOf(time.Date(2024, 3, 1, 23, 30, 0, 0, loc))

	assert.Equal(t, NewDate(2024, time.March, 1), d)
	assert.True(t, d.Before(d.AddDays(1)))
	assert.Equal(t, "2024-03-02", d.AddDays(1).String())
}

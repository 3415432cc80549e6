package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-prep-assistant/pkg/response"
)

func TestDateTime_JSON(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	tm := time.Date(2024, 5, 1, 22, 30, 5, 0, loc)

	b, err := json.Marshal(response.DateTime(tm))
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01 15:30:05"`, string(b))

	var back response.DateTime
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, time.Time(back).Equal(tm))

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &back))
}

func TestNewDateTime(t *testing.T) {
	assert.Nil(t, response.NewDateTime(time.Time{}))

	type payload struct {
		At *response.DateTime `json:"at,omitempty"`
	}
	b, err := json.Marshal(payload{At: response.NewDateTime(time.Time{})})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	b, err = json.Marshal(payload{At: response.NewDateTime(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2026-01-02 03:04:05"}`, string(b))
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMapDoneEvent_Failed(t *testing.T) {
	tests := []struct {
		name     string
		event    RenderMapDoneEvent
		expected bool
	}{
		{
			name:     "successful render",
			event:    RenderMapDoneEvent{JobID: uuid.New(), MapID: "abc", MarkerCount: 12},
			expected: false,
		},
		{
			name:     "render with error",
			event:    RenderMapDoneEvent{JobID: uuid.New(), ErrorCode: "MISSING_COLUMN", Error: "no h_can"},
			expected: true,
		},
		{
			name:     "empty result without error",
			event:    RenderMapDoneEvent{JobID: uuid.New()},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Failed())
		})
	}
}

func TestRenderMapEvent_KeepsRequestVerbatim(t *testing.T) {
	raw := `{"job_id":"6f1c1f44-8f7e-4d6c-a8a5-0f3d2b7a9c11","request":{"granule":"ATL08_20200101","night_only":false}}`

	var event RenderMapEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))

	assert.Equal(t, "6f1c1f44-8f7e-4d6c-a8a5-0f3d2b7a9c11", event.JobID.String())
	assert.JSONEq(t, `{"granule":"ATL08_20200101","night_only":false}`, string(event.Request))
}

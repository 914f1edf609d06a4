package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Stream names shared with the job producers.
const (
	StreamMapRender     = "stream:atl08:render"
	StreamMapRenderDone = "stream:atl08:render:done"
)

// RenderMapEvent asks the worker to render one map. Request holds a
// render request body as accepted by POST /api/v1/maps.
type RenderMapEvent struct {
	JobID   uuid.UUID       `json:"job_id"`
	Request json.RawMessage `json:"request"`
}

// RenderMapDoneEvent reports the outcome of a RenderMapEvent.
type RenderMapDoneEvent struct {
	JobID       uuid.UUID `json:"job_id"`
	MapID       string    `json:"map_id,omitempty"`
	MarkerCount int       `json:"marker_count"`
	ErrorCode   string    `json:"error_code,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Failed reports whether the job ended with an error.
func (e *RenderMapDoneEvent) Failed() bool {
	return e.Error != ""
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

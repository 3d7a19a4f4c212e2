package sse

import (
	"encoding/json"
	"fmt"

	"github.com/lorrc/distribution-backend/internal/core/domain"
)

var (
	connectedFrame = mustFrame(domain.Event{Type: domain.EventConnected})
	heartbeatFrame = mustFrame(domain.Event{Type: domain.EventHeartbeat})
)

// Frame encodes event as a single SSE data frame: "data: <json>\n\n".
func Frame(event domain.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	return frame, nil
}

func mustFrame(event domain.Event) []byte {
	frame, err := Frame(event)
	if err != nil {
		panic(err)
	}
	return frame
}

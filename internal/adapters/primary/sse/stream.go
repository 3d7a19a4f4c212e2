package sse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
)

var (
	// ErrStreamClosed is returned when enqueueing on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
	// ErrBackpressure is returned when the stream's buffer is full.
	ErrBackpressure = errors.New("stream buffer full")
)

// Stream is one open SSE connection. It moves from open to closed exactly
// once; Close may be called any number of times.
type Stream struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	UserID   uuid.UUID

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	onClose   func(*Stream)

	logger *slog.Logger
}

// NewStream creates an open stream for actor. onClose, if set, runs once
// when the stream closes.
func NewStream(actor domain.Actor, buffer int, onClose func(*Stream), logger *slog.Logger) *Stream {
	if buffer <= 0 {
		buffer = 64
	}
	id := uuid.New()
	return &Stream{
		ID:       id,
		TenantID: actor.TenantID,
		UserID:   actor.UserID,
		send:     make(chan []byte, buffer),
		done:     make(chan struct{}),
		onClose:  onClose,
		logger: logger.With(
			"connection_id", id.String(),
			"user_id", actor.UserID.String(),
			"tenant_id", actor.TenantID.String(),
		),
	}
}

// Key is the registry key of the stream: "<tenantID>:<userID>".
func (s *Stream) Key() string {
	return streamKey(s.TenantID, s.UserID)
}

func streamKey(tenantID, userID uuid.UUID) string {
	return tenantID.String() + ":" + userID.String()
}

// Done is closed when the stream closes.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Closed reports whether the stream has been closed.
func (s *Stream) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Close ends the stream. Only the first call has any effect.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.onClose != nil {
			s.onClose(s)
		}
	})
}

// Enqueue hands a frame to the stream without blocking.
func (s *Stream) Enqueue(frame []byte) error {
	if s.Closed() {
		return ErrStreamClosed
	}

	select {
	case s.send <- frame:
		return nil
	default:
		return ErrBackpressure
	}
}

// Serve writes the connected frame, then queued frames and heartbeats, until
// ctx is done, the stream is closed or a write fails. The stream is always
// closed when Serve returns.
func (s *Stream) Serve(ctx context.Context, w io.Writer, heartbeat time.Duration) error {
	defer s.Close()

	if err := s.write(w, connectedFrame); err != nil {
		return err
	}

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("stream context done")
			return nil

		case <-s.done:
			return nil

		case frame := <-s.send:
			if err := s.write(w, frame); err != nil {
				return err
			}

		case <-ticker.C:
			if err := s.write(w, heartbeatFrame); err != nil {
				return err
			}
		}
	}
}

func (s *Stream) write(w io.Writer, frame []byte) error {
	if _, err := w.Write(frame); err != nil {
		s.logger.Debug("stream write failed", "error", err)
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

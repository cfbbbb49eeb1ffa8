package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"workspace-board-api/internal/metrics"
)

const (
	// EventWorkspaceUpdated carries the full column snapshot after a mutation
	EventWorkspaceUpdated = "workspace-updated"
	// EventBookAdded announces a newly added card to the room
	EventBookAdded = "book-added-real-time"
	// EventNoteCreated announces a new research note to the room
	EventNoteCreated = "note-created"
	// EventNoteUpdated announces an edited research note to the room
	EventNoteUpdated = "note-updated"
	// EventNoteDeleted announces a removed research note to the room
	EventNoteDeleted = "note-deleted"
)

// Envelope is the wire format for outbound room events
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// BookAddedNotice is the payload of a book-added announcement
type BookAddedNotice struct {
	Book      interface{} `json:"book"`
	UserID    string      `json:"userId"`
	UserName  string      `json:"username"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

// NoteNotice is the payload of note lifecycle events. Created and updated
// events carry the full note; deleted events carry only the id.
type NoteNotice struct {
	Note      interface{} `json:"note,omitempty"`
	NoteID    string      `json:"noteId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Broadcaster delivers events to every member of a workspace room.
// Delivery is best effort; slow clients are skipped, never waited on.
type Broadcaster interface {
	BroadcastWorkspace(workspaceID uuid.UUID, snapshot interface{})
	BroadcastBookAdded(workspaceID uuid.UUID, notice BookAddedNotice)
	BroadcastNote(workspaceID uuid.UUID, event string, notice NoteNotice)
}

// Hub fans events out to room members via the registry
type Hub struct {
	registry *Registry
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewHub creates a hub over a registry
func NewHub(registry *Registry, logger *zap.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		registry: registry,
		logger:   logger,
		metrics:  m,
	}
}

// BroadcastWorkspace sends the column snapshot to every room member
func (h *Hub) BroadcastWorkspace(workspaceID uuid.UUID, snapshot interface{}) {
	h.broadcast(workspaceID, EventWorkspaceUpdated, snapshot)
}

// BroadcastBookAdded announces a new card to every room member
func (h *Hub) BroadcastBookAdded(workspaceID uuid.UUID, notice BookAddedNotice) {
	h.broadcast(workspaceID, EventBookAdded, notice)
}

// BroadcastNote announces a note lifecycle event to every room member
func (h *Hub) BroadcastNote(workspaceID uuid.UUID, event string, notice NoteNotice) {
	h.broadcast(workspaceID, event, notice)
}

func (h *Hub) broadcast(workspaceID uuid.UUID, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error("Failed to marshal broadcast payload",
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}

	members := h.registry.MembersOf(workspaceID)
	for _, client := range members {
		if client.Send(payload) {
			if h.metrics != nil {
				h.metrics.IncrementBroadcastSent(event)
			}
			continue
		}

		if h.metrics != nil {
			h.metrics.IncrementBroadcastDropped()
		}
		h.logger.Warn("Dropped broadcast to slow client",
			zap.String("workspaceId", workspaceID.String()),
			zap.String("userId", client.UserID.String()),
			zap.String("event", event),
		)
	}

	h.logger.Debug("Broadcast delivered",
		zap.String("workspaceId", workspaceID.String()),
		zap.String("event", event),
		zap.Int("members", len(members)),
	)
}

// NoOpBroadcaster is used when realtime delivery is disabled
type NoOpBroadcaster struct{}

func (NoOpBroadcaster) BroadcastWorkspace(workspaceID uuid.UUID, snapshot interface{}) {}

func (NoOpBroadcaster) BroadcastBookAdded(workspaceID uuid.UUID, notice BookAddedNotice) {}

func (NoOpBroadcaster) BroadcastNote(workspaceID uuid.UUID, event string, notice NoteNotice) {}

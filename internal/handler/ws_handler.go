package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"workspace-board-api/internal/dto"
	"workspace-board-api/internal/middleware"
	"workspace-board-api/internal/realtime"
	"workspace-board-api/internal/response"
	"workspace-board-api/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const (
	eventJoinWorkspace  = "join-workspace"
	eventLeaveWorkspace = "leave-workspace"
	eventCardAdded      = "card-added"
	eventCardMoved      = "card-moved"
	eventCardDeleted    = "card-deleted"
	eventError          = "error"
)

// inboundMessage is the wire format of client-to-server events
type inboundMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type joinPayload struct {
	WorkspaceID string `json:"workspaceId"`
}

type addCardPayload struct {
	ColumnID string `json:"columnId"`
	BookID   string `json:"bookId"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Cover    string `json:"cover,omitempty"`
	Preview  string `json:"preview,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}

type moveCardPayload struct {
	FromColumnID string `json:"fromColumnId"`
	ToColumnID   string `json:"toColumnId"`
	FromIndex    *int   `json:"fromIndex"`
	ToIndex      *int   `json:"toIndex"`
}

type deleteCardPayload struct {
	ColumnID string `json:"columnId"`
	CardID   string `json:"cardId"`
}

type WSHandler struct {
	workspaceService service.WorkspaceService
	registry         *realtime.Registry
	jwtSecret        string
	logger           *zap.Logger
}

func NewWSHandler(
	workspaceService service.WorkspaceService,
	registry *realtime.Registry,
	jwtSecret string,
	logger *zap.Logger,
) *WSHandler {
	return &WSHandler{
		workspaceService: workspaceService,
		registry:         registry,
		jwtSecret:        jwtSecret,
		logger:           logger,
	}
}

// HandleWebSocket godoc
// @Summary      Realtime connection
// @Description  Upgrades to a websocket carrying room join/leave and card mutation events
// @Tags         websocket
// @Param        token query string true "JWT Access Token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} response.ErrorResponse
// @Router       /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Token required")
		return
	}

	userID, userName, err := middleware.ParseUserToken(token, h.jwtSecret)
	if err != nil {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid token")
		return
	}
	if userName == "" {
		userName = "Unknown"
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := realtime.NewClient(conn, userID, userName, h.logger)

	h.logger.Info("WebSocket connected",
		zap.String("userId", userID.String()),
	)

	go client.WritePump()
	go client.ReadPump(h.handleMessage, h.handleClose)
}

func (h *WSHandler) handleClose(client *realtime.Client) {
	h.registry.Drop(client)
	h.logger.Info("WebSocket disconnected",
		zap.String("userId", client.UserID.String()),
	)
}

func (h *WSHandler) handleMessage(client *realtime.Client, raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.logger.Warn("Failed to parse message", zap.Error(err))
		h.sendError(client, "Malformed message")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch msg.Event {
	case eventJoinWorkspace:
		h.handleJoin(ctx, client, msg.Data)
	case eventLeaveWorkspace:
		h.registry.Leave(client)
	case eventCardAdded:
		h.handleCardAdded(ctx, client, msg.Data)
	case eventCardMoved:
		h.handleCardMoved(ctx, client, msg.Data)
	case eventCardDeleted:
		h.handleCardDeleted(ctx, client, msg.Data)
	default:
		h.logger.Warn("Unknown event", zap.String("event", msg.Event))
	}
}

// handleJoin moves the client into a workspace room and sends it the current
// board snapshot. Joining a second room leaves the first.
func (h *WSHandler) handleJoin(ctx context.Context, client *realtime.Client, data json.RawMessage) {
	var payload joinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(client, "Malformed join payload")
		return
	}

	workspaceID, err := uuid.Parse(payload.WorkspaceID)
	if err != nil {
		h.sendError(client, "Invalid workspace ID")
		return
	}

	snapshot, err := h.workspaceService.Snapshot(ctx, workspaceID)
	if err != nil {
		h.sendError(client, "Workspace not found")
		return
	}

	h.registry.Join(client, workspaceID)

	payload2, err := json.Marshal(realtime.Envelope{
		Event: realtime.EventWorkspaceUpdated,
		Data:  snapshot.Columns,
	})
	if err != nil {
		return
	}
	client.Send(payload2)

	h.logger.Info("Client joined workspace room",
		zap.String("workspaceId", workspaceID.String()),
		zap.String("userId", client.UserID.String()),
	)
}

// room resolves the client's current room, reporting an error to the client
// when it has not joined one
func (h *WSHandler) room(client *realtime.Client) (uuid.UUID, bool) {
	workspaceID, ok := h.registry.Room(client)
	if !ok {
		h.sendError(client, "Join a workspace first")
		return uuid.Nil, false
	}
	return workspaceID, true
}

func (h *WSHandler) handleCardAdded(ctx context.Context, client *realtime.Client, data json.RawMessage) {
	workspaceID, ok := h.room(client)
	if !ok {
		return
	}

	var payload addCardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(client, "Malformed card payload")
		return
	}

	actor := service.Actor{ID: client.UserID, Name: client.UserName}
	req := &dto.AddCardRequest{
		ColumnID: payload.ColumnID,
		BookID:   payload.BookID,
		Title:    payload.Title,
		Author:   payload.Author,
		Cover:    payload.Cover,
		Preview:  payload.Preview,
		Excerpt:  payload.Excerpt,
	}
	if _, err := h.workspaceService.AddCard(ctx, actor, workspaceID, req); err != nil {
		// Rejected mutations are reported to the sender only, never broadcast
		h.sendError(client, errorMessage(err))
	}
}

func (h *WSHandler) handleCardMoved(ctx context.Context, client *realtime.Client, data json.RawMessage) {
	workspaceID, ok := h.room(client)
	if !ok {
		return
	}

	var payload moveCardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(client, "Malformed move payload")
		return
	}
	if payload.FromIndex == nil || payload.ToIndex == nil {
		h.sendError(client, "fromIndex and toIndex are required")
		return
	}

	actor := service.Actor{ID: client.UserID, Name: client.UserName}
	req := &dto.MoveCardRequest{
		FromColumnID: payload.FromColumnID,
		ToColumnID:   payload.ToColumnID,
		FromIndex:    payload.FromIndex,
		ToIndex:      payload.ToIndex,
	}
	if _, err := h.workspaceService.MoveCard(ctx, actor, workspaceID, req); err != nil {
		h.sendError(client, errorMessage(err))
	}
}

func (h *WSHandler) handleCardDeleted(ctx context.Context, client *realtime.Client, data json.RawMessage) {
	workspaceID, ok := h.room(client)
	if !ok {
		return
	}

	var payload deleteCardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(client, "Malformed delete payload")
		return
	}

	actor := service.Actor{ID: client.UserID, Name: client.UserName}
	if _, err := h.workspaceService.DeleteCard(ctx, actor, workspaceID, payload.ColumnID, payload.CardID); err != nil {
		h.sendError(client, errorMessage(err))
	}
}

func (h *WSHandler) sendError(client *realtime.Client, message string) {
	payload, err := json.Marshal(realtime.Envelope{
		Event: eventError,
		Data:  gin.H{"message": message},
	})
	if err != nil {
		return
	}
	client.Send(payload)
}

func errorMessage(err error) string {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Operation failed"
}

package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/monitoring"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/llm"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DomainStore is the slice of the store the transport needs.
type DomainStore interface {
	CreateRequest(ctx context.Context, p store.CreateRequestParams) (*domain.Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status domain.Status, nurseID *string) (*domain.Request, error)
	MarkMessageRead(ctx context.Context, messageID string) (*domain.Message, error)
}

// Handler upgrades connections and dispatches inbound events.
type Handler struct {
	hub       *Hub
	assistant *llm.Assistant
	store     DomainStore
	logger    *zap.Logger
	metrics   *monitoring.Metrics
}

// NewHandler wires the transport to the hub, assistant and store.
func NewHandler(hub *Hub, assistant *llm.Assistant, domainStore DomainStore, logger *zap.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		hub:       hub,
		assistant: assistant,
		store:     domainStore,
		logger:    logger,
		metrics:   metrics,
	}
}

// conn holds the per-connection state the dispatch loop needs. Each
// connection owns its session and chat lock; nothing here is shared
// across connections.
type conn struct {
	client *Client
	sess   *llm.Session
	// chatMu admits one in-flight chat stream per connection.
	chatMu sync.Mutex
}

// HandleConnection upgrades the request and runs the read loop until
// the client disconnects. Identity comes from the query string; the
// REST layer authenticates, the socket only needs to know who it is
// speaking for.
func (h *Handler) HandleConnection(c *gin.Context) {
	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(c.Query("userId"), domain.Role(c.Query("role")))
	h.hub.Register(client)
	h.countConn(1)

	// Disconnect cancels any in-flight chat stream for this connection
	// only.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer func() {
		cancel()
		h.hub.Unregister(client.ID)
		h.countConn(-1)
	}()

	go writePump(wsConn, client.send)

	state := &conn{
		client: client,
		sess:   llm.NewSession(c.Query("userId"), c.Query("room")),
	}

	h.logger.Info("websocket connected",
		zap.String("conn_id", client.ID.String()),
		zap.String("user_id", client.UserID),
	)

	for {
		var env Envelope
		if err := wsConn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed",
					zap.String("conn_id", client.ID.String()), zap.Error(err))
			}
			return
		}
		h.countMessage(env.Event)
		h.dispatch(ctx, state, env)
	}
}

func (h *Handler) dispatch(ctx context.Context, state *conn, env Envelope) {
	switch env.Event {
	case EventJoin:
		h.handleJoin(state, env.Data)
	case EventChatMessage:
		h.handleChat(ctx, state, env.Data)
	case EventNewRequest:
		h.handleNewRequest(ctx, state, env.Data)
	case EventUpdateRequest:
		h.handleUpdateRequest(ctx, state, env.Data)
	case EventMessageRead:
		h.handleMessageRead(ctx, state, env.Data)
	case EventPing:
		h.reply(state, EventPong, nil)
	default:
		h.reply(state, EventError, "unknown event: "+env.Event)
	}
}

func (h *Handler) handleJoin(state *conn, data json.RawMessage) {
	var payload joinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reply(state, EventError, "malformed join payload")
		return
	}
	h.hub.Join(state.client.ID, domain.Role(payload.Role), payload.Department)
}

func (h *Handler) handleChat(ctx context.Context, state *conn, data json.RawMessage) {
	var message string
	if err := json.Unmarshal(data, &message); err != nil {
		h.reply(state, EventError, "malformed chat payload")
		return
	}

	// One stream per connection. A second message while a reply is
	// still flowing is refused rather than queued.
	if !state.chatMu.TryLock() {
		h.reply(state, EventError, "a reply is still in progress")
		return
	}

	go func() {
		defer state.chatMu.Unlock()

		sink := func(chunk llm.Chunk) error {
			frame, err := marshalEnvelope(EventChatResponse, encodeChunk(chunk))
			if err != nil {
				return err
			}
			if !h.hub.Send(state.client.ID, frame) {
				return context.Canceled
			}
			return nil
		}
		if err := h.assistant.Chat(ctx, message, state.sess, sink); err != nil {
			h.logger.Warn("chat turn failed",
				zap.String("conn_id", state.client.ID.String()),
				zap.Error(err),
			)
		}
	}()
}

func (h *Handler) handleNewRequest(ctx context.Context, state *conn, data json.RawMessage) {
	var payload newRequestPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reply(state, EventError, "malformed newRequest payload")
		return
	}
	priority, err := domain.ParsePriority(payload.Priority)
	if err != nil {
		h.reply(state, EventError, err.Error())
		return
	}
	if !domain.ValidDepartment(payload.Department) {
		h.reply(state, EventError, "unknown department")
		return
	}

	req, err := h.store.CreateRequest(ctx, store.CreateRequestParams{
		PatientID:   state.client.UserID,
		Priority:    priority,
		Description: payload.Description,
		Department:  payload.Department,
		Room:        payload.Room,
	})
	if err != nil {
		h.logger.Error("request create failed", zap.Error(err))
		h.reply(state, EventError, "could not create request")
		return
	}
	h.hub.BroadcastNewRequest(req)
}

func (h *Handler) handleUpdateRequest(ctx context.Context, state *conn, data json.RawMessage) {
	var payload updateRequestPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reply(state, EventError, "malformed updateRequest payload")
		return
	}
	status, err := domain.ParseStatus(payload.Status)
	if err != nil {
		h.reply(state, EventError, err.Error())
		return
	}

	var nurseID *string
	if payload.NurseID != "" {
		nurseID = &payload.NurseID
	}
	req, err := h.store.UpdateRequestStatus(ctx, payload.ID, status, nurseID)
	if err != nil {
		h.logger.Error("request update failed",
			zap.String("request_id", payload.ID), zap.Error(err))
		h.reply(state, EventError, "could not update request")
		return
	}
	h.hub.BroadcastRequestUpdate(req)
}

func (h *Handler) handleMessageRead(ctx context.Context, state *conn, data json.RawMessage) {
	var payload messageReadPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reply(state, EventError, "malformed messageRead payload")
		return
	}
	msg, err := h.store.MarkMessageRead(ctx, payload.MessageID)
	if err != nil {
		h.logger.Error("mark message read failed",
			zap.String("message_id", payload.MessageID), zap.Error(err))
		h.reply(state, EventError, "could not mark message read")
		return
	}
	// The sender is the one waiting on the receipt.
	h.hub.BroadcastMessageRead(msg.SenderID, msg.ID)
}

func (h *Handler) reply(state *conn, event string, data any) {
	frame, err := marshalEnvelope(event, data)
	if err != nil {
		h.logger.Error("reply encode failed", zap.Error(err))
		return
	}
	h.hub.Send(state.client.ID, frame)
}

// writePump owns all writes to the socket. It drains the client queue
// until the hub closes it on unregister.
func writePump(wsConn *websocket.Conn, send <-chan []byte) {
	defer wsConn.Close()
	for frame := range send {
		wsConn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := wsConn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	wsConn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = wsConn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Handler) countConn(delta float64) {
	if h.metrics != nil {
		h.metrics.WSConnections.Add(delta)
	}
}

func (h *Handler) countMessage(event string) {
	if h.metrics != nil {
		h.metrics.WSMessages.WithLabelValues(event).Inc()
	}
}

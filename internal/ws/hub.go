package ws

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/monitoring"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/shared/id"
)

// sendBuffer bounds each connection's outbound queue. A member that
// falls this far behind is skipped rather than waited on.
const sendBuffer = 64

// Client is one live connection registered with the Hub. The department
// field is owned by the Hub and guarded by its lock.
type Client struct {
	ID     id.ConnID
	UserID string
	Role   domain.Role

	department string
	send       chan []byte
}

func newClient(userID string, role domain.Role) *Client {
	return &Client{
		ID:     id.NewConnID(),
		UserID: userID,
		Role:   role,
		send:   make(chan []byte, sendBuffer),
	}
}

// Hub routes request events to department rooms and read receipts to
// individual users. Joins and disconnects race with broadcasts, so all
// membership access goes through the lock; broadcasts take the read
// side and stay non-blocking, which keeps one department's fan-out
// from stalling another's.
type Hub struct {
	mu      sync.RWMutex
	clients map[id.ConnID]*Client

	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger, metrics *monitoring.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[id.ConnID]*Client),
		logger:  logger,
		metrics: metrics,
	}
}

// Register adds a connected client. It receives nothing until it joins
// a department.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its outbound queue. Safe to
// call for an unknown ID.
func (h *Hub) Unregister(connID id.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	close(c.send)
}

// Join places a connection in a department room. Only nurses and admins
// hold department membership; for any other role the call silently does
// nothing. Joining again moves the connection to the new department.
func (h *Hub) Join(connID id.ConnID, role domain.Role, department string) {
	if !role.Privileged() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	c.department = department
	h.logger.Info("connection joined department",
		zap.String("conn_id", connID.String()),
		zap.String("role", string(role)),
		zap.String("department", department),
	)
}

// BroadcastNewRequest notifies the request's department of a newly
// created request.
func (h *Hub) BroadcastNewRequest(req *domain.Request) {
	h.broadcast(domain.Event{Type: domain.EventNew, Request: req})
}

// BroadcastRequestUpdate notifies the request's department of a status
// change.
func (h *Hub) BroadcastRequestUpdate(req *domain.Request) {
	h.broadcast(domain.Event{Type: domain.EventUpdate, Request: req})
}

func (h *Hub) broadcast(event domain.Event) {
	frame, err := marshalEnvelope(EventRequestUpdate, event)
	if err != nil {
		h.logger.Error("broadcast encode failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.department != event.Request.Department {
			continue
		}
		if !c.trySend(frame) {
			h.countDropped()
			h.logger.Warn("skipped unreachable room member",
				zap.String("conn_id", c.ID.String()),
				zap.String("department", c.department),
			)
		}
	}
	if h.metrics != nil {
		h.metrics.Broadcasts.WithLabelValues(string(event.Type)).Inc()
	}
}

// BroadcastMessageRead delivers a read receipt to every connection the
// receiving user currently holds. Fire-and-forget.
func (h *Hub) BroadcastMessageRead(receiverID, messageID string) {
	frame, err := marshalEnvelope(EventMessageRead, messageReadPayload{MessageID: messageID})
	if err != nil {
		h.logger.Error("read receipt encode failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.UserID != receiverID {
			continue
		}
		if !c.trySend(frame) {
			h.countDropped()
		}
	}
}

// Send queues one frame for a single connection. Reports false when the
// connection is gone or too far behind.
func (h *Hub) Send(connID id.ConnID, frame []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[connID]
	if !ok {
		return false
	}
	if !c.trySend(frame) {
		h.countDropped()
		return false
	}
	return true
}

// trySend must only be called with the hub lock held; Unregister closes
// the channel under the write lock, so a send can never hit a closed
// channel.
func (c *Client) trySend(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (h *Hub) countDropped() {
	if h.metrics != nil {
		h.metrics.Dropped.Inc()
	}
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

// Store is the persistence surface the REST layer consumes.
type Store interface {
	CreateUser(ctx context.Context, p store.CreateUserParams) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ListNurses(ctx context.Context, approval domain.ApprovalStatus) ([]domain.User, error)
	SetNurseApproval(ctx context.Context, nurseID string, approval domain.ApprovalStatus) (*domain.User, error)

	CreateRequest(ctx context.Context, p store.CreateRequestParams) (*domain.Request, error)
	FindRequests(ctx context.Context, f store.RequestFilter) ([]domain.Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status domain.Status, nurseID *string) (*domain.Request, error)

	CreateTask(ctx context.Context, p store.CreateTaskParams) (*domain.Task, error)
	ListTasks(ctx context.Context, nurseID string) ([]domain.Task, error)
	ResolveTask(ctx context.Context, taskID string, status domain.TaskStatus, rejectionReason string) (*domain.Task, error)

	CreateShift(ctx context.Context, p store.CreateShiftParams) (*domain.Shift, error)
	ListShifts(ctx context.Context, nurseID, date string) ([]domain.Shift, error)
	DeleteShift(ctx context.Context, shiftID string) error

	CreateMessage(ctx context.Context, p store.CreateMessageParams) (*domain.Message, error)
	ListConversation(ctx context.Context, userA, userB string) ([]domain.Message, error)
	MarkMessageRead(ctx context.Context, messageID string) (*domain.Message, error)
}

// Broadcaster pushes real-time notifications alongside REST mutations.
type Broadcaster interface {
	BroadcastNewRequest(req *domain.Request)
	BroadcastRequestUpdate(req *domain.Request)
	BroadcastMessageRead(receiverID, messageID string)
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	store  Store
	hub    Broadcaster
	logger *zap.Logger
}

// NewHandlers creates a new handler set.
func NewHandlers(domainStore Store, hub Broadcaster, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{store: domainStore, hub: hub, logger: logger}
}

// Health reports service liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "patient-call-backend",
	})
}

func (h *Handlers) fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// failStore maps store errors onto HTTP statuses and logs the ones that
// indicate trouble.
func (h *Handlers) failStore(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrInvalidCredentials):
		h.fail(c, http.StatusUnauthorized, "invalid credentials")
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		h.fail(c, http.StatusInternalServerError, op+" failed")
	}
}

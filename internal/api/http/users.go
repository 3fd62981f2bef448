package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

type registerBody struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
	Room       string `json:"room"`
	Phone      string `json:"phone"`
}

// Register creates an account. Nurse accounts await admin approval
// before they can act.
func (h *Handlers) Register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	role := domain.Role(body.Role)
	switch role {
	case domain.RolePatient, domain.RoleNurse, domain.RoleAdmin:
	default:
		h.fail(c, http.StatusBadRequest, "unknown role")
		return
	}
	if role == domain.RoleNurse && !domain.ValidDepartment(body.Department) {
		h.fail(c, http.StatusBadRequest, "unknown department")
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), store.CreateUserParams{
		Email:      body.Email,
		Password:   body.Password,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Role:       role,
		Department: body.Department,
		Room:       body.Room,
		Phone:      body.Phone,
	})
	if err != nil {
		h.failStore(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
	})
}

type loginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns the account.
func (h *Handlers) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.store.Authenticate(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		h.failStore(c, "login", err)
		return
	}
	if user.Role == domain.RoleNurse && user.Approval != domain.ApprovalApproved {
		h.fail(c, http.StatusForbidden, "account pending approval")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// GetUser fetches one account by id.
func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.store.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failStore(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// ListNurses returns nurse accounts, optionally filtered by approval
// status.
func (h *Handlers) ListNurses(c *gin.Context) {
	approval := domain.ApprovalStatus(c.Query("status"))
	switch approval {
	case "", domain.ApprovalPending, domain.ApprovalApproved, domain.ApprovalRejected:
	default:
		h.fail(c, http.StatusBadRequest, "unknown approval status")
		return
	}

	nurses, err := h.store.ListNurses(c.Request.Context(), approval)
	if err != nil {
		h.failStore(c, "list nurses", err)
		return
	}
	if nurses == nil {
		nurses = []domain.User{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"nurses":  nurses,
	})
}

type approvalBody struct {
	Status string `json:"status" binding:"required"`
}

// SetNurseApproval records an admin's decision on a nurse account.
func (h *Handlers) SetNurseApproval(c *gin.Context) {
	var body approvalBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	approval := domain.ApprovalStatus(body.Status)
	if approval != domain.ApprovalApproved && approval != domain.ApprovalRejected {
		h.fail(c, http.StatusBadRequest, "status must be APPROVED or REJECTED")
		return
	}

	user, err := h.store.SetNurseApproval(c.Request.Context(), c.Param("id"), approval)
	if err != nil {
		h.failStore(c, "set approval", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

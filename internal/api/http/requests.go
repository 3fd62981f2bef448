package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

type createRequestBody struct {
	PatientID   string `json:"patientId" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Description string `json:"description" binding:"required"`
	Department  string `json:"department" binding:"required"`
	Room        string `json:"room"`
}

// CreateRequest persists a new assistance request and notifies its
// department room.
func (h *Handlers) CreateRequest(c *gin.Context) {
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	priority, err := domain.ParsePriority(body.Priority)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !domain.ValidDepartment(body.Department) {
		h.fail(c, http.StatusBadRequest, "unknown department")
		return
	}

	req, err := h.store.CreateRequest(c.Request.Context(), store.CreateRequestParams{
		PatientID:   body.PatientID,
		Priority:    priority,
		Description: body.Description,
		Department:  body.Department,
		Room:        body.Room,
	})
	if err != nil {
		h.failStore(c, "create request", err)
		return
	}
	h.hub.BroadcastNewRequest(req)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"request": req,
	})
}

// ListRequests returns requests matching the query filters.
func (h *Handlers) ListRequests(c *gin.Context) {
	filter := store.RequestFilter{
		PatientID:  c.Query("patientId"),
		Department: c.Query("department"),
		NurseID:    c.Query("nurseId"),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			h.fail(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.Status = status
	}

	requests, err := h.store.FindRequests(c.Request.Context(), filter)
	if err != nil {
		h.failStore(c, "list requests", err)
		return
	}
	if requests == nil {
		requests = []domain.Request{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
	})
}

type updateRequestBody struct {
	Status  string `json:"status" binding:"required"`
	NurseID string `json:"nurseId"`
}

// UpdateRequestStatus transitions a request and notifies its department
// room.
func (h *Handlers) UpdateRequestStatus(c *gin.Context) {
	var body updateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	status, err := domain.ParseStatus(body.Status)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var nurseID *string
	if body.NurseID != "" {
		nurseID = &body.NurseID
	}
	req, err := h.store.UpdateRequestStatus(c.Request.Context(), c.Param("id"), status, nurseID)
	if err != nil {
		h.failStore(c, "update request", err)
		return
	}
	h.hub.BroadcastRequestUpdate(req)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"request": req,
	})
}

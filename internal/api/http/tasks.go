package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

type createTaskBody struct {
	Description string  `json:"description" binding:"required"`
	AssignedTo  string  `json:"assignedTo" binding:"required"`
	AssignedBy  string  `json:"assignedBy" binding:"required"`
	PatientID   *string `json:"patientId"`
}

// CreateTask assigns a pending task to a nurse.
func (h *Handlers) CreateTask(c *gin.Context) {
	var body createTaskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	task, err := h.store.CreateTask(c.Request.Context(), store.CreateTaskParams{
		Description: body.Description,
		AssignedTo:  body.AssignedTo,
		AssignedBy:  body.AssignedBy,
		PatientID:   body.PatientID,
	})
	if err != nil {
		h.failStore(c, "create task", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"task":    task,
	})
}

// ListTasks returns the tasks assigned to a nurse.
func (h *Handlers) ListTasks(c *gin.Context) {
	nurseID := c.Query("nurseId")
	if nurseID == "" {
		h.fail(c, http.StatusBadRequest, "nurseId is required")
		return
	}
	tasks, err := h.store.ListTasks(c.Request.Context(), nurseID)
	if err != nil {
		h.failStore(c, "list tasks", err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
	})
}

type resolveTaskBody struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejectionReason"`
}

// ResolveTask completes or rejects a task.
func (h *Handlers) ResolveTask(c *gin.Context) {
	var body resolveTaskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	status := domain.TaskStatus(body.Status)
	if status != domain.TaskCompleted && status != domain.TaskRejected {
		h.fail(c, http.StatusBadRequest, "status must be completed or rejected")
		return
	}
	if status == domain.TaskRejected && body.RejectionReason == "" {
		h.fail(c, http.StatusBadRequest, "a rejection needs a reason")
		return
	}

	task, err := h.store.ResolveTask(c.Request.Context(), c.Param("id"), status, body.RejectionReason)
	if err != nil {
		h.failStore(c, "resolve task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    task,
	})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

type createShiftBody struct {
	NurseID    string `json:"nurseId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"`
	EndTime    string `json:"endTime" binding:"required"`
	Department string `json:"department" binding:"required"`
	Notes      string `json:"notes"`
	CreatedBy  string `json:"createdBy" binding:"required"`
}

// CreateShift schedules a shift for a nurse.
func (h *Handlers) CreateShift(c *gin.Context) {
	var body createShiftBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !domain.ValidDepartment(body.Department) {
		h.fail(c, http.StatusBadRequest, "unknown department")
		return
	}

	shift, err := h.store.CreateShift(c.Request.Context(), store.CreateShiftParams{
		NurseID:    body.NurseID,
		Date:       body.Date,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		Department: body.Department,
		Notes:      body.Notes,
		CreatedBy:  body.CreatedBy,
	})
	if err != nil {
		h.failStore(c, "create shift", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"shift":   shift,
	})
}

// ListShifts returns a nurse's shifts, optionally narrowed to one date.
func (h *Handlers) ListShifts(c *gin.Context) {
	nurseID := c.Query("nurseId")
	if nurseID == "" {
		h.fail(c, http.StatusBadRequest, "nurseId is required")
		return
	}
	shifts, err := h.store.ListShifts(c.Request.Context(), nurseID, c.Query("date"))
	if err != nil {
		h.failStore(c, "list shifts", err)
		return
	}
	if shifts == nil {
		shifts = []domain.Shift{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"shifts":  shifts,
	})
}

// DeleteShift removes a scheduled shift.
func (h *Handlers) DeleteShift(c *gin.Context) {
	if err := h.store.DeleteShift(c.Request.Context(), c.Param("id")); err != nil {
		h.failStore(c, "delete shift", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

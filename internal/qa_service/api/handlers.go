package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/memory"
	"AdmissionOfficer/internal/qa_service/rag/pipeline"
	"AdmissionOfficer/pkg/logger"
)

// defaultSessionID groups requests that do not carry a session into one
// shared conversation, mirroring a single-user console session.
const defaultSessionID = "default"

// QAService is the surface of the service layer the HTTP handlers depend on.
type QAService interface {
	Ask(ctx context.Context, req pipeline.Request) (*pipeline.Answer, error)
	DetectCategory(question string) (models.Category, bool)
	Categories() []models.Category
	ClearMemory(ctx context.Context, sessionID string) error
	DeleteSession(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]memory.SessionStats, error)
	Health(ctx context.Context) map[string]interface{}
}

// Handler bundles the HTTP endpoint handlers.
type Handler struct {
	svc QAService
	log *logger.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(svc QAService, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// AskRequest is the JSON body of POST /api/v1/ask. Category, when present,
// replaces the classifier's detection; use_memory defaults to true and turns
// the conversation memory off for this request when false.
type AskRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
	UseMemory *bool  `json:"use_memory"`
}

// Ask answers a question with retrieval-augmented generation.
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category != "" && !models.IsValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown category: %s", req.Category)})
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	traceID := uuid.NewString()
	log := logger.New("qa_service", traceID, sessionID)
	log.Info(fmt.Sprintf("Answering question for session %s", sessionID))

	answer, err := h.svc.Ask(c.Request.Context(), pipeline.Request{
		SessionID: sessionID,
		Question:  req.Question,
		Category:  models.Category(req.Category),
		UseMemory: req.UseMemory == nil || *req.UseMemory,
	})
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrEmptyQuestion):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "trace_id": traceID})
		case errors.Is(err, pipeline.ErrNoEvidence):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "trace_id": traceID})
		default:
			log.Error(fmt.Sprintf("Failed to answer question: %v", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer question", "trace_id": traceID})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":        answer.Text,
		"category":      answer.Category,
		"sources":       answer.Sources,
		"timestamp":     answer.Timestamp,
		"session_id":    sessionID,
		"memory_size":   answer.MemorySize,
		"used_fallback": answer.Fallback,
	})
}

// DetectCategoryRequest is the JSON body of POST /api/v1/detect-category.
type DetectCategoryRequest struct {
	Question string `json:"question" binding:"required"`
}

// DetectCategory classifies a question without answering it.
func (h *Handler) DetectCategory(c *gin.Context) {
	var req DetectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, detected := h.svc.DetectCategory(req.Question)
	resp := gin.H{"detected": detected}
	if detected {
		resp["category"] = category
	}
	c.JSON(http.StatusOK, resp)
}

// Categories lists the known categories in canonical order.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.svc.Categories()})
}

// ClearMemoryRequest is the JSON body of POST /api/v1/clear-memory.
type ClearMemoryRequest struct {
	SessionID string `json:"session_id"`
}

// ClearMemory empties a session's conversation history.
func (h *Handler) ClearMemory(c *gin.Context) {
	// An empty body clears the default session.
	var req ClearMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	if err := h.svc.ClearMemory(c.Request.Context(), sessionID); err != nil {
		h.log.Error(fmt.Sprintf("Failed to clear memory for session %s: %v", sessionID, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear memory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conversation history cleared", "session_id": sessionID})
}

// Sessions lists the active sessions.
func (h *Handler) Sessions(c *gin.Context) {
	sessions, err := h.svc.Sessions(c.Request.Context())
	if err != nil {
		h.log.Error(fmt.Sprintf("Failed to list sessions: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_sessions": len(sessions), "sessions": sessions})
}

// DeleteSession removes a session completely.
func (h *Handler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	if err := h.svc.DeleteSession(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session deleted", "session_id": sessionID})
}

// Health reports service and backend health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Health(c.Request.Context()))
}

// Root describes the service.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "admission-officer-qa",
		"message": "POST /api/v1/ask to ask a question",
	})
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"capitolview/internal/model"
	"capitolview/internal/service"
	"capitolview/internal/storage"
	"capitolview/internal/stream"
	"capitolview/internal/uistate"
	"capitolview/internal/utils"
	"capitolview/pkg/logger"
)

type ChatHandler struct {
	chatService *service.ChatService
	ui          uistate.Store
}

func NewChatHandler(chatService *service.ChatService, ui uistate.Store) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		ui:          ui,
	}
}

// StreamChat relays the upstream chat stream to the browser as SSE frames,
// each carrying the full reconstructed message state.
func (h *ChatHandler) StreamChat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sseWriter := utils.NewSSEWriter(c.Writer)
	ctx := c.Request.Context()

	snapshots, errs := h.chatService.StreamChat(ctx, req)

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				sseWriter.Close()
				return
			}
			data, err := json.Marshal(snap)
			if err != nil {
				logger.Errorf("failed to marshal snapshot: %v", err)
				continue
			}
			if err := sseWriter.Write("message", string(data)); err != nil {
				logger.Errorf("failed to write SSE: %v", err)
				return
			}

		case err := <-errs:
			if err != nil {
				status := "service_error"
				if errors.Is(err, stream.ErrMissingCredential) {
					status = "missing_credential"
				}
				errorData, _ := json.Marshal(gin.H{
					"error": err.Error(),
					"type":  status,
				})
				sseWriter.Write("error", string(errorData))
				sseWriter.Close()
				return
			}

		case <-ctx.Done():
			// Client went away; the service's stream context is the same
			// one, so the upstream read terminates with it.
			return
		}
	}
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	// An empty body is fine; the service picks a default title.
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Title = ""
	}

	session, err := h.chatService.CreateSession(req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *ChatHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	session, err := h.chatService.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.SessionResponse{
		SessionID:    session.ID,
		Title:        session.Title,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
		MessageCount: len(session.Messages),
	})
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	messages, err := h.chatService.GetSessionMessages(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	})
}

func (h *ChatHandler) GetSessionList(c *gin.Context) {
	sessions, err := h.chatService.GetAllSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
	})
}

func (h *ChatHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.chatService.DeleteSession(sessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

func (h *ChatHandler) ClearAllSessions(c *gin.Context) {
	if err := h.chatService.ClearAllSessions(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All sessions cleared successfully"})
}

func (h *ChatHandler) UpdateSessionTitle(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.chatService.UpdateSessionTitle(sessionID, req.Title); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Title updated successfully"})
}

// GetUIState / UpdateUIState expose the shared selection store (provider,
// model, panel state) so every open view reads the same values.
func (h *ChatHandler) GetUIState(c *gin.Context) {
	c.JSON(http.StatusOK, h.ui.Get())
}

func (h *ChatHandler) UpdateUIState(c *gin.Context) {
	var req uistate.State
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Provider != "" || req.Model != "" {
		h.ui.SetProvider(req.Provider, req.Model)
	}
	h.ui.SetPanel(req.PanelOpen, req.PanelExpanded)
	if req.PageContext != nil {
		h.ui.SetPageContext(req.PageContext)
	}

	c.JSON(http.StatusOK, h.ui.Get())
}

package delivery

import (
	"net/http"

	emaildto "replydraft-backend/internal/email/dto"
	"replydraft-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type ContextHandler struct {
	contextUsecase usecase.ContextUsecase
}

func NewContextHandler(contextUsecase usecase.ContextUsecase) *ContextHandler {
	return &ContextHandler{
		contextUsecase: contextUsecase,
	}
}

// BuildContext assembles the reply context for an incoming email. With
// ?format=prompt the response carries the rendered prompt block instead of
// the structured context.
func (h *ContextHandler) BuildContext(c *gin.Context) {
	userID := c.GetString("userID")

	var req emaildto.BuildContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email.From == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email.from is required"})
		return
	}

	emailCtx := h.contextUsecase.BuildContext(c.Request.Context(), userID, req.Email, toContextConfig(req.Config))

	if c.Query("format") == "prompt" {
		c.JSON(http.StatusOK, emaildto.PromptContextResponse{
			Prompt:   h.contextUsecase.FormatForPrompt(emailCtx),
			Metadata: emailCtx.Metadata,
		})
		return
	}

	c.JSON(http.StatusOK, emailCtx)
}

// IngestEmail parses a raw RFC822 message and stores it for the
// authenticated user.
func (h *ContextHandler) IngestEmail(c *gin.Context) {
	userID := c.GetString("userID")

	var req emaildto.IngestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.contextUsecase.IngestRawEmail(c.Request.Context(), userID, []byte(req.Raw))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, emaildto.IngestEmailResponse{
		ID:        email.ID,
		MessageID: email.MessageID,
		ThreadID:  email.ThreadID,
		Subject:   email.Subject,
	})
}

func toContextConfig(overrides *emaildto.ContextOverrides) *usecase.ContextConfig {
	if overrides == nil {
		return nil
	}
	return &usecase.ContextConfig{
		MaxThreadEmails:    overrides.MaxThreadEmails,
		MaxSenderEmails:    overrides.MaxSenderEmails,
		SenderLookbackDays: overrides.SenderLookbackDays,
		TotalTokenBudget:   overrides.TotalTokenBudget,
	}
}

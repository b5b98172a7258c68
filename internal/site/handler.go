// Package site serves the public shell: navigation, landing and disclaimer content, the contact form,
// and the built front-end with client-side route fallback.
package site

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/validation"
	"github.com/tournamentpro/backend/pkg/queue"
	"github.com/tournamentpro/backend/pkg/response"
)

// MsgContactSent is shown after a contact form is accepted.
const MsgContactSent = "Message sent successfully! We'll get back to you soon."

// ContactQueue hands contact messages to the background worker.
type ContactQueue interface {
	EnqueueContactMessage(ctx context.Context, payload queue.ContactMessagePayload) error
}

// Handler serves the site endpoints.
type Handler struct {
	contact ContactQueue
	logger  *zap.Logger
}

// NewHandler creates a site handler. contact may be nil, in which case messages are only logged.
func NewHandler(contact ContactQueue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{contact: contact, logger: logger}
}

// Nav handles GET /api/site/nav.
func (h *Handler) Nav(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	response.OK(c, gin.H{"brand": Brand, "links": navLinks})
}

// Landing handles GET /api/site/landing.
func (h *Handler) Landing(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	response.OK(c, gin.H{
		"brand":    Brand,
		"features": features,
		"games":    gameCards(),
	})
}

// Disclaimer handles GET /api/site/disclaimer.
func (h *Handler) Disclaimer(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	response.OK(c, gin.H{
		"intro":    disclaimerIntro,
		"sections": disclaimerSections,
		"points":   disclaimerPoints,
		"footer":   disclaimerFooter,
	})
}

// ContactInfo handles GET /api/site/contact.
func (h *Handler) ContactInfo(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	response.OK(c, gin.H{"channels": contactChannels, "faqs": faqs})
}

// Contact handles POST /api/contact. Messages are not stored; they are logged and passed to the worker.
func (h *Handler) Contact(c *gin.Context) {
	var form validation.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := validation.Struct(&form).Err(); err != nil {
		response.Error(c, err)
		return
	}

	h.logger.Info("contact message received",
		zap.String("name", form.Name),
		zap.String("email", form.Email),
		zap.String("subject", form.Subject),
	)
	if h.contact != nil {
		payload := queue.ContactMessagePayload{
			Name:    form.Name,
			Email:   form.Email,
			Phone:   form.Phone,
			Subject: form.Subject,
			Message: form.Message,
		}
		if err := h.contact.EnqueueContactMessage(c.Request.Context(), payload); err != nil {
			h.logger.Error("enqueue contact message failed", zap.Error(err), zap.String("email", form.Email))
		}
	}
	c.JSON(http.StatusOK, response.Body{Success: true, Message: MsgContactSent})
}

package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/validation"
	"github.com/tournamentpro/backend/pkg/response"
)

// Gin context keys set by the session middleware.
const (
	ContextClaims = "admin_claims"
)

// Handler handles admin auth HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Signup handles POST /api/admin/signup.
func (h *Handler) Signup(c *gin.Context) {
	var form validation.AdminSignupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	admin, err := h.svc.Signup(c.Request.Context(), &form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin, MsgSignupSucceeded)
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(c *gin.Context) {
	var form validation.AdminLoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	res, err := h.svc.Login(c.Request.Context(), &form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, res, MsgLoginSucceeded)
}

// Logout handles POST /api/admin/logout. Requires the session middleware.
func (h *Handler) Logout(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		response.Unauthorized(c, "missing admin context")
		return
	}
	if err := h.svc.Logout(c.Request.Context(), claims.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, nil, MsgLogoutSucceeded)
}

// Session handles GET /api/admin/session and returns the signed-in admin.
func (h *Handler) Session(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		response.Unauthorized(c, "missing admin context")
		return
	}
	response.OK(c, gin.H{
		"admin_id":   claims.AdminID,
		"email":      claims.Email,
		"expires_at": claims.ExpiresAt.Time,
	})
}

// ClaimsFrom returns the claims stored by the session middleware.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok && claims != nil
}

package tournaments

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/games"
	"github.com/tournamentpro/backend/internal/querycache"
	"github.com/tournamentpro/backend/pkg/response"
)

// pollInterval is how often the public panel refreshes slot counts.
const pollInterval = 5 * time.Second

// Handler handles public tournament endpoints.
type Handler struct {
	svc        *Service
	staleAfter time.Duration
	logger     *zap.Logger
}

// NewHandler creates a tournaments handler.
func NewHandler(svc *Service, staleAfter time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, staleAfter: staleAfter, logger: logger}
}

// Game handles GET /api/games/:game.
func (h *Handler) Game(c *gin.Context) {
	cfg, err := games.Lookup(c.Param("game"))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}
	out, err := h.svc.Overview(c.Request.Context(), cfg.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	querycache.PollHeaders(c.Writer.Header(), pollInterval, h.staleAfter)
	response.OK(c, out)
}

// Info handles GET /api/games/:game/tournaments/:type.
func (h *Handler) Info(c *gin.Context) {
	game, t, err := games.Parse(c.Param("game"), c.Param("type"))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}
	info, err := h.svc.Info(c.Request.Context(), game, t)
	if err != nil {
		response.Error(c, err)
		return
	}
	querycache.PollHeaders(c.Writer.Header(), pollInterval, h.staleAfter)
	response.OK(c, info)
}

// Slots handles GET /api/games/:game/tournaments/:type/slots.
func (h *Handler) Slots(c *gin.Context) {
	game, t, err := games.Parse(c.Param("game"), c.Param("type"))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}
	slots, err := h.svc.Slots(c.Request.Context(), game, t)
	if err != nil {
		response.Error(c, err)
		return
	}
	querycache.PollHeaders(c.Writer.Header(), pollInterval, h.staleAfter)
	response.OK(c, slots)
}

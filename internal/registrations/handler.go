package registrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/games"
	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/internal/querycache"
	"github.com/tournamentpro/backend/internal/validation"
	"github.com/tournamentpro/backend/pkg/response"
)

// adminPollInterval is the refresh cadence of the admin review table.
const adminPollInterval = 5 * time.Second

// Handler handles registration HTTP endpoints.
type Handler struct {
	svc        *Service
	staleAfter time.Duration
	logger     *zap.Logger
}

// NewHandler creates a registrations handler. staleAfter is advertised as the list max-age.
func NewHandler(svc *Service, staleAfter time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, staleAfter: staleAfter, logger: logger}
}

func tournamentParams(c *gin.Context) (games.ID, models.TournamentType, bool) {
	game, t, err := games.Parse(c.Param("game"), c.Param("type"))
	if err != nil {
		response.NotFound(c, err.Error())
		return "", "", false
	}
	return game, t, true
}

func gameParam(c *gin.Context) (games.ID, bool) {
	cfg, err := games.Lookup(c.Param("game"))
	if err != nil {
		response.NotFound(c, err.Error())
		return "", false
	}
	return cfg.ID, true
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return uuid.Nil, false
	}
	return id, true
}

// Submit handles POST /api/games/:game/tournaments/:type/registrations (multipart, file field "screenshot").
func (h *Handler) Submit(c *gin.Context) {
	game, t, ok := tournamentParams(c)
	if !ok {
		return
	}
	form, _ := validation.NewRegistrationForm(t)
	if err := c.ShouldBind(form); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var shot *Screenshot
	fh, err := c.FormFile("screenshot")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "could not read payment screenshot")
			return
		}
		defer f.Close()
		shot = &Screenshot{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	reg, err := h.svc.Submit(c.Request.Context(), game, t, form, shot)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reg, MsgSubmitted)
}

// List handles GET /api/admin/games/:game/tournaments/:type/registrations?status=.
func (h *Handler) List(c *gin.Context) {
	game, t, ok := tournamentParams(c)
	if !ok {
		return
	}
	var status *models.Status
	if s := c.Query("status"); s != "" && s != "all" {
		st := models.Status(s)
		if !st.Valid() {
			response.BadRequest(c, "invalid status filter")
			return
		}
		status = &st
	}
	list, err := h.svc.List(c.Request.Context(), game, t, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	querycache.PollHeaders(c.Writer.Header(), adminPollInterval, h.staleAfter)
	response.OK(c, list)
}

// Stats handles GET /api/admin/games/:game/tournaments/:type/stats.
func (h *Handler) Stats(c *gin.Context) {
	game, t, ok := tournamentParams(c)
	if !ok {
		return
	}
	stats, err := h.svc.Stats(c.Request.Context(), game, t)
	if err != nil {
		response.Error(c, err)
		return
	}
	querycache.PollHeaders(c.Writer.Header(), adminPollInterval, h.staleAfter)
	response.OK(c, stats)
}

// Get handles GET /api/admin/games/:game/registrations/:id. The screenshot URL is signed per request.
func (h *Handler) Get(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := h.svc.Detail(c.Request.Context(), game, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	response.OK(c, detail)
}

// Approve handles POST /api/admin/games/:game/registrations/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, models.StatusApproved)
}

// Reject handles POST /api/admin/games/:game/registrations/:id/reject.
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, models.StatusRejected)
}

func (h *Handler) decide(c *gin.Context, status models.Status) {
	game, ok := gameParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var (
		reg *models.Registration
		err error
		msg string
	)
	if status == models.StatusApproved {
		reg, err = h.svc.Approve(c.Request.Context(), game, id)
		msg = MsgApproved
	} else {
		reg, err = h.svc.Reject(c.Request.Context(), game, id)
		msg = MsgRejected
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, reg, msg)
}

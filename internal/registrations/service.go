package registrations

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/games"
	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/internal/querycache"
	"github.com/tournamentpro/backend/internal/validation"
	"github.com/tournamentpro/backend/pkg/apperror"
	"github.com/tournamentpro/backend/pkg/queue"
	"github.com/tournamentpro/backend/pkg/storage"
)

// Messages shown to the registrant and the admin.
const (
	MsgSubmitted          = "Registration submitted successfully! Awaiting admin approval"
	MsgScreenshotMissing  = "Please upload payment screenshot"
	MsgScreenshotNotImage = "Payment screenshot must be an image (jpg, png, webp or gif)"
	MsgApproved           = "Registration approved successfully"
	MsgRejected           = "Registration rejected successfully"
)

// Store is the registration persistence used by Service.
type Store interface {
	Count(ctx context.Context, game games.ID, t models.TournamentType, status models.Status) (int, error)
	CountByStatus(ctx context.Context, game games.ID, t models.TournamentType) (models.StatusCounts, error)
	List(ctx context.Context, game games.ID, t models.TournamentType, status *models.Status) ([]models.Registration, error)
	Get(ctx context.Context, game games.ID, id uuid.UUID) (*models.Registration, error)
	Insert(ctx context.Context, game games.ID, reg *models.Registration) error
	UpdateStatus(ctx context.Context, game games.ID, id uuid.UUID, status models.Status) (*models.Registration, error)
}

// ScreenshotStore is the object storage holding payment screenshots.
type ScreenshotStore interface {
	Bucket() string
	UploadScreenshot(ctx context.Context, contentType string, body io.Reader, size int64) (string, error)
	DeleteScreenshot(ctx context.Context, key string) error
	SignedScreenshotURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// CleanupQueue receives screenshots that could not be deleted inline.
type CleanupQueue interface {
	EnqueueScreenshotCleanup(ctx context.Context, payload queue.ScreenshotCleanupPayload) error
}

// Screenshot is an uploaded payment screenshot. Body is read once. Filename and ContentType are the
// client's claims and are only logged; the stored type is detected from Body.
type Screenshot struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Options tune the service.
type Options struct {
	SignedURLTTL       time.Duration
	MaxScreenshotBytes int64
}

// Service implements submission, review and cached reads of registrations.
type Service struct {
	store   Store
	files   ScreenshotStore
	cache   *querycache.Cache
	cleanup CleanupQueue
	opts    Options
	logger  *zap.Logger
}

// NewService creates a registrations service. cache and cleanup may be nil.
func NewService(store Store, files ScreenshotStore, cache *querycache.Cache, cleanup CleanupQueue, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SignedURLTTL <= 0 {
		opts.SignedURLTTL = time.Hour
	}
	if opts.MaxScreenshotBytes <= 0 {
		opts.MaxScreenshotBytes = 5 << 20
	}
	return &Service{store: store, files: files, cache: cache, cleanup: cleanup, opts: opts, logger: logger}
}

// Submit validates form, uploads the screenshot and inserts a pending registration.
// If the insert fails the uploaded screenshot is deleted, or queued for deletion when that fails too.
func (s *Service) Submit(ctx context.Context, game games.ID, t models.TournamentType, form validation.RegistrationForm, shot *Screenshot) (*models.Registration, error) {
	if err := validation.Struct(form).Err(); err != nil {
		return nil, err
	}
	if shot == nil || shot.Body == nil {
		return nil, apperror.InvalidInput(MsgScreenshotMissing)
	}
	if shot.Size > s.opts.MaxScreenshotBytes {
		return nil, apperror.InvalidInput(fmt.Sprintf("Payment screenshot must be smaller than %d MB", s.opts.MaxScreenshotBytes>>20))
	}
	contentType, body, err := storage.DetectScreenshotType(shot.Body)
	if err != nil {
		s.logger.Warn("screenshot rejected",
			zap.String("filename", shot.Filename),
			zap.String("claimed_type", shot.ContentType),
			zap.String("detected_type", contentType),
			zap.Error(err),
		)
		return nil, apperror.InvalidInput(MsgScreenshotNotImage)
	}

	reg := &models.Registration{}
	form.Apply(reg)
	if reg.TournamentType != t {
		return nil, apperror.InvalidInput("form does not match tournament type")
	}

	key, err := s.files.UploadScreenshot(ctx, contentType, body, shot.Size)
	if err != nil {
		s.logger.Error("screenshot upload failed", zap.String("game", string(game)), zap.String("type", string(t)), zap.Error(err))
		return nil, apperror.Storage("Failed to upload payment screenshot", err)
	}
	reg.PaymentScreenshotURL = key
	reg.Status = models.StatusPending

	if err := s.store.Insert(ctx, game, reg); err != nil {
		s.logger.Error("insert registration failed", zap.String("game", string(game)), zap.String("key", key), zap.Error(err))
		s.discardScreenshot(ctx, game, key, err)
		return nil, err
	}

	s.invalidate(ctx, game, t, reg.ID)
	s.logger.Info("registration submitted",
		zap.String("game", string(game)),
		zap.String("type", string(t)),
		zap.String("registration_id", reg.ID.String()),
		zap.Int("players", reg.PlayerCount()),
	)
	return reg, nil
}

func (s *Service) discardScreenshot(ctx context.Context, game games.ID, key string, cause error) {
	// The request may already be cancelled; compensation must still run.
	ctx = context.WithoutCancel(ctx)
	err := s.files.DeleteScreenshot(ctx, key)
	if err == nil {
		return
	}
	s.logger.Warn("orphan screenshot delete failed, queueing", zap.String("key", key), zap.Error(err))
	if s.cleanup == nil {
		return
	}
	payload := queue.ScreenshotCleanupPayload{Bucket: s.files.Bucket(), Key: key, Game: string(game), Reason: cause.Error()}
	if qerr := s.cleanup.EnqueueScreenshotCleanup(ctx, payload); qerr != nil {
		s.logger.Error("enqueue screenshot cleanup failed", zap.String("key", key), zap.Error(qerr))
	}
}

// invalidate drops cached reads of (game, type). A failure only delays freshness until the TTLs expire,
// so it is logged and the mutation still succeeds.
func (s *Service) invalidate(ctx context.Context, game games.ID, t models.TournamentType, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, string(game), string(t)); err != nil {
		s.logger.Warn("registration cache invalidation failed",
			zap.String("game", string(game)),
			zap.String("type", string(t)),
			zap.String("registration_id", id.String()),
			zap.Error(err),
		)
	}
}

// Count returns count(game, type, status), cached for the count TTL.
func (s *Service) Count(ctx context.Context, game games.ID, t models.TournamentType, status models.Status) (int, error) {
	key := querycache.CountKey(string(game), string(t), string(status))
	return querycache.Fetch(ctx, s.cache, key, s.cache.TTL().Count, func(ctx context.Context) (int, error) {
		return s.store.Count(ctx, game, t, status)
	})
}

// CountFresh reads count(game, type, status) from the store and refreshes the cached entry.
func (s *Service) CountFresh(ctx context.Context, game games.ID, t models.TournamentType, status models.Status) (int, error) {
	n, err := s.store.Count(ctx, game, t, status)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, querycache.CountKey(string(game), string(t), string(status)), n, s.cache.TTL().Count)
	return n, nil
}

// List returns the registrations of (game, type), newest first, cached for the list TTL.
func (s *Service) List(ctx context.Context, game games.ID, t models.TournamentType, status *models.Status) ([]models.Registration, error) {
	var statusKey string
	if status != nil {
		statusKey = string(*status)
	}
	key := querycache.ListKey(string(game), string(t), statusKey)
	return querycache.Fetch(ctx, s.cache, key, s.cache.TTL().List, func(ctx context.Context) ([]models.Registration, error) {
		return s.store.List(ctx, game, t, status)
	})
}

// Stats returns the per-status counts of (game, type).
func (s *Service) Stats(ctx context.Context, game games.ID, t models.TournamentType) (models.StatusCounts, error) {
	return s.store.CountByStatus(ctx, game, t)
}

// Detail returns a registration with a screenshot URL the browser can load.
func (s *Service) Detail(ctx context.Context, game games.ID, id uuid.UUID) (*models.RegistrationDetail, error) {
	reg, err := s.store.Get(ctx, game, id)
	if err != nil {
		return nil, err
	}
	url, err := s.ScreenshotURL(ctx, reg.PaymentScreenshotURL)
	if err != nil {
		return nil, err
	}
	return &models.RegistrationDetail{Registration: *reg, ScreenshotURL: url}, nil
}

// ScreenshotURL resolves a stored screenshot value. Full URLs from older rows pass through;
// storage keys are signed for the configured TTL.
func (s *Service) ScreenshotURL(ctx context.Context, stored string) (string, error) {
	if stored == "" {
		return "", apperror.NotFound("registration has no payment screenshot")
	}
	if storage.IsAbsoluteURL(stored) {
		return stored, nil
	}
	url, err := s.files.SignedScreenshotURL(ctx, stored, s.opts.SignedURLTTL)
	if err != nil {
		s.logger.Error("sign screenshot url failed", zap.String("key", stored), zap.Error(err))
		return "", apperror.Storage("Failed to load payment screenshot", err)
	}
	return url, nil
}

// Approve moves a pending registration to approved.
func (s *Service) Approve(ctx context.Context, game games.ID, id uuid.UUID) (*models.Registration, error) {
	return s.decide(ctx, game, id, models.StatusApproved)
}

// Reject moves a pending registration to rejected.
func (s *Service) Reject(ctx context.Context, game games.ID, id uuid.UUID) (*models.Registration, error) {
	return s.decide(ctx, game, id, models.StatusRejected)
}

func (s *Service) decide(ctx context.Context, game games.ID, id uuid.UUID, status models.Status) (*models.Registration, error) {
	reg, err := s.store.UpdateStatus(ctx, game, id, status)
	if err != nil {
		if !apperror.Is(err, apperror.CodeNotFound) && !apperror.Is(err, apperror.CodeInvalidTransition) {
			s.logger.Error("update status failed", zap.String("game", string(game)), zap.String("id", id.String()), zap.Error(err))
		}
		return nil, err
	}
	s.invalidate(ctx, game, reg.TournamentType, reg.ID)
	s.logger.Info("registration reviewed",
		zap.String("game", string(game)),
		zap.String("id", id.String()),
		zap.String("status", string(status)),
	)
	return reg, nil
}

package registrations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tournamentpro/backend/internal/games"
	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/pkg/apperror"
	"github.com/tournamentpro/backend/pkg/queue"
	"github.com/tournamentpro/backend/pkg/storage"
)

// memStore is an in-memory Store with the same conditional status write as Repository.
type memStore struct {
	mu        sync.Mutex
	rows      map[games.ID]map[uuid.UUID]*models.Registration
	insertErr error
	now       time.Time
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[games.ID]map[uuid.UUID]*models.Registration), now: time.Now()}
}

func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Millisecond)
	return m.now
}

func (m *memStore) Count(_ context.Context, game games.ID, t models.TournamentType, status models.Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows[game] {
		if r.TournamentType == t && r.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountByStatus(ctx context.Context, game games.ID, t models.TournamentType) (models.StatusCounts, error) {
	var out models.StatusCounts
	out.Pending, _ = m.Count(ctx, game, t, models.StatusPending)
	out.Approved, _ = m.Count(ctx, game, t, models.StatusApproved)
	out.Rejected, _ = m.Count(ctx, game, t, models.StatusRejected)
	out.Total = out.Pending + out.Approved + out.Rejected
	return out, nil
}

func (m *memStore) List(_ context.Context, game games.ID, t models.TournamentType, status *models.Status) ([]models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Registration, 0)
	for _, r := range m.rows[game] {
		if r.TournamentType != t || (status != nil && r.Status != *status) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Get(_ context.Context, game games.ID, id uuid.UUID) (*models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[game][id]
	if !ok {
		return nil, apperror.NotFound("registration not found")
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) Insert(_ context.Context, game games.ID, reg *models.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if reg.PaymentScreenshotURL == "" {
		return apperror.InvalidInput("payment screenshot key is required")
	}
	if m.rows[game] == nil {
		m.rows[game] = make(map[uuid.UUID]*models.Registration)
	}
	reg.ID = uuid.New()
	reg.Status = models.StatusPending
	reg.CreatedAt = m.tick()
	reg.UpdatedAt = reg.CreatedAt
	cp := *reg
	m.rows[game][reg.ID] = &cp
	return nil
}

func (m *memStore) UpdateStatus(_ context.Context, game games.ID, id uuid.UUID, status models.Status) (*models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[game][id]
	if !ok {
		return nil, apperror.NotFound("registration not found")
	}
	if !r.Status.CanTransitionTo(status) {
		return nil, apperror.New(apperror.CodeInvalidTransition, fmt.Sprintf("registration is already %s", r.Status), nil)
	}
	r.Status = status
	r.UpdatedAt = m.tick()
	cp := *r
	return &cp, nil
}

func (m *memStore) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, rows := range m.rows {
		n += len(rows)
	}
	return n
}

// memFiles is an in-memory ScreenshotStore. Signed URLs embed their expiry and are resolved by fetch.
type memFiles struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleteErr error
	deleted   []string
	types     map[string]string
	clock     func() time.Time
}

func newMemFiles() *memFiles {
	return &memFiles{objects: make(map[string][]byte), types: make(map[string]string), clock: time.Now}
}

func (f *memFiles) Bucket() string { return "payment-screenshots" }

func (f *memFiles) UploadScreenshot(_ context.Context, contentType string, body io.Reader, _ int64) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	ext, ok := storage.AllowedScreenshotTypes[contentType]
	if !ok {
		return "", storage.ErrUnsupportedScreenshot
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%d_%s%s", f.clock().UnixMilli(), strings.ReplaceAll(uuid.NewString()[:8], "-", ""), ext)
	f.objects[key] = data
	f.types[key] = contentType
	return key, nil
}

func (f *memFiles) DeleteScreenshot(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *memFiles) SignedScreenshotURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}
	return fmt.Sprintf("https://signed.test/%s?expires=%d", key, f.clock().Add(ttl).Unix()), nil
}

// fetch plays the role of the browser loading a signed URL.
func (f *memFiles) fetch(url string) ([]byte, error) {
	var key string
	var expires int64
	rest := strings.TrimPrefix(url, "https://signed.test/")
	if _, err := fmt.Sscanf(strings.Replace(rest, "?expires=", " ", 1), "%s %d", &key, &expires); err != nil {
		return nil, err
	}
	if f.clock().Unix() >= expires {
		return nil, errors.New("access denied: url expired")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return bytes.Clone(data), nil
}

func (f *memFiles) storedType(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.types[key]
}

func (f *memFiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type memCleanup struct {
	jobs []queue.ScreenshotCleanupPayload
}

func (q *memCleanup) EnqueueScreenshotCleanup(_ context.Context, p queue.ScreenshotCleanupPayload) error {
	q.jobs = append(q.jobs, p)
	return nil
}

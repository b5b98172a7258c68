// Package tournaments serves the public tournament panels: prizes, fees and live slot availability.
package tournaments

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/games"
	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/internal/querycache"
)

// Counter counts registrations. Count may be served from cache; CountFresh always hits the store.
type Counter interface {
	Count(ctx context.Context, game games.ID, t models.TournamentType, status models.Status) (int, error)
	CountFresh(ctx context.Context, game games.ID, t models.TournamentType, status models.Status) (int, error)
}

// Slots is the availability snapshot of one (game, type).
type Slots struct {
	Game          games.ID              `json:"game"`
	Type          models.TournamentType `json:"type"`
	Capacity      int                   `json:"capacity"`
	Approved      int                   `json:"approved"`
	Available     int                   `json:"available"`
	HasSlots      bool                  `json:"has_slots"`
	FilledPercent float64               `json:"filled_percent"`
	SlotUnit      string                `json:"slot_unit"`
}

// Info is everything the tournament panel shows.
type Info struct {
	Slots
	EntryFee      int      `json:"entry_fee"`
	WinnerPrize   int      `json:"winner_prize"`
	RunnerUpPrize int      `json:"runner_up_prize"`
	PerKillReward int      `json:"per_kill_reward"`
	PlayerCount   int      `json:"player_count"`
	Rules         []string `json:"rules"`
}

// Overview is the game page: banner plus every bracket.
type Overview struct {
	ID      games.ID `json:"id"`
	Name    string   `json:"name"`
	Tagline string   `json:"tagline"`
	Banner  string   `json:"banner"`
	Modes   []Info   `json:"modes"`
}

// Service computes tournament panels from the game config and approved counts.
type Service struct {
	counter Counter
	cache   *querycache.Cache
	logger  *zap.Logger
}

// NewService creates a tournaments service. cache may be nil.
func NewService(counter Counter, cache *querycache.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{counter: counter, cache: cache, logger: logger}
}

func snapshot(game games.ID, t models.TournamentType, approved int) Slots {
	capacity := games.SlotLimit(game, t)
	return Slots{
		Game:          game,
		Type:          t,
		Capacity:      capacity,
		Approved:      approved,
		Available:     games.Available(capacity, approved),
		HasSlots:      approved < capacity,
		FilledPercent: games.FilledPercent(capacity, approved),
		SlotUnit:      games.SlotUnit(t),
	}
}

// Slots returns the availability of (game, type), cached for the slots TTL.
func (s *Service) Slots(ctx context.Context, game games.ID, t models.TournamentType) (Slots, error) {
	key := querycache.SlotsKey(string(game), string(t))
	return querycache.Fetch(ctx, s.cache, key, s.cache.TTL().Slots, func(ctx context.Context) (Slots, error) {
		approved, err := s.counter.Count(ctx, game, t, models.StatusApproved)
		if err != nil {
			return Slots{}, err
		}
		return snapshot(game, t, approved), nil
	})
}

// Info returns the full panel of (game, type).
func (s *Service) Info(ctx context.Context, game games.ID, t models.TournamentType) (Info, error) {
	_, mode, err := games.LookupMode(string(game), string(t))
	if err != nil {
		return Info{}, err
	}
	slots, err := s.Slots(ctx, game, t)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Slots:         slots,
		EntryFee:      mode.EntryFee,
		WinnerPrize:   mode.WinnerPrize,
		RunnerUpPrize: mode.RunnerUpPrize,
		PerKillReward: mode.PerKillReward,
		PlayerCount:   mode.PlayerCount,
		Rules:         games.Rules,
	}, nil
}

// Overview returns the game page with every bracket's panel.
func (s *Service) Overview(ctx context.Context, game games.ID) (Overview, error) {
	cfg, err := games.Lookup(string(game))
	if err != nil {
		return Overview{}, err
	}
	out := Overview{ID: cfg.ID, Name: cfg.Name, Tagline: cfg.Tagline, Banner: cfg.Banner}
	for _, t := range models.TournamentTypes {
		info, err := s.Info(ctx, game, t)
		if err != nil {
			return Overview{}, err
		}
		out.Modes = append(out.Modes, info)
	}
	return out, nil
}

// Refresh recomputes the slot snapshot of every (game, type) from the store.
func (s *Service) Refresh(ctx context.Context) error {
	var errs []error
	for _, cfg := range games.All() {
		for _, t := range models.TournamentTypes {
			approved, err := s.counter.CountFresh(ctx, cfg.ID, t, models.StatusApproved)
			if err != nil {
				s.logger.Warn("slot refresh failed", zap.String("game", string(cfg.ID)), zap.String("type", string(t)), zap.Error(err))
				errs = append(errs, err)
				continue
			}
			s.cache.Set(ctx, querycache.SlotsKey(string(cfg.ID), string(t)), snapshot(cfg.ID, t, approved), s.cache.TTL().Slots)
		}
	}
	return errors.Join(errs...)
}

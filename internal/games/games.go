// Package games holds the static per-game tournament configuration: capacity, fees, prizes and storage table.
// It is the single source of truth for slot limits.
package games

import (
	"fmt"
	"sort"

	"github.com/tournamentpro/backend/internal/models"
)

// ID identifies a supported game.
type ID string

const (
	BGMI     ID = "bgmi"
	FreeFire ID = "freefire"
)

// Mode is the configuration of one bracket of a game.
type Mode struct {
	Capacity      int `json:"capacity"`
	EntryFee      int `json:"entry_fee"`
	WinnerPrize   int `json:"winner_prize"`
	RunnerUpPrize int `json:"runner_up_prize"`
	PerKillReward int `json:"per_kill_reward"`
	PlayerCount   int `json:"player_count"`
}

// Config is everything the service knows about one game.
type Config struct {
	ID      ID                             `json:"id"`
	Name    string                         `json:"name"`
	Tagline string                         `json:"tagline"`
	Table   string                         `json:"-"`
	Banner  string                         `json:"banner"`
	Modes   map[models.TournamentType]Mode `json:"modes"`
}

// Rules are shown on every tournament panel.
var Rules = []string{
	"All players must pay the entry fee before registration is confirmed",
	"Upload payment screenshot and transaction ID for verification",
	"Room ID and password will be shared via WhatsApp after approval",
	"Winners must submit match result screenshot to claim prizes",
	"Any form of cheating will result in immediate disqualification",
	"Admin decisions are final and binding",
}

var registry = map[ID]Config{
	BGMI: {
		ID:      BGMI,
		Name:    "BGMI",
		Tagline: "Compete in Solo, Duo, or Squad modes",
		Table:   "bgmi_registrations",
		Banner:  "/assets/bgmi-banner.jpg",
		Modes: map[models.TournamentType]Mode{
			models.TournamentSolo:  {Capacity: 100, EntryFee: 20, WinnerPrize: 350, RunnerUpPrize: 250, PerKillReward: 9, PlayerCount: 1},
			models.TournamentDuo:   {Capacity: 50, EntryFee: 40, WinnerPrize: 350, RunnerUpPrize: 250, PerKillReward: 9, PlayerCount: 2},
			models.TournamentSquad: {Capacity: 25, EntryFee: 80, WinnerPrize: 350, RunnerUpPrize: 250, PerKillReward: 9, PlayerCount: 4},
		},
	},
	FreeFire: {
		ID:      FreeFire,
		Name:    "Free Fire",
		Tagline: "Compete in Solo, Duo, or Squad modes",
		Table:   "freefire_registrations",
		Banner:  "/assets/freefire-banner.jpg",
		Modes: map[models.TournamentType]Mode{
			models.TournamentSolo:  {Capacity: 48, EntryFee: 20, WinnerPrize: 350, RunnerUpPrize: 150, PerKillReward: 5, PlayerCount: 1},
			models.TournamentDuo:   {Capacity: 24, EntryFee: 40, WinnerPrize: 350, RunnerUpPrize: 150, PerKillReward: 5, PlayerCount: 2},
			models.TournamentSquad: {Capacity: 12, EntryFee: 80, WinnerPrize: 350, RunnerUpPrize: 150, PerKillReward: 5, PlayerCount: 4},
		},
	},
}

// ErrUnknownGame is returned by Lookup for unsupported games.
type ErrUnknownGame struct{ Game string }

func (e ErrUnknownGame) Error() string { return fmt.Sprintf("unknown game %q", e.Game) }

// ErrUnknownMode is returned by LookupMode for unsupported brackets.
type ErrUnknownMode struct{ Mode string }

func (e ErrUnknownMode) Error() string { return fmt.Sprintf("unknown tournament type %q", e.Mode) }

// Lookup returns the configuration of a game.
func Lookup(game string) (Config, error) {
	cfg, ok := registry[ID(game)]
	if !ok {
		return Config{}, ErrUnknownGame{Game: game}
	}
	return cfg, nil
}

// LookupMode returns the game configuration and the mode for (game, type).
func LookupMode(game, tournamentType string) (Config, Mode, error) {
	cfg, err := Lookup(game)
	if err != nil {
		return Config{}, Mode{}, err
	}
	mode, ok := cfg.Modes[models.TournamentType(tournamentType)]
	if !ok {
		return Config{}, Mode{}, ErrUnknownMode{Mode: tournamentType}
	}
	return cfg, mode, nil
}

// Parse validates a (game, type) pair taken from a request path.
func Parse(game, tournamentType string) (ID, models.TournamentType, error) {
	if _, _, err := LookupMode(game, tournamentType); err != nil {
		return "", "", err
	}
	return ID(game), models.TournamentType(tournamentType), nil
}

// SlotLimit returns the capacity of (game, type), or 0 for unknown pairs.
func SlotLimit(game ID, t models.TournamentType) int {
	cfg, ok := registry[game]
	if !ok {
		return 0
	}
	return cfg.Modes[t].Capacity
}

// All returns every game sorted by ID.
func All() []Config {
	out := make([]Config, 0, len(registry))
	for _, cfg := range registry {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SlotUnit is "players" for solo and "teams" otherwise.
func SlotUnit(t models.TournamentType) string {
	if t == models.TournamentSolo {
		return "players"
	}
	return "teams"
}

// Available returns capacity minus approved. It is not clamped and goes negative when overbooked.
func Available(capacity, approved int) int {
	return capacity - approved
}

// FilledPercent returns approved/capacity as a percentage. Not clamped either.
func FilledPercent(capacity, approved int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(approved) / float64(capacity) * 100
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// TournamentType is the bracket size of a tournament.
type TournamentType string

const (
	TournamentSolo  TournamentType = "solo"
	TournamentDuo   TournamentType = "duo"
	TournamentSquad TournamentType = "squad"
)

// TournamentTypes lists all brackets in display order.
var TournamentTypes = []TournamentType{TournamentSolo, TournamentDuo, TournamentSquad}

// Valid reports whether t is a known bracket.
func (t TournamentType) Valid() bool {
	switch t {
	case TournamentSolo, TournamentDuo, TournamentSquad:
		return true
	}
	return false
}

// Status is the review state of a registration.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move a registration from s to next.
// Only pending registrations can be decided, and only once.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// Registration is one tournament entry. Optional player fields are nil unless the bracket needs them.
type Registration struct {
	ID                   uuid.UUID      `json:"id"`
	TournamentType       TournamentType `json:"tournament_type"`
	TeamName             *string        `json:"team_name"`
	TeamLeaderName       string         `json:"team_leader_name"`
	TeamLeaderID         string         `json:"team_leader_id"`
	TeamLeaderWhatsapp   string         `json:"team_leader_whatsapp"`
	Player2Name          *string        `json:"player2_name"`
	Player2ID            *string        `json:"player2_id"`
	Player3Name          *string        `json:"player3_name"`
	Player3ID            *string        `json:"player3_id"`
	Player4Name          *string        `json:"player4_name"`
	Player4ID            *string        `json:"player4_id"`
	PaymentScreenshotURL string         `json:"payment_screenshot_url"`
	TransactionID        string         `json:"transaction_id"`
	Status               Status         `json:"status"`
	SlotNumber           *int           `json:"slot_number"`
	YoutubeStreamingVote bool           `json:"youtube_streaming_vote"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// PlayerCount returns how many player blocks (leader included) are populated.
func (r *Registration) PlayerCount() int {
	n := 1
	for _, p := range []*string{r.Player2Name, r.Player3Name, r.Player4Name} {
		if p != nil {
			n++
		}
	}
	return n
}

// RegistrationDetail is a registration with a browser-loadable screenshot URL, for the admin detail view.
type RegistrationDetail struct {
	Registration
	ScreenshotURL string `json:"screenshot_url"`
}

// StatusCounts is the per-status breakdown for one (game, type).
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

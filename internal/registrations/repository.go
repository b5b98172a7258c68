package registrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tournamentpro/backend/internal/games"
	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/pkg/apperror"
)

const columns = `id, tournament_type, team_name, team_leader_name, team_leader_id, team_leader_whatsapp,
	player2_name, player2_id, player3_name, player3_id, player4_name, player4_id,
	payment_screenshot_url, transaction_id, status, slot_number, youtube_streaming_vote, created_at, updated_at`

// Repository handles registration persistence. Each game has its own table, resolved from the game config.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func table(game games.ID) (string, error) {
	cfg, err := games.Lookup(string(game))
	if err != nil {
		return "", apperror.NotFound(err.Error())
	}
	return cfg.Table, nil
}

func scanRegistration(row pgx.Row) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(&reg.ID, &reg.TournamentType, &reg.TeamName, &reg.TeamLeaderName, &reg.TeamLeaderID, &reg.TeamLeaderWhatsapp,
		&reg.Player2Name, &reg.Player2ID, &reg.Player3Name, &reg.Player3ID, &reg.Player4Name, &reg.Player4ID,
		&reg.PaymentScreenshotURL, &reg.TransactionID, &reg.Status, &reg.SlotNumber, &reg.YoutubeStreamingVote, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Count returns the exact number of registrations of (game, type) with status.
func (r *Repository) Count(ctx context.Context, game games.ID, t models.TournamentType, status models.Status) (int, error) {
	tbl, err := table(game)
	if err != nil {
		return 0, err
	}
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE tournament_type = $1 AND status = $2`, tbl)
	var n int
	if err := r.pool.QueryRow(ctx, q, string(t), string(status)).Scan(&n); err != nil {
		return 0, apperror.Internal("failed to count registrations", err)
	}
	return n, nil
}

// CountByStatus returns the per-status breakdown of (game, type) in one query.
func (r *Repository) CountByStatus(ctx context.Context, game games.ID, t models.TournamentType) (models.StatusCounts, error) {
	var out models.StatusCounts
	tbl, err := table(game)
	if err != nil {
		return out, err
	}
	q := fmt.Sprintf(`SELECT
		COUNT(*) FILTER (WHERE status = 'pending'),
		COUNT(*) FILTER (WHERE status = 'approved'),
		COUNT(*) FILTER (WHERE status = 'rejected'),
		COUNT(*)
		FROM %s WHERE tournament_type = $1`, tbl)
	if err := r.pool.QueryRow(ctx, q, string(t)).Scan(&out.Pending, &out.Approved, &out.Rejected, &out.Total); err != nil {
		return out, apperror.Internal("failed to count registrations", err)
	}
	return out, nil
}

// List returns registrations of (game, type), newest first. A nil status returns every status.
func (r *Repository) List(ctx context.Context, game games.ID, t models.TournamentType, status *models.Status) ([]models.Registration, error) {
	tbl, err := table(game)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE tournament_type = $1`, columns, tbl)
	args := []interface{}{string(t)}
	if status != nil {
		q += ` AND status = $2`
		args = append(args, string(*status))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, apperror.Internal("failed to list registrations", err)
	}
	defer rows.Close()
	list := make([]models.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, apperror.Internal("failed to list registrations", err)
		}
		list = append(list, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal("failed to list registrations", err)
	}
	return list, nil
}

// Get returns one registration of a game.
func (r *Repository) Get(ctx context.Context, game games.ID, id uuid.UUID) (*models.Registration, error) {
	tbl, err := table(game)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, columns, tbl)
	reg, err := scanRegistration(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("registration not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load registration", err)
	}
	return reg, nil
}

// Insert writes a new pending registration and fills in its store-assigned fields.
func (r *Repository) Insert(ctx context.Context, game games.ID, reg *models.Registration) error {
	tbl, err := table(game)
	if err != nil {
		return err
	}
	if reg.PaymentScreenshotURL == "" {
		return apperror.InvalidInput("payment screenshot key is required")
	}
	q := fmt.Sprintf(`INSERT INTO %s (tournament_type, team_name, team_leader_name, team_leader_id, team_leader_whatsapp,
		player2_name, player2_id, player3_name, player3_id, player4_name, player4_id,
		payment_screenshot_url, transaction_id, status, youtube_streaming_vote)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'pending', $14)
		RETURNING id, status, slot_number, created_at, updated_at`, tbl)
	err = r.pool.QueryRow(ctx, q, string(reg.TournamentType), reg.TeamName, reg.TeamLeaderName, reg.TeamLeaderID, reg.TeamLeaderWhatsapp,
		reg.Player2Name, reg.Player2ID, reg.Player3Name, reg.Player3ID, reg.Player4Name, reg.Player4ID,
		reg.PaymentScreenshotURL, reg.TransactionID, reg.YoutubeStreamingVote).
		Scan(&reg.ID, &reg.Status, &reg.SlotNumber, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return apperror.Internal("failed to save registration", err)
	}
	return nil
}

// UpdateStatus moves a pending registration to status. The write only applies while the row is still pending,
// so concurrent decisions cannot overwrite each other.
func (r *Repository) UpdateStatus(ctx context.Context, game games.ID, id uuid.UUID, status models.Status) (*models.Registration, error) {
	if !models.StatusPending.CanTransitionTo(status) {
		return nil, apperror.InvalidInput(fmt.Sprintf("cannot set status to %q", status))
	}
	tbl, err := table(game)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`UPDATE %s SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING %s`, tbl, columns)
	reg, err := scanRegistration(r.pool.QueryRow(ctx, q, id, string(status)))
	if err == nil {
		return reg, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.Internal("failed to update status", err)
	}

	var current models.Status
	err = r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT status FROM %s WHERE id = $1`, tbl), id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("registration not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to update status", err)
	}
	return nil, apperror.New(apperror.CodeInvalidTransition,
		fmt.Sprintf("registration is already %s", current), nil)
}

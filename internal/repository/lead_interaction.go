package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

const interactionColumns = `id, lead_id, user_id, type, subject, notes, created_at`

type LeadInteractionRepository interface {
	WithDB(db db.DB) LeadInteractionRepository
	CreateInteraction(ctx context.Context, interaction model.LeadInteraction) (model.LeadInteraction, error)
	// ListInteractions returns the interactions of a lead, newest first.
	ListInteractions(ctx context.Context, leadID int64) ([]model.LeadInteraction, error)
}

type leadInteractionRepository struct {
	db db.DB
}

func NewLeadInteractionRepository(db db.DB) LeadInteractionRepository {
	return &leadInteractionRepository{db: db}
}

func (r leadInteractionRepository) WithDB(db db.DB) LeadInteractionRepository {
	return &leadInteractionRepository{db: db}
}

type interactionRow struct {
	ID        int64     `db:"id"`
	LeadID    int64     `db:"lead_id"`
	UserID    *int64    `db:"user_id"`
	Type      string    `db:"type"`
	Subject   *string   `db:"subject"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}

func (row interactionRow) toModel() (model.LeadInteraction, error) {
	typ, err := model.ParseInteractionType(row.Type)
	if err != nil {
		return model.LeadInteraction{}, fmt.Errorf("interaction %d: %w", row.ID, err)
	}
	return model.LeadInteraction{
		ID:        row.ID,
		LeadID:    row.LeadID,
		UserID:    row.UserID,
		Type:      typ,
		Subject:   row.Subject,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r leadInteractionRepository) CreateInteraction(ctx context.Context, interaction model.LeadInteraction) (model.LeadInteraction, error) {
	rows, _ := r.db.Query(ctx, `
		INSERT INTO lead_interactions (lead_id, user_id, type, subject, notes)
		VALUES (@lead_id, @user_id, @type, @subject, @notes)
		RETURNING `+interactionColumns,
		pgx.NamedArgs{
			"lead_id": interaction.LeadID,
			"user_id": interaction.UserID,
			"type":    interaction.Type.String(),
			"subject": interaction.Subject,
			"notes":   interaction.Notes,
		})
	created, err := collectOne(rows, interactionRow.toModel)
	if err != nil {
		return model.LeadInteraction{}, referenceErr(err, "create interaction")
	}
	return created, nil
}

func (r leadInteractionRepository) ListInteractions(ctx context.Context, leadID int64) ([]model.LeadInteraction, error) {
	rows, _ := r.db.Query(ctx, `
		SELECT `+interactionColumns+`
		FROM lead_interactions
		WHERE lead_id = $1
		ORDER BY created_at DESC, id DESC`, leadID)
	interactions, err := collectAll(rows, interactionRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return interactions, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

const leadColumns = `id, name, company, email, phone, source, status, assigned_to, notes, value, due_date, created_at, updated_at`

type ListLeadsParams struct {
	Status     *model.LeadStatus
	AssignedTo *int64
}

type LeadRepository interface {
	WithDB(db db.DB) LeadRepository
	CreateLead(ctx context.Context, lead model.Lead) (model.Lead, error)
	GetLead(ctx context.Context, id int64) (model.Lead, error)
	// ListLeads returns leads ordered by id.
	ListLeads(ctx context.Context, params ListLeadsParams) ([]model.Lead, error)
	UpdateLead(ctx context.Context, lead model.Lead) (model.Lead, error)
	DeleteLead(ctx context.Context, id int64) error
}

type leadRepository struct {
	db db.DB
}

func NewLeadRepository(db db.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r leadRepository) WithDB(db db.DB) LeadRepository {
	return &leadRepository{db: db}
}

type leadRow struct {
	ID         int64               `db:"id"`
	Name       string              `db:"name"`
	Company    *string             `db:"company"`
	Email      *string             `db:"email"`
	Phone      *string             `db:"phone"`
	Source     *string             `db:"source"`
	Status     string              `db:"status"`
	AssignedTo *int64              `db:"assigned_to"`
	Notes      *string             `db:"notes"`
	Value      decimal.NullDecimal `db:"value"`
	DueDate    *time.Time          `db:"due_date"`
	CreatedAt  time.Time           `db:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at"`
}

func (row leadRow) toModel() (model.Lead, error) {
	status, err := model.ParseLeadStatus(row.Status)
	if err != nil {
		return model.Lead{}, fmt.Errorf("lead %d: %w", row.ID, err)
	}
	lead := model.Lead{
		ID:         row.ID,
		Name:       row.Name,
		Company:    row.Company,
		Email:      row.Email,
		Phone:      row.Phone,
		Source:     row.Source,
		Status:     status,
		AssignedTo: row.AssignedTo,
		Notes:      row.Notes,
		DueDate:    row.DueDate,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.Value.Valid {
		lead.Value = &row.Value.Decimal
	}
	return lead, nil
}

func leadArgs(lead model.Lead) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          lead.ID,
		"name":        lead.Name,
		"company":     lead.Company,
		"email":       lead.Email,
		"phone":       lead.Phone,
		"source":      lead.Source,
		"status":      lead.Status.String(),
		"assigned_to": lead.AssignedTo,
		"notes":       lead.Notes,
		"value":       nullNumeric(lead.Value),
		"due_date":    lead.DueDate,
	}
}

func (r leadRepository) CreateLead(ctx context.Context, lead model.Lead) (model.Lead, error) {
	rows, _ := r.db.Query(ctx, `
		INSERT INTO leads (name, company, email, phone, source, status, assigned_to, notes, value, due_date)
		VALUES (@name, @company, @email, @phone, @source, @status, @assigned_to, @notes, @value, @due_date)
		RETURNING `+leadColumns,
		leadArgs(lead))
	created, err := collectOne(rows, leadRow.toModel)
	if err != nil {
		return model.Lead{}, referenceErr(err, "create lead")
	}
	return created, nil
}

func (r leadRepository) GetLead(ctx context.Context, id int64) (model.Lead, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := collectOne(rows, leadRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Lead{}, apperr.LeadNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

func (r leadRepository) ListLeads(ctx context.Context, params ListLeadsParams) ([]model.Lead, error) {
	var status *string
	if params.Status != nil {
		s := params.Status.String()
		status = &s
	}

	rows, _ := r.db.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE (@status::text IS NULL OR status = @status)
		  AND (@assigned_to::bigint IS NULL OR assigned_to = @assigned_to)
		ORDER BY id`,
		pgx.NamedArgs{
			"status":      status,
			"assigned_to": params.AssignedTo,
		})
	leads, err := collectAll(rows, leadRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (r leadRepository) UpdateLead(ctx context.Context, lead model.Lead) (model.Lead, error) {
	rows, _ := r.db.Query(ctx, `
		UPDATE leads
		SET name        = @name,
			company     = @company,
			email       = @email,
			phone       = @phone,
			source      = @source,
			status      = @status,
			assigned_to = @assigned_to,
			notes       = @notes,
			value       = @value,
			due_date    = @due_date,
			updated_at  = NOW()
		WHERE id = @id
		RETURNING `+leadColumns,
		leadArgs(lead))
	updated, err := collectOne(rows, leadRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Lead{}, apperr.LeadNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Lead{}, referenceErr(err, "update lead")
	}
	return updated, nil
}

func (r leadRepository) DeleteLead(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.LeadNotFoundErr
	}
	return nil
}

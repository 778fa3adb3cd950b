package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
)

type LeadParams struct {
	Name       string
	Company    *string
	Email      *string
	Phone      *string
	Source     *string
	Status     model.LeadStatus
	AssignedTo *int64
	Notes      *string
	Value      *decimal.Decimal
	DueDate    *time.Time
}

type CreateInteractionParams struct {
	Type    model.InteractionType
	Subject *string
	Notes   *string
}

type LeadService interface {
	ListLeads(ctx context.Context, params repository.ListLeadsParams) ([]model.Lead, error)
	GetLead(ctx context.Context, id int64) (model.Lead, error)
	// CreateLead defaults the status to New.
	CreateLead(ctx context.Context, params LeadParams) (model.Lead, error)
	// UpdateLead replaces every field. An unspecified status keeps the
	// current one.
	UpdateLead(ctx context.Context, id int64, params LeadParams) (model.Lead, error)
	DeleteLead(ctx context.Context, id int64) error
	ListInteractions(ctx context.Context, leadID int64) ([]model.LeadInteraction, error)
	AddInteraction(ctx context.Context, leadID int64, userID *int64, params CreateInteractionParams) (model.LeadInteraction, error)
}

type leadService struct {
	stats           statsInvalidator
	leadRepo        repository.LeadRepository
	interactionRepo repository.LeadInteractionRepository
}

func NewLeadService(
	logger *slog.Logger,
	statsCache cache.Cache,
	leadRepo repository.LeadRepository,
	interactionRepo repository.LeadInteractionRepository,
) LeadService {
	return &leadService{
		stats: statsInvalidator{
			logger: logger.With(slog.String("service", "lead")),
			cache:  statsCache,
		},
		leadRepo:        leadRepo,
		interactionRepo: interactionRepo,
	}
}

func (s *leadService) ListLeads(ctx context.Context, params repository.ListLeadsParams) ([]model.Lead, error) {
	leads, err := s.leadRepo.ListLeads(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("lead repository list leads: %w", err)
	}
	return leads, nil
}

func (s *leadService) GetLead(ctx context.Context, id int64) (model.Lead, error) {
	lead, err := s.leadRepo.GetLead(ctx, id)
	if err != nil {
		return model.Lead{}, fmt.Errorf("lead repository get lead: %w", err)
	}
	return lead, nil
}

func (s *leadService) CreateLead(ctx context.Context, params LeadParams) (model.Lead, error) {
	lead := model.Lead{Status: model.LeadStatusNew}
	params.apply(&lead)

	lead, err := s.leadRepo.CreateLead(ctx, lead)
	if err != nil {
		return model.Lead{}, fmt.Errorf("lead repository create lead: %w", err)
	}
	s.stats.invalidate(ctx)
	return lead, nil
}

func (s *leadService) UpdateLead(ctx context.Context, id int64, params LeadParams) (model.Lead, error) {
	lead, err := s.leadRepo.GetLead(ctx, id)
	if err != nil {
		return model.Lead{}, fmt.Errorf("lead repository get lead: %w", err)
	}
	params.apply(&lead)

	lead, err = s.leadRepo.UpdateLead(ctx, lead)
	if err != nil {
		return model.Lead{}, fmt.Errorf("lead repository update lead: %w", err)
	}
	s.stats.invalidate(ctx)
	return lead, nil
}

func (s *leadService) DeleteLead(ctx context.Context, id int64) error {
	if err := s.leadRepo.DeleteLead(ctx, id); err != nil {
		return fmt.Errorf("lead repository delete lead: %w", err)
	}
	s.stats.invalidate(ctx)
	return nil
}

func (s *leadService) ListInteractions(ctx context.Context, leadID int64) ([]model.LeadInteraction, error) {
	if _, err := s.leadRepo.GetLead(ctx, leadID); err != nil {
		return nil, fmt.Errorf("lead repository get lead: %w", err)
	}

	interactions, err := s.interactionRepo.ListInteractions(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("lead interaction repository list interactions: %w", err)
	}
	return interactions, nil
}

func (s *leadService) AddInteraction(ctx context.Context, leadID int64, userID *int64, params CreateInteractionParams) (model.LeadInteraction, error) {
	if _, err := s.leadRepo.GetLead(ctx, leadID); err != nil {
		return model.LeadInteraction{}, fmt.Errorf("lead repository get lead: %w", err)
	}

	interaction, err := s.interactionRepo.CreateInteraction(ctx, model.LeadInteraction{
		LeadID:  leadID,
		UserID:  userID,
		Type:    params.Type,
		Subject: params.Subject,
		Notes:   params.Notes,
	})
	if err != nil {
		return model.LeadInteraction{}, fmt.Errorf("lead interaction repository create interaction: %w", err)
	}
	return interaction, nil
}

func (p LeadParams) apply(lead *model.Lead) {
	lead.Name = strings.TrimSpace(p.Name)
	lead.Company = p.Company
	lead.Email = p.Email
	lead.Phone = p.Phone
	lead.Source = p.Source
	if p.Status != model.LeadStatusUnspecified {
		lead.Status = p.Status
	}
	lead.AssignedTo = p.AssignedTo
	lead.Notes = p.Notes
	lead.Value = nil
	if p.Value != nil {
		v := p.Value.Round(2)
		lead.Value = &v
	}
	lead.DueDate = p.DueDate
}

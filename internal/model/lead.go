package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Lead struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Company    *string          `json:"company"`
	Email      *string          `json:"email"`
	Phone      *string          `json:"phone"`
	Source     *string          `json:"source"`
	Status     LeadStatus       `json:"status"`
	AssignedTo *int64           `json:"assigned_to"`
	Notes      *string          `json:"notes"`
	Value      *decimal.Decimal `json:"value"`
	DueDate    *time.Time       `json:"due_date"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type LeadInteraction struct {
	ID        int64           `json:"id"`
	LeadID    int64           `json:"lead_id"`
	UserID    *int64          `json:"user_id"`
	Type      InteractionType `json:"type"`
	Subject   *string         `json:"subject"`
	Notes     *string         `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeadKind - откуда пришла заявка
type LeadKind string

const (
	LeadContact   LeadKind = "contact"
	LeadValuation LeadKind = "valuation"
)

// Lead - заявка с формы контактов или оценки ("vender").
type Lead struct {
	ID              uuid.UUID
	Kind            LeadKind
	Name            string
	Email           string
	Phone           string
	Message         string
	PropertySlug    string // для контакта со страницы объекта
	PropertyAddress string // для оценки
	PropertyType    string // для оценки
	CreatedAt       time.Time
}

// LeadInput - сырые данные формы до валидации.
type LeadInput struct {
	Kind            LeadKind `json:"kind"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	Message         string   `json:"message,omitempty"`
	PropertySlug    string   `json:"property_slug,omitempty"`
	PropertyAddress string   `json:"property_address,omitempty"`
	PropertyType    string   `json:"property_type,omitempty"`
	PrivacyAccepted bool     `json:"privacy_accepted"`
}

// LeadValidationError содержит ошибки по полям формы.
type LeadValidationError struct {
	Fields map[string]string
}

func (e *LeadValidationError) Error() string {
	return "lead validation failed"
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrInvalidLead)
func (e *LeadValidationError) Unwrap() error {
	return ErrInvalidLead
}

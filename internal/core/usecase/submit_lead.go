package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"

	"github.com/google/uuid"
)

type SubmitLeadUseCase struct {
	validator  port.LeadValidatorPort
	repository port.LeadRepositoryPort
	notifier   port.LeadNotifierPort
	now        func() time.Time
}

func NewSubmitLeadUseCase(validator port.LeadValidatorPort, repository port.LeadRepositoryPort, notifier port.LeadNotifierPort) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		validator:  validator,
		repository: repository,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input domain.LeadInput) (*domain.Lead, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SubmitLead",
		"kind":     input.Kind,
	})

	input = trimLeadInput(input)

	if err := uc.validator.ValidateLead(input); err != nil {
		ucLogger.Warn("Lead failed validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	lead := domain.Lead{
		ID:              uuid.New(),
		Kind:            input.Kind,
		Name:            input.Name,
		Email:           strings.ToLower(input.Email),
		Phone:           input.Phone,
		Message:         input.Message,
		PropertySlug:    input.PropertySlug,
		PropertyAddress: input.PropertyAddress,
		PropertyType:    input.PropertyType,
		CreatedAt:       uc.now().UTC(),
	}

	if err := uc.repository.Save(ctx, lead); err != nil {
		ucLogger.Error("Failed to save lead", err, port.Fields{"lead_id": lead.ID})
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}

	// Заявка уже сохранена, поэтому ошибка уведомления не проваливает запрос
	if err := uc.notifier.NotifyLeadCreated(ctx, lead); err != nil {
		ucLogger.Error("Failed to publish lead event", err, port.Fields{"lead_id": lead.ID})
	}

	ucLogger.Info("Lead submitted", port.Fields{"lead_id": lead.ID})
	return &lead, nil
}

func trimLeadInput(in domain.LeadInput) domain.LeadInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	in.PropertySlug = strings.TrimSpace(in.PropertySlug)
	in.PropertyAddress = strings.TrimSpace(in.PropertyAddress)
	in.PropertyType = strings.TrimSpace(in.PropertyType)
	return in
}

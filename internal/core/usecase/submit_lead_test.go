package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
	"versus-web/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLeadValidator struct {
	err  error
	seen domain.LeadInput
}

func (v *stubLeadValidator) ValidateLead(input domain.LeadInput) error {
	v.seen = input
	return v.err
}

type memoryLeadRepository struct {
	saved []domain.Lead
	err   error
}

func (r *memoryLeadRepository) Save(ctx context.Context, lead domain.Lead) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, lead)
	return nil
}

type recordingNotifier struct {
	notified []domain.Lead
	err      error
}

func (n *recordingNotifier) NotifyLeadCreated(ctx context.Context, lead domain.Lead) error {
	n.notified = append(n.notified, lead)
	return n.err
}

func contactInput() domain.LeadInput {
	return domain.LeadInput{
		Kind:            domain.LeadContact,
		Name:            "  Lucía Pérez ",
		Email:           " Lucia@Example.COM",
		Message:         "Quiero visitar el piso del centro.",
		PrivacyAccepted: true,
	}
}

func TestSubmitLead_Success(t *testing.T) {
	validator := &stubLeadValidator{}
	repo := &memoryLeadRepository{}
	notifier := &recordingNotifier{}
	uc := NewSubmitLeadUseCase(validator, repo, notifier)
	uc.now = func() time.Time { return fixedNow }

	lead, err := uc.Execute(context.Background(), contactInput())
	require.NoError(t, err)

	assert.Equal(t, "Lucía Pérez", validator.seen.Name, "input is trimmed before validation")
	assert.Equal(t, "lucia@example.com", lead.Email)
	assert.Equal(t, domain.LeadContact, lead.Kind)
	assert.Equal(t, fixedNow, lead.CreatedAt)
	assert.NotEmpty(t, lead.ID.String())

	require.Len(t, repo.saved, 1)
	assert.Equal(t, *lead, repo.saved[0])
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, lead.ID, notifier.notified[0].ID)
}

func TestSubmitLead_ValidationError(t *testing.T) {
	validationErr := &domain.LeadValidationError{Fields: map[string]string{"email": "invalid"}}
	repo := &memoryLeadRepository{}
	uc := NewSubmitLeadUseCase(&stubLeadValidator{err: validationErr}, repo, &recordingNotifier{})

	lead, err := uc.Execute(context.Background(), contactInput())
	assert.Nil(t, lead)
	assert.ErrorIs(t, err, domain.ErrInvalidLead)

	var fieldsErr *domain.LeadValidationError
	require.True(t, errors.As(err, &fieldsErr))
	assert.Equal(t, "invalid", fieldsErr.Fields["email"])
	assert.Empty(t, repo.saved)
}

func TestSubmitLead_RepositoryError(t *testing.T) {
	dbErr := errors.New("connection refused")
	notifier := &recordingNotifier{}
	uc := NewSubmitLeadUseCase(&stubLeadValidator{}, &memoryLeadRepository{err: dbErr}, notifier)

	_, err := uc.Execute(context.Background(), contactInput())
	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, notifier.notified)
}

func TestSubmitLead_NotifierErrorDoesNotFailRequest(t *testing.T) {
	repo := &memoryLeadRepository{}
	uc := NewSubmitLeadUseCase(&stubLeadValidator{}, repo, &recordingNotifier{err: errors.New("broker down")})

	lead, err := uc.Execute(context.Background(), contactInput())
	require.NoError(t, err)
	assert.NotNil(t, lead)
	assert.Len(t, repo.saved, 1)
}

package usecase

import (
	"context"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

// PropertiesPerPage - размер страницы листинга
const PropertiesPerPage = 12

type FindPropertiesUseCase struct {
	source  port.ContentSourcePort
	perPage int
}

func NewFindPropertiesUseCase(source port.ContentSourcePort) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{source: source, perPage: PropertiesPerPage}
}

func (uc *FindPropertiesUseCase) Execute(ctx context.Context, filters domain.FilterState, page int) (*domain.PropertyPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindProperties",
		"filters":  filters.Query(),
		"page":     page,
	})

	ucLogger.Debug("Use case started", nil)

	if page < 1 {
		page = 1
	}

	result, err := uc.source.ListProperties(ctx, filters, page, uc.perPage)
	if err != nil {
		ucLogger.Error("Content source returned an error", err, nil)
		return nil, err
	}

	if result == nil {
		result = &domain.PropertyPage{}
	}
	// Источник может не знать номер страницы (например, пустой результат)
	if result.CurrentPage == 0 {
		result.CurrentPage = page
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.Total,
		"items_on_page": len(result.Items),
	})

	return result, nil
}

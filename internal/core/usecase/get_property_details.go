package usecase

import (
	"context"
	"strings"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"

	"github.com/mmcloughlin/geohash"
)

const (
	// nearbyGeohashPrecision - 5 символов это ячейка примерно 5x5 км
	nearbyGeohashPrecision = 5
	nearbyLimit            = 3
	nearbyCandidates       = 24
)

type GetPropertyDetailsUseCase struct {
	source port.ContentSourcePort
}

func NewGetPropertyDetailsUseCase(source port.ContentSourcePort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{source: source}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, slug string) (*domain.PropertyDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetPropertyDetails",
		"slug":     slug,
	})

	property, err := uc.source.GetProperty(ctx, slug)
	if err != nil {
		ucLogger.Error("Content source returned an error", err, nil)
		return nil, err
	}
	if property == nil {
		ucLogger.Info("Property not found", nil)
		return nil, domain.ErrNotFound
	}

	details := &domain.PropertyDetails{Property: *property}
	details.Nearby = uc.findNearby(ctx, *property)

	ucLogger.Info("Use case finished successfully", port.Fields{"nearby_count": len(details.Nearby)})
	return details, nil
}

// findNearby ищет объекты того же города, попавшие в ту же geohash-ячейку.
// Если у объекта нет координат, берем просто объекты того же города.
func (uc *GetPropertyDetailsUseCase) findNearby(ctx context.Context, property domain.Property) []domain.Property {
	if property.City == "" {
		return nil
	}

	filters := domain.DefaultFilterState()
	filters.City = property.City

	candidates, err := uc.source.ListProperties(ctx, filters, 1, nearbyCandidates)
	if err != nil || candidates == nil {
		return nil
	}

	var cell string
	if property.HasLocation() {
		cell = geohash.EncodeWithPrecision(property.Latitude, property.Longitude, nearbyGeohashPrecision)
	}

	nearby := make([]domain.Property, 0, nearbyLimit)
	for _, candidate := range candidates.Items {
		if candidate.Slug == property.Slug {
			continue
		}
		if cell != "" && candidate.HasLocation() {
			candidateCell := geohash.EncodeWithPrecision(candidate.Latitude, candidate.Longitude, nearbyGeohashPrecision)
			if !strings.EqualFold(candidateCell, cell) {
				continue
			}
		}
		nearby = append(nearby, candidate)
		if len(nearby) == nearbyLimit {
			break
		}
	}
	return nearby
}

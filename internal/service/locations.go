package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/repo"
)

// LocationService owns the location vocabulary: the names offered for
// autocomplete and the matching view the SMS extractor probes.
type LocationService struct {
	locations repo.LocationRepo
}

// NewLocationService constructs a LocationService backed by the provided repo.
func NewLocationService(locations repo.LocationRepo) *LocationService {
	return &LocationService{locations: locations}
}

// Register adds a location name to the vocabulary or merges details into an
// existing entry. Without force, address and memo only fill fields that are
// still unset; with force, non-empty inputs overwrite.
// Returns domain.ErrValidation for a name that trims to empty.
func (s *LocationService) Register(ctx context.Context, name, address, memo string, force bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: location name is required", domain.ErrValidation)
	}

	loc := domain.Location{
		Name:    name,
		Address: strings.TrimSpace(address),
		Memo:    strings.TrimSpace(memo),
	}
	if err := s.locations.Upsert(ctx, loc, force); err != nil {
		return fmt.Errorf("service.LocationService.Register: %w", err)
	}
	return nil
}

// List returns the vocabulary alphabetically. Always returns a non-nil slice.
func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	locs, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LocationService.List: %w", err)
	}
	if locs == nil {
		locs = []domain.Location{}
	}
	return locs, nil
}

// GetByName returns one location.
// Returns domain.ErrNotFound for an unknown name.
func (s *LocationService) GetByName(ctx context.Context, name string) (domain.Location, error) {
	loc, err := s.locations.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.Location{}, fmt.Errorf("service.LocationService.GetByName: %w", err)
	}
	return loc, nil
}

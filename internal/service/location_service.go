package service

import (
	"context"

	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/repository"
)

type LocationService interface {
	ListActive(ctx context.Context) ([]dto.LocationResponse, error)
}

type locationService struct {
	repo repository.LocationRepository
}

func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) ListActive(ctx context.Context) ([]dto.LocationResponse, error) {
	locations, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		resp = append(resp, dto.LocationResponse{
			ID:     loc.ID.String(),
			Name:   loc.Name,
			Kind:   loc.Kind,
			Active: loc.Active,
		})
	}
	return resp, nil
}

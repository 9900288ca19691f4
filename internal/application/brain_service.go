package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/internal/domain/repository"
	"github.com/oksasatya/second-brain-api/pkg/apperr"
)

// BrainService manages a user's brain collections.
type BrainService struct {
	Repo   repository.BrainRepository
	Logger *logrus.Logger
}

func NewBrainService(repo repository.BrainRepository, logger *logrus.Logger) *BrainService {
	return &BrainService{Repo: repo, Logger: logger}
}

// Create adds a brain for the owner; names are unique per owner.
func (s *BrainService) Create(ctx context.Context, ownerID, name, description string) (string, error) {
	b := &entity.Brain{OwnerID: ownerID, Name: name, Description: description}
	if err := s.Repo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return "", apperr.Conflict("BE-09", "Brain name already taken")
		}
		return "", apperr.Internal("BE-01", "Issue while getting brain data").WithCause(err)
	}
	return b.ID, nil
}

// Nav builds the navigation list with content-type presence flags per brain.
func (s *BrainService) Nav(ctx context.Context, ownerID string) ([]entity.BrainNav, error) {
	nav, err := s.Repo.Nav(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("BE-01", "Issue while getting brain data").WithCause(err)
	}
	if nav == nil {
		nav = []entity.BrainNav{}
	}
	return nav, nil
}

// Detail returns brain metadata and per-content-type item counts for an owned
// brain.
func (s *BrainService) Detail(ctx context.Context, ownerID, brainID string) (*entity.BrainDetail, error) {
	d, err := s.Repo.Detail(ctx, ownerID, brainID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("BE-10", "Brain not found")
		}
		return nil, apperr.Internal("BE-01", "Issue while getting brain detail").WithCause(err)
	}
	return d, nil
}

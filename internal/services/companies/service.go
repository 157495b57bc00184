package companies

import (
	"context"
	"errors"

	"bwa/internal/domain"
)

var ErrNotFound = errors.New("company not found")

// Service exposes the static company registry.
type Service struct{}

func New() *Service { return &Service{} }

func (s *Service) List(_ context.Context) []domain.Company {
	return domain.Registry()
}

func (s *Service) Get(_ context.Context, id string) (domain.Company, error) {
	c, ok := domain.LookupCompany(domain.CompanyID(id))
	if !ok {
		return domain.Company{}, ErrNotFound
	}
	return c, nil
}

package catalog

import "github.com/feliksshtein/wall-art-backend/internal/pricing"

// Service provides catalog lookups plus display-price derivation.
type Service struct {
	repo  Repository
	table pricing.Table
}

func NewService(repo Repository, table pricing.Table) *Service {
	return &Service{repo: repo, table: table}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

// BasePrice resolves the trusted base price for a product. The checkout
// verifier uses this instead of any client-submitted price.
func (s *Service) BasePrice(id string) (float64, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return 0, err
	}
	return p.BasePrice, nil
}

// DisplayPrice derives the non-authoritative display price for a product
// variant. Unknown size/material ids fall back to the base price, per the
// lenient display path.
func (s *Service) DisplayPrice(id, sizeID, materialID string) (float64, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return 0, err
	}
	return s.table.CalculatePrice(sizeID, materialID, p.BasePrice), nil
}

func (s *Service) Update(id string, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

package app

import (
	"context"

	"bloodbank/internal/domain"
)

// StatsService computes the aggregate counts shown on the home and admin
// pages.
type StatsService struct {
	c *Collections
}

// NewStatsService creates a StatsService over the given collections.
func NewStatsService(c *Collections) *StatsService {
	return &StatsService{c: c}
}

// Counts returns the number of donors, hospitals and requests.
func (s *StatsService) Counts(ctx context.Context) (domain.Stats, error) {
	donors, err := s.c.donors(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	hospitals, err := s.c.hospitals(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	requests, err := s.c.requests(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{
		Donors:    len(donors),
		Hospitals: len(hospitals),
		Requests:  len(requests),
	}, nil
}

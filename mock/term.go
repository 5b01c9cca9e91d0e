package mock

import (
	"context"

	"github.com/fwojciec/furniq"
)

var (
	_ furniq.TermSource  = (*TermSource)(nil)
	_ furniq.TermService = (*TermService)(nil)
)

// TermSource is a mock implementation of furniq.TermSource.
type TermSource struct {
	FindTermsFn func(ctx context.Context, filter furniq.TermFilter) ([]*furniq.Term, error)
}

func (s *TermSource) FindTerms(ctx context.Context, filter furniq.TermFilter) ([]*furniq.Term, error) {
	return s.FindTermsFn(ctx, filter)
}

// TermService is a mock implementation of furniq.TermService.
type TermService struct {
	CreateTermFn func(ctx context.Context, term *furniq.Term) error
	FindTermsFn  func(ctx context.Context, filter furniq.TermFilter) ([]*furniq.Term, error)
	DeleteTermFn func(ctx context.Context, id string) error
}

func (s *TermService) CreateTerm(ctx context.Context, term *furniq.Term) error {
	return s.CreateTermFn(ctx, term)
}

func (s *TermService) FindTerms(ctx context.Context, filter furniq.TermFilter) ([]*furniq.Term, error) {
	return s.FindTermsFn(ctx, filter)
}

func (s *TermService) DeleteTerm(ctx context.Context, id string) error {
	return s.DeleteTermFn(ctx, id)
}

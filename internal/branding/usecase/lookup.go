package usecase

import (
	"context"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// ListLookups returns the selectable values of one category.
func (s *Usecase) ListLookups(ctx context.Context, category entity.LookupCategory) ([]entity.Lookup, error) {
	ctx, span := s.startSpan(ctx, "ListLookups")
	defer span.End()

	switch category {
	case entity.LookupRequestType, entity.LookupElementType, entity.LookupStatus, entity.LookupStage:
	default:
		return nil, goerror.NewInvalidInput(nil, "category", "unknown lookup category")
	}

	lookups, err := s.repoDB.Lookups(ctx, category)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list lookups", "error", err, "category", category)

		return nil, goerror.NewServer(err)
	}

	return lookups, nil
}

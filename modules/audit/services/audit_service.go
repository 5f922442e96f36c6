package services

import (
	"context"

	"github.com/crewcall-hq/crewcall/modules/audit/domain/entities/auditlog"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type AuditService struct {
	repo auditlog.Repository
}

func NewAuditService(repo auditlog.Repository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) List(ctx context.Context, params *auditlog.FindParams) ([]*auditlog.Entry, int64, error) {
	if _, err := composables.UseUser(ctx); err != nil {
		return nil, 0, serrors.ErrNotAuthenticated
	}
	type page struct {
		items []*auditlog.Entry
		total int64
	}
	out, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (page, error) {
		items, err := s.repo.List(txCtx, params)
		if err != nil {
			return page{}, err
		}
		total, err := s.repo.Count(txCtx, params)
		return page{items: items, total: total}, err
	})
	return out.items, out.total, err
}

// Record persists one entry. Called from event handlers with a background
// context, outside the transaction that produced the event.
func (s *AuditService) Record(ctx context.Context, entry *auditlog.Entry) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, entry)
	})
}

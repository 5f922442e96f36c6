package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/entities/staffrole"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/constants"
	"github.com/crewcall-hq/crewcall/pkg/eventbus"
	"github.com/crewcall-hq/crewcall/pkg/metrics"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

// CreateGigCommand carries everything needed to create a gig together with
// its initial participants and staff slots. At least one participant is
// required: the access gate resolves access through participant
// organizations, so a participant-less gig would be orphaned on arrival.
type CreateGigCommand struct {
	Title        string    `validate:"required"`
	Start        time.Time `validate:"required"`
	End          time.Time `validate:"required,gtfield=Start"`
	Timezone     string
	Status       gig.Status `validate:"required"`
	Tags         []string
	Notes        string
	AmountPaid   *money.Money
	ParentGigID  *uuid.UUID
	Participants []gig.DesiredParticipant `validate:"min=1"`
	StaffSlots   []gig.DesiredStaffSlot
}

// ReconcileCommand is a full desired-state description of a gig's
// participants and staff slots. ExpectedUpdatedAt is the optimistic
// concurrency token: the value of updated_at the caller last read.
//
// A nil StaffSlots or Participants slice still means "this is the full
// desired set", i.e. delete everything; only the per-slot Assignments slice
// has "empty means untouched" semantics.
type ReconcileCommand struct {
	GigID             uuid.UUID `validate:"required"`
	ExpectedUpdatedAt time.Time `validate:"required"`
	Participants      []gig.DesiredParticipant
	StaffSlots        []gig.DesiredStaffSlot
}

type GigService struct {
	repo      gig.Repository
	roles     staffrole.Repository
	orgs      organization.Repository
	users     user.Repository
	gate      *AccessGate
	publisher eventbus.EventBus
}

func NewGigService(
	repo gig.Repository,
	roles staffrole.Repository,
	orgs organization.Repository,
	users user.Repository,
	gate *AccessGate,
	publisher eventbus.EventBus,
) *GigService {
	return &GigService{
		repo:      repo,
		roles:     roles,
		orgs:      orgs,
		users:     users,
		gate:      gate,
		publisher: publisher,
	}
}

func (s *GigService) GetPaginated(ctx context.Context, params *gig.FindParams) ([]*gig.Gig, int64, error) {
	type page struct {
		items []*gig.Gig
		total int64
	}
	out, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (page, error) {
		items, total, err := s.repo.GetPaginated(txCtx, params)
		return page{items: items, total: total}, err
	})
	return out.items, out.total, err
}

func (s *GigService) GetByID(ctx context.Context, id uuid.UUID) (*gig.Gig, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*gig.Gig, error) {
		if err := s.gate.Authorize(txCtx, id, CapabilityView); err != nil {
			return nil, err
		}
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *GigService) Create(ctx context.Context, cmd *CreateGigCommand) (*gig.Gig, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if err := validateDesired(cmd.Participants, cmd.StaffSlots); err != nil {
		return nil, err
	}
	u, err := composables.UseUser(ctx)
	if err != nil {
		return nil, serrors.ErrNotAuthenticated
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*gig.Gig, error) {
		if err := s.checkReferences(txCtx, cmd.Participants, cmd.StaffSlots); err != nil {
			return nil, err
		}
		if err := s.authorizeCreate(txCtx, u.ID(), cmd.Participants); err != nil {
			return nil, err
		}

		opts := []gig.Option{
			gig.WithTimezone(cmd.Timezone),
			gig.WithTags(cmd.Tags),
			gig.WithNotes(cmd.Notes),
			gig.WithAmountPaid(cmd.AmountPaid),
		}
		if cmd.ParentGigID != nil {
			_, parentDepth, err := s.repo.ParentInfo(txCtx, *cmd.ParentGigID)
			if err != nil {
				return nil, err
			}
			opts = append(opts, gig.WithParent(*cmd.ParentGigID, parentDepth+1))
		}

		created, err := s.repo.Create(txCtx, gig.New(tenantID, cmd.Title, cmd.Start, cmd.End, cmd.Status, u.ID(), opts...))
		if err != nil {
			return nil, err
		}
		if err := s.applyParticipants(txCtx, tenantID, created.ID(), nil, cmd.Participants); err != nil {
			return nil, err
		}
		if err := s.applyStaffSlots(txCtx, tenantID, created.ID(), nil, cmd.StaffSlots); err != nil {
			return nil, err
		}

		result, err := s.repo.GetByID(txCtx, created.ID())
		if err != nil {
			return nil, err
		}
		s.publisher.Publish(gig.NewCreatedEvent(txCtx, result))
		return result, nil
	})
}

// Reconcile applies a full desired state to the gig's participant and staff
// slot collections atomically. The sequence inside the transaction is:
// claim the optimistic lock, validate every reference, then diff and apply
// level by level. Any failure rolls the whole thing back.
func (s *GigService) Reconcile(ctx context.Context, cmd *ReconcileCommand) (*gig.Gig, error) {
	result, err := s.reconcile(ctx, cmd)
	metrics.ReconcilesTotal.WithLabelValues(reconcileOutcome(err)).Inc()
	return result, err
}

func (s *GigService) reconcile(ctx context.Context, cmd *ReconcileCommand) (*gig.Gig, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if err := validateDesired(cmd.Participants, cmd.StaffSlots); err != nil {
		return nil, err
	}

	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*gig.Gig, error) {
		if err := s.gate.Authorize(txCtx, cmd.GigID, CapabilityManage); err != nil {
			return nil, err
		}
		u, err := composables.UseUser(txCtx)
		if err != nil {
			return nil, serrors.ErrNotAuthenticated
		}
		tenantID, err := composables.UseTenantID(txCtx)
		if err != nil {
			return nil, err
		}

		if _, err := s.repo.Claim(txCtx, cmd.GigID, cmd.ExpectedUpdatedAt, u.ID()); err != nil {
			return nil, err
		}
		if err := s.checkReferences(txCtx, cmd.Participants, cmd.StaffSlots); err != nil {
			return nil, err
		}

		persistedParticipants, err := s.repo.Participants(txCtx, cmd.GigID)
		if err != nil {
			return nil, err
		}
		if err := s.applyParticipants(txCtx, tenantID, cmd.GigID, persistedParticipants, cmd.Participants); err != nil {
			return nil, err
		}

		persistedSlots, err := s.repo.StaffSlots(txCtx, cmd.GigID)
		if err != nil {
			return nil, err
		}
		if err := s.applyStaffSlots(txCtx, tenantID, cmd.GigID, persistedSlots, cmd.StaffSlots); err != nil {
			return nil, err
		}

		result, err := s.repo.GetByID(txCtx, cmd.GigID)
		if err != nil {
			return nil, err
		}
		s.publisher.Publish(gig.NewReconciledEvent(txCtx, result))
		return result, nil
	})
}

func reconcileOutcome(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, serrors.ErrWriteConflict):
		return "write_conflict"
	case errors.Is(err, serrors.ErrValidation):
		return "validation_error"
	case errors.Is(err, serrors.ErrAccessDenied), errors.Is(err, serrors.ErrNotAuthenticated):
		return "denied"
	case errors.Is(err, serrors.ErrNotFound):
		return "not_found"
	}
	return "error"
}

func (s *GigService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		if err := s.gate.Authorize(txCtx, id, CapabilityManage); err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		s.publisher.Publish(gig.NewDeletedEvent(txCtx, id))
		return nil
	})
}

// authorizeCreate requires a manage-capable membership in at least one of
// the organizations the new gig will name as participants. There is no gig
// row yet, so the access gate cannot be consulted.
func (s *GigService) authorizeCreate(ctx context.Context, userID uuid.UUID, participants []gig.DesiredParticipant) error {
	orgIDs := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		orgIDs = append(orgIDs, p.OrganizationID)
	}
	memberships, err := s.orgs.MembershipsForUser(ctx, userID, orgIDs)
	if err != nil {
		return err
	}
	for _, m := range memberships {
		if m.Role().CanManageGigs() {
			return nil
		}
	}
	return serrors.ErrAccessDenied
}

// checkReferences verifies every organization and user the desired state
// points at before any write happens.
func (s *GigService) checkReferences(ctx context.Context, participants []gig.DesiredParticipant, slots []gig.DesiredStaffSlot) error {
	orgIDs := make(map[uuid.UUID]struct{})
	for _, p := range participants {
		orgIDs[p.OrganizationID] = struct{}{}
	}
	userIDs := make(map[uuid.UUID]struct{})
	for _, slot := range slots {
		orgIDs[slot.OrganizationID] = struct{}{}
		for _, a := range slot.Assignments {
			userIDs[a.UserID] = struct{}{}
		}
	}

	for id := range orgIDs {
		found, err := s.orgs.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("organization %s: %w", id, organization.ErrNotFound)
		}
	}
	for id := range userIDs {
		found, err := s.users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("user %s: %w", id, user.ErrNotFound)
		}
	}
	return nil
}

func (s *GigService) applyParticipants(ctx context.Context, tenantID, gigID uuid.UUID, persisted []gig.Participant, desired []gig.DesiredParticipant) error {
	ids := make([]uuid.UUID, 0, len(persisted))
	for _, p := range persisted {
		ids = append(ids, p.ID())
	}
	diff := gig.ComputeDiff(ids, desired, func(d gig.DesiredParticipant) gig.Ref { return d.Ref })

	if err := s.repo.DeleteParticipants(ctx, gigID, diff.ToDelete); err != nil {
		return err
	}
	for id, d := range diff.ToUpdate {
		p := gig.HydrateParticipant(id, tenantID, gigID, d.OrganizationID, d.Role, time.Time{})
		if err := s.repo.UpdateParticipant(ctx, p); err != nil {
			return err
		}
	}
	for _, d := range diff.ToInsert {
		if _, err := s.repo.InsertParticipant(ctx, gig.NewParticipant(tenantID, gigID, d.OrganizationID, d.Role)); err != nil {
			return err
		}
	}
	return nil
}

func (s *GigService) applyStaffSlots(ctx context.Context, tenantID, gigID uuid.UUID, persisted []gig.StaffSlot, desired []gig.DesiredStaffSlot) error {
	ids := make([]uuid.UUID, 0, len(persisted))
	for _, slot := range persisted {
		ids = append(ids, slot.ID())
	}
	diff := gig.ComputeDiff(ids, desired, func(d gig.DesiredStaffSlot) gig.Ref { return d.Ref })

	if err := s.repo.DeleteStaffSlots(ctx, gigID, diff.ToDelete); err != nil {
		return err
	}
	for id, d := range diff.ToUpdate {
		role, err := s.roles.GetOrCreate(ctx, d.RoleName)
		if err != nil {
			return err
		}
		// zero means "use the default", same as NewStaffSlot on the insert path
		count := d.RequiredCount
		if count == 0 {
			count = 1
		}
		slot := gig.HydrateStaffSlot(id, tenantID, gigID, d.OrganizationID, role.ID(), count, d.Notes, time.Time{}, time.Time{})
		if err := s.repo.UpdateStaffSlot(ctx, slot); err != nil {
			return err
		}
		if err := s.applyAssignments(ctx, tenantID, id, d.Assignments); err != nil {
			return err
		}
	}
	for _, d := range diff.ToInsert {
		role, err := s.roles.GetOrCreate(ctx, d.RoleName)
		if err != nil {
			return err
		}
		inserted, err := s.repo.InsertStaffSlot(ctx, gig.NewStaffSlot(tenantID, gigID, d.OrganizationID, role.ID(), d.RequiredCount, d.Notes))
		if err != nil {
			return err
		}
		if err := s.applyAssignments(ctx, tenantID, inserted.ID(), d.Assignments); err != nil {
			return err
		}
	}
	return nil
}

// applyAssignments diffs one slot's assignment rows. An empty desired slice
// is "no information": the slot's persisted assignments stay as they are.
func (s *GigService) applyAssignments(ctx context.Context, tenantID, slotID uuid.UUID, desired []gig.DesiredAssignment) error {
	if len(desired) == 0 {
		return nil
	}

	persisted, err := s.repo.Assignments(ctx, slotID)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(persisted))
	for _, a := range persisted {
		ids = append(ids, a.ID())
	}
	diff := gig.ComputeDiff(ids, desired, func(d gig.DesiredAssignment) gig.Ref { return d.Ref })

	if err := s.repo.DeleteAssignments(ctx, slotID, diff.ToDelete); err != nil {
		return err
	}
	for id, d := range diff.ToUpdate {
		status := d.Status
		if status == "" {
			status = gig.AssignmentRequested
		}
		a := gig.HydrateAssignment(id, tenantID, slotID, d.UserID, status, d.Rate, d.Fee, d.Notes, time.Time{}, time.Time{})
		if err := s.repo.UpdateAssignment(ctx, a); err != nil {
			return err
		}
	}
	for _, d := range diff.ToInsert {
		if _, err := s.repo.InsertAssignment(ctx, gig.NewAssignment(tenantID, slotID, d.UserID, d.Status, d.Rate, d.Fee, d.Notes)); err != nil {
			return err
		}
	}
	return nil
}

func validateCommand(cmd any) error {
	if err := constants.Validate.Struct(cmd); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return fmt.Errorf("%w: %w", serrors.ErrValidation, serrors.ProcessValidatorErrors(vErrs))
		}
		return fmt.Errorf("%w: %v", serrors.ErrValidation, err)
	}
	return nil
}

// validateDesired enforces the domain rules validator tags cannot express:
// vocabulary membership and per-item counts across the nested collections.
func validateDesired(participants []gig.DesiredParticipant, slots []gig.DesiredStaffSlot) error {
	for _, p := range participants {
		if !p.Role.IsValid() {
			return fmt.Errorf("%w: unknown participant role %q", serrors.ErrValidation, p.Role)
		}
	}
	for _, slot := range slots {
		if staffrole.Normalize(slot.RoleName) == "" {
			return fmt.Errorf("%w: staff slot role name is required", serrors.ErrValidation)
		}
		if slot.RequiredCount < 0 {
			return fmt.Errorf("%w: staff slot required count cannot be negative", serrors.ErrValidation)
		}
		for _, a := range slot.Assignments {
			if a.Status != "" && !a.Status.IsValid() {
				return fmt.Errorf("%w: unknown assignment status %q", serrors.ErrValidation, a.Status)
			}
		}
	}
	return nil
}

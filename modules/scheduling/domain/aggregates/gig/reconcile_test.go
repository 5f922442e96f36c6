package gig

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestComputeDiff_Partition(t *testing.T) {
	keep := uuid.New()
	drop1 := uuid.New()
	drop2 := uuid.New()
	stale := uuid.New()

	persisted := []uuid.UUID{keep, drop1, drop2}
	desired := []DesiredParticipant{
		{Ref: ExistingRef(keep), OrganizationID: uuid.New()},
		{Ref: NewRef(), OrganizationID: uuid.New()},
		{Ref: ExistingRef(stale), OrganizationID: uuid.New()},
	}

	diff := ComputeDiff(persisted, desired, func(d DesiredParticipant) Ref { return d.Ref })

	require.Len(t, diff.ToUpdate, 1)
	require.Contains(t, diff.ToUpdate, keep)
	// both the genuinely-new item and the stale reference become inserts
	require.Len(t, diff.ToInsert, 2)
	require.ElementsMatch(t, []uuid.UUID{drop1, drop2}, diff.ToDelete)
}

func TestComputeDiff_EmptyDesiredDeletesAll(t *testing.T) {
	persisted := []uuid.UUID{uuid.New(), uuid.New()}

	diff := ComputeDiff(persisted, nil, func(d DesiredParticipant) Ref { return d.Ref })

	require.Empty(t, diff.ToInsert)
	require.Empty(t, diff.ToUpdate)
	require.ElementsMatch(t, persisted, diff.ToDelete)
}

func TestComputeDiff_AllExistingIsPureUpdate(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	desired := []DesiredStaffSlot{
		{Ref: ExistingRef(a), RoleName: "audio tech"},
		{Ref: ExistingRef(b), RoleName: "stagehand"},
	}

	diff := ComputeDiff([]uuid.UUID{a, b}, desired, func(d DesiredStaffSlot) Ref { return d.Ref })

	require.Empty(t, diff.ToInsert)
	require.Empty(t, diff.ToDelete)
	require.Len(t, diff.ToUpdate, 2)
	require.Equal(t, "audio tech", diff.ToUpdate[a].RoleName)
	require.Equal(t, "stagehand", diff.ToUpdate[b].RoleName)
}

func TestComputeDiff_EmptyPersistedInsertsAll(t *testing.T) {
	desired := []DesiredAssignment{
		{Ref: NewRef(), UserID: uuid.New()},
		{Ref: NewRef(), UserID: uuid.New()},
	}

	diff := ComputeDiff(nil, desired, func(d DesiredAssignment) Ref { return d.Ref })

	require.Len(t, diff.ToInsert, 2)
	require.Empty(t, diff.ToUpdate)
	require.Empty(t, diff.ToDelete)
}

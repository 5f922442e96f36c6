package gig

import (
	"github.com/google/uuid"
)

// Diff is the outcome of matching a desired collection against the persisted
// row set of one nesting level. Applying it means deleting ToDelete, then
// updating every ToUpdate entry, then inserting every ToInsert entry.
type Diff[T any] struct {
	ToInsert []T
	ToUpdate map[uuid.UUID]T
	ToDelete []uuid.UUID
}

// ComputeDiff partitions desired items against the persisted id set:
//
//   - an item whose Ref targets a persisted id becomes an update;
//   - an item with a new Ref, or whose Ref targets an id that is no longer
//     persisted (a stale reference), becomes an insert;
//   - every persisted id not targeted by any desired item is deleted.
//
// An empty desired collection therefore deletes every persisted row; callers
// that want "empty means untouched" must skip the diff entirely.
func ComputeDiff[T any](persisted []uuid.UUID, desired []T, ref func(T) Ref) Diff[T] {
	persistedSet := make(map[uuid.UUID]struct{}, len(persisted))
	for _, id := range persisted {
		persistedSet[id] = struct{}{}
	}

	diff := Diff[T]{ToUpdate: make(map[uuid.UUID]T)}
	kept := make(map[uuid.UUID]struct{}, len(desired))
	for _, item := range desired {
		id, existing := ref(item).Existing()
		if !existing {
			diff.ToInsert = append(diff.ToInsert, item)
			continue
		}
		if _, found := persistedSet[id]; !found {
			diff.ToInsert = append(diff.ToInsert, item)
			continue
		}
		diff.ToUpdate[id] = item
		kept[id] = struct{}{}
	}

	for _, id := range persisted {
		if _, ok := kept[id]; !ok {
			diff.ToDelete = append(diff.ToDelete, id)
		}
	}
	return diff
}

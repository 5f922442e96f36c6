package kit

import (
	"time"

	"github.com/google/uuid"
)

// BoundaryPolicy selects the overlap test used for conflict detection.
type BoundaryPolicy string

const (
	// BoundaryInclusive flags gigs whose windows merely touch (one ending
	// exactly when another starts) as conflicting. This is the historical
	// behavior: kits need turnover time between gigs.
	BoundaryInclusive BoundaryPolicy = "inclusive"
	// BoundaryExclusive uses strict half-open window semantics; touching
	// boundaries do not conflict.
	BoundaryExclusive BoundaryPolicy = "exclusive"
)

func PolicyFromString(s string) BoundaryPolicy {
	if s == string(BoundaryExclusive) {
		return BoundaryExclusive
	}
	return BoundaryInclusive
}

// Overlaps reports whether the two time windows overlap under the given
// boundary policy. Under the inclusive policy windows that merely touch at
// an endpoint count as overlapping.
func Overlaps(policy BoundaryPolicy, aStart, aEnd, bStart, bEnd time.Time) bool {
	if policy == BoundaryExclusive {
		return aStart.Before(bEnd) && aEnd.After(bStart)
	}
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// GigUsage is one gig's claim on physical assets inside some time window:
// the union of the asset-id sets of every kit assigned to it.
type GigUsage struct {
	GigID    uuid.UUID
	Title    string
	Start    time.Time
	End      time.Time
	AssetIDs []uuid.UUID
}

// ConflictReport names one gig whose asset usage collides with the queried
// kit over the candidate window.
type ConflictReport struct {
	GigID               uuid.UUID
	Title               string
	Start               time.Time
	End                 time.Time
	ConflictingAssetIDs []uuid.UUID
}

// DetectConflicts intersects the kit's asset-id set with each overlapping
// gig's usage. An empty kit cannot collide. The order of the returned
// reports is unspecified.
func DetectConflicts(kitAssetIDs []uuid.UUID, usages []GigUsage) []ConflictReport {
	if len(kitAssetIDs) == 0 {
		return nil
	}
	kitSet := make(map[uuid.UUID]struct{}, len(kitAssetIDs))
	for _, id := range kitAssetIDs {
		kitSet[id] = struct{}{}
	}

	var reports []ConflictReport
	for _, usage := range usages {
		var shared []uuid.UUID
		seen := make(map[uuid.UUID]struct{}, len(usage.AssetIDs))
		for _, id := range usage.AssetIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if _, ok := kitSet[id]; ok {
				shared = append(shared, id)
			}
		}
		if len(shared) == 0 {
			continue
		}
		reports = append(reports, ConflictReport{
			GigID:               usage.GigID,
			Title:               usage.Title,
			Start:               usage.Start,
			End:                 usage.End,
			ConflictingAssetIDs: shared,
		})
	}
	return reports
}

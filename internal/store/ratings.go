package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"barhop/internal/kv"
)

// RatingsStore keeps a venue's cached rating and reviewCount in sync
// with its review set. The aggregate is always recomputed from the full
// set rather than adjusted incrementally; at the review volumes this
// system sees, a full rescan per write is cheap and cannot drift.
type RatingsStore struct {
	db kv.Store
}

// Recompute rereads every review of the venue and writes the mean
// rating (one decimal, half away from zero) and count back onto the
// venue record. If the venue record is gone, a concurrent delete won
// the race and the recompute is skipped without error.
//
// Two concurrent recomputes for the same venue are last-writer-wins on
// the cached aggregate only; the review records themselves are never
// affected.
func (s *RatingsStore) Recompute(ctx context.Context, venueID string) error {
	doc, err := s.db.Get(ctx, venueKey(venueID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return err
	}

	var venue Venue
	if err := json.Unmarshal(doc, &venue); err != nil {
		return fmt.Errorf("decode venue %s: %w", venueID, err)
	}

	entries, err := s.db.ScanPrefix(ctx, reviewScanPrefix(venueID))
	if err != nil {
		return err
	}

	var sum int
	for _, entry := range entries {
		var review Review
		if err := json.Unmarshal(entry.Value, &review); err != nil {
			return fmt.Errorf("decode review record %s: %w", entry.Key, err)
		}
		sum += review.Rating
	}

	venue.ReviewCount = len(entries)
	if len(entries) == 0 {
		venue.Rating = 0
	} else {
		avg := float64(sum) / float64(len(entries))
		venue.Rating = math.Round(avg*10) / 10
	}

	updated, err := json.Marshal(&venue)
	if err != nil {
		return fmt.Errorf("marshal venue %s: %w", venueID, err)
	}
	return s.db.Set(ctx, venueKey(venueID), updated)
}

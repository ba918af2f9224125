package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"barhop/internal/kv"
)

// Review is immutable once created. Author fields come from the
// verified identity, never from the request body.
type Review struct {
	ID                string    `json:"id"`
	VenueID           string    `json:"venueId"`
	AuthorID          string    `json:"authorId"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	AuthorAvatarURL   string    `json:"authorAvatarUrl"`
	Rating            int       `json:"rating"` // 1-5
	Comment           string    `json:"comment"`
	PhotoURL          string    `json:"photoUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type ReviewsStore struct {
	db kv.Store
}

// Create persists a new review under its parent venue's key prefix.
// There is no update or delete path for reviews.
func (s *ReviewsStore) Create(ctx context.Context, review *Review) error {
	doc, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("marshal review %s: %w", review.ID, err)
	}
	return s.db.Set(ctx, reviewKey(review.VenueID, review.ID), doc)
}

func (s *ReviewsStore) ListByVenue(ctx context.Context, venueID string) ([]Review, error) {
	entries, err := s.db.ScanPrefix(ctx, reviewScanPrefix(venueID))
	if err != nil {
		return nil, err
	}

	reviews := make([]Review, 0, len(entries))
	for _, entry := range entries {
		var review Review
		if err := json.Unmarshal(entry.Value, &review); err != nil {
			return nil, fmt.Errorf("decode review record %s: %w", entry.Key, err)
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

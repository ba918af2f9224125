package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barhop/internal/kv"
)

// Venue is a bar with a daily happy-hour window. Rating and ReviewCount
// are derived from the review set by the rating recompute; they are a
// cache, never written directly by clients.
type Venue struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Address        string     `json:"address"`
	Category       string     `json:"category"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	PhotoURL       string     `json:"photoUrl"`
	HappyHourStart string     `json:"happyHourStart"`
	HappyHourEnd   string     `json:"happyHourEnd"`
	Prices         Prices     `json:"prices"`
	Rating         float64    `json:"rating"`
	ReviewCount    int        `json:"reviewCount"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// Prices are the discounted drink prices during the happy-hour window.
type Prices struct {
	Beer     float64 `json:"beer"`
	Cocktail float64 `json:"cocktail"`
}

type VenuesStore struct {
	db kv.Store
}

func (s *VenuesStore) Create(ctx context.Context, venue *Venue) error {
	return s.put(ctx, venue)
}

// Update writes the full venue record back. The field whitelist for
// client updates is enforced at the handler layer; here an update is a
// plain overwrite of the document.
func (s *VenuesStore) Update(ctx context.Context, venue *Venue) error {
	return s.put(ctx, venue)
}

func (s *VenuesStore) put(ctx context.Context, venue *Venue) error {
	doc, err := json.Marshal(venue)
	if err != nil {
		return fmt.Errorf("marshal venue %s: %w", venue.ID, err)
	}
	return s.db.Set(ctx, venueKey(venue.ID), doc)
}

func (s *VenuesStore) GetByID(ctx context.Context, venueID string) (*Venue, error) {
	doc, err := s.db.Get(ctx, venueKey(venueID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var venue Venue
	if err := json.Unmarshal(doc, &venue); err != nil {
		return nil, fmt.Errorf("decode venue %s: %w", venueID, err)
	}
	return &venue, nil
}

func (s *VenuesStore) List(ctx context.Context) ([]Venue, error) {
	entries, err := s.db.ScanPrefix(ctx, venueKeyPrefix)
	if err != nil {
		return nil, err
	}

	venues := make([]Venue, 0, len(entries))
	for _, entry := range entries {
		var venue Venue
		if err := json.Unmarshal(entry.Value, &venue); err != nil {
			return nil, fmt.Errorf("decode venue record %s: %w", entry.Key, err)
		}
		venues = append(venues, venue)
	}
	return venues, nil
}

// Delete cascades over the venue's reviews before removing the venue
// record itself. There is no multi-key transaction underneath, so an
// interruption can leave the cascade half done; deleting reviews first
// means the leftover is a review-less venue rather than orphaned
// reviews behind a missing parent. The operation is retryable.
func (s *VenuesStore) Delete(ctx context.Context, venueID string) error {
	entries, err := s.db.ScanPrefix(ctx, reviewScanPrefix(venueID))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.db.Delete(ctx, entry.Key); err != nil {
			return fmt.Errorf("cascade delete %s: %w", entry.Key, err)
		}
	}
	return s.db.Delete(ctx, venueKey(venueID))
}

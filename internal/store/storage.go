// Package store maps the venue and review entities onto the key-value
// store. It owns the key-naming scheme and is the only package that
// builds keys, so the prefix-scan indexing stays in one place.
package store

import (
	"context"
	"errors"

	"barhop/internal/kv"
)

var ErrNotFound = errors.New("resource not found")

// Key scheme. The parent id comes before the child id and every segment
// is closed with ':' so a scan for venue "1" can never pick up reviews
// of venue "10".
const (
	venueKeyPrefix  = "venue:"
	reviewKeyPrefix = "review:"
)

func venueKey(venueID string) string {
	return venueKeyPrefix + venueID
}

func reviewKey(venueID, reviewID string) string {
	return reviewKeyPrefix + venueID + ":" + reviewID
}

func reviewScanPrefix(venueID string) string {
	return reviewKeyPrefix + venueID + ":"
}

type Storage struct {
	Venues interface {
		Create(ctx context.Context, venue *Venue) error
		GetByID(ctx context.Context, venueID string) (*Venue, error)
		List(ctx context.Context) ([]Venue, error)
		Update(ctx context.Context, venue *Venue) error
		Delete(ctx context.Context, venueID string) error
	}
	Reviews interface {
		Create(ctx context.Context, review *Review) error
		ListByVenue(ctx context.Context, venueID string) ([]Review, error)
	}
	Ratings interface {
		Recompute(ctx context.Context, venueID string) error
	}
}

func NewStorage(db kv.Store) Storage {
	return Storage{
		Venues:  &VenuesStore{db: db},
		Reviews: &ReviewsStore{db: db},
		Ratings: &RatingsStore{db: db},
	}
}

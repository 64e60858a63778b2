package calendar

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service manages calendar documents.
type Service interface {
	// Create writes the calendar document at its deterministic path.
	// Calling it again with the same id overwrites createdAt (last write wins).
	Create(ctx context.Context, ID string) error

	// Get returns the calendar or NotFound.
	Get(ctx context.Context, ID string) (*Calendar, error)
}

const (
	collection = "calendars"
	idLength   = 10
)

type service struct {
	db *firestore.Client
}

var _ Service = (*service)(nil)

func NewService(db *firestore.Client) Service {
	return &service{
		db: db,
	}
}

var NotFound = errors.New("calendar not found")

// NewID generates a short random calendar id. No collision detection is
// performed; the id space is large enough for family-scale cardinality.
func NewID() (string, error) {
	id, err := gonanoid.New(idLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate calendar id: %w", err)
	}
	return id, nil
}

func (s *service) Create(ctx context.Context, ID string) error {
	if ID == "" {
		return errors.New("calendar id is empty")
	}
	_, err := s.db.Collection(collection).Doc(ID).Set(ctx, Calendar{})
	if err != nil {
		return fmt.Errorf("failed to create calendar %s: %w", ID, err)
	}
	return nil
}

func (s *service) Get(ctx context.Context, ID string) (*Calendar, error) {
	doc, err := s.db.Collection(collection).Doc(ID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, NotFound
		}
		return nil, err
	}
	cal := Calendar{}
	if err := doc.DataTo(&cal); err != nil {
		return nil, err
	}
	cal.ID = doc.Ref.ID
	return &cal, nil
}

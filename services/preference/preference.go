// Package preference stores per-person defaults for a calendar, keyed by
// the display name. Used to prefill the entry form's dinner time.
package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/fatih/structs"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type UserPreference struct {
	CalendarID        string    `json:"calendarId" firestore:"calendarId" structs:"calendarId"`
	UserName          string    `json:"userName" firestore:"userName" structs:"userName"`
	DefaultDinnerTime *string   `json:"defaultDinnerTime,omitempty" firestore:"defaultDinnerTime" structs:"defaultDinnerTime,omitempty"`
	CreatedAt         time.Time `json:"createdAt" firestore:"createdAt" structs:"-"`
}

type Service interface {
	// Upsert merges the preference into its document, creating it on first
	// write. createdAt is set once and kept on later merges.
	Upsert(ctx context.Context, pref UserPreference) error

	// Get returns the preference for (calendarID, userName) or NotFound.
	Get(ctx context.Context, calendarID string, userName string) (*UserPreference, error)
}

const (
	calendarCollection   = "calendars"
	preferenceCollection = "preferences"
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

var NotFound = errors.New("preference not found")

func (s *service) doc(calendarID string, userName string) *firestore.DocumentRef {
	return s.db.Collection(calendarCollection).
		Doc(calendarID).
		Collection(preferenceCollection).
		Doc(userName)
}

func (s *service) Upsert(ctx context.Context, pref UserPreference) error {
	if pref.CalendarID == "" || pref.UserName == "" {
		return errors.New("calendar id and user name are required")
	}

	data := structs.Map(pref)
	ref := s.doc(pref.CalendarID, pref.UserName)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		data["createdAt"] = firestore.ServerTimestamp
	}

	if _, err := ref.Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to upsert preference for %s: %w", pref.UserName, err)
	}
	return nil
}

func (s *service) Get(ctx context.Context, calendarID string, userName string) (*UserPreference, error) {
	doc, err := s.doc(calendarID, userName).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, NotFound
		}
		return nil, err
	}
	pref := UserPreference{}
	if err := doc.DataTo(&pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

// Package export dumps a calendar's records to a Cloud Storage bucket as a
// JSON object, for backup and offline analysis.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"bangohan/clients/gcp"
	"bangohan/services/record"
)

type Service interface {
	// Export writes every record of the calendar to the bucket and returns
	// the object name.
	Export(ctx context.Context, calendarID string) (string, error)
}

var ErrNoBucket = errors.New("no export bucket configured")

const (
	calendarCollection = "calendars"
	recordCollection   = "records"
)

type service struct {
	db     *firestore.Client
	bucket string
}

var _ Service = (*service)(nil)

func NewService(db *firestore.Client, bucket string) Service {
	return &service{
		db:     db,
		bucket: bucket,
	}
}

type dump struct {
	CalendarID string                `json:"calendarId"`
	ExportedAt time.Time             `json:"exportedAt"`
	Records    []record.DinnerRecord `json:"records"`
}

func (s *service) Export(ctx context.Context, calendarID string) (string, error) {
	if s.bucket == "" {
		return "", ErrNoBucket
	}

	iter := s.db.Collection(calendarCollection).
		Doc(calendarID).
		Collection(recordCollection).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	records := make([]record.DinnerRecord, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return "", err
		}
		rec := record.DinnerRecord{}
		if err := doc.DataTo(&rec); err != nil {
			return "", fmt.Errorf("failed to convert doc %s: %w", doc.Ref.ID, err)
		}
		rec.ID = doc.Ref.ID
		rec.CalendarID = calendarID
		records = append(records, rec)
	}

	now := time.Now().UTC()
	payload := dump{
		CalendarID: calendarID,
		ExportedAt: now,
		Records:    records,
	}
	buf := bytes.Buffer{}
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("exports/%s/%s.json", calendarID, now.Format("20060102T150405Z"))
	if err := gcp.UploadObject(ctx, s.bucket, objectName, &buf); err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}
	return objectName, nil
}

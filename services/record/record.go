package record

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
)

// Service is the data access layer over the dinner record documents.
type Service interface {
	// Add appends a new record with a store-generated id. It never merges
	// with existing records for the same date and name.
	Add(ctx context.Context, calendarID string, input AddInput) (*DinnerRecord, error)

	// Delete removes a record by id. A missing id surfaces as the store's
	// error, unchanged.
	Delete(ctx context.Context, calendarID string, recordID string) error

	// GetByDate returns all records for one date, newest first.
	GetByDate(ctx context.Context, calendarID string, date string) ([]DinnerRecord, error)

	// GetMonth returns all records whose date falls in the given
	// "YYYY-MM" month, ordered by date then newest first.
	GetMonth(ctx context.Context, calendarID string, yearMonth string) ([]DinnerRecord, error)

	// SubscribeMonth invokes fn with the full current month result set on
	// every underlying change. The returned CancelFunc stops the feed.
	SubscribeMonth(ctx context.Context, calendarID string, yearMonth string, fn SnapshotFunc) (CancelFunc, error)

	// Toggle flips the current user's needs-dinner answer for a date:
	// if the current answer needs dinner the backing record is deleted,
	// otherwise a needs-dinner record is appended. Reports whether a
	// record was added.
	Toggle(ctx context.Context, calendarID string, date string, name string) (bool, error)
}

const (
	calendarCollection = "calendars"
	recordCollection   = "records"
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

func (s *service) records(calendarID string) *firestore.CollectionRef {
	return s.db.Collection(calendarCollection).Doc(calendarID).Collection(recordCollection)
}

func (s *service) Add(ctx context.Context, calendarID string, input AddInput) (*DinnerRecord, error) {
	if err := ValidDate(input.Date); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.New("name is empty")
	}
	if input.DinnerTime != nil {
		if err := ValidDinnerTime(*input.DinnerTime); err != nil {
			return nil, err
		}
	}

	rec := DinnerRecord{
		Date:        input.Date,
		Name:        input.Name,
		NeedsDinner: input.NeedsDinner,
		DinnerTime:  input.DinnerTime,
	}
	ref := s.records(calendarID).NewDoc()
	if _, err := ref.Set(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to add dinner record: %w", err)
	}
	// createdAt is assigned store-side; read the document back so the
	// caller sees the resolved timestamp instead of a zero time.
	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back dinner record %s: %w", ref.ID, err)
	}
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to convert doc %s: %w", ref.ID, err)
	}
	rec.ID = ref.ID
	rec.CalendarID = calendarID
	return &rec, nil
}

func (s *service) Delete(ctx context.Context, calendarID string, recordID string) error {
	if _, err := s.records(calendarID).Doc(recordID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete dinner record %s: %w", recordID, err)
	}
	return nil
}

func (s *service) GetByDate(ctx context.Context, calendarID string, date string) ([]DinnerRecord, error) {
	if err := ValidDate(date); err != nil {
		return nil, err
	}
	q := s.records(calendarID).
		Where("date", "==", date).
		OrderBy("createdAt", firestore.Desc)
	return s.getAll(ctx, calendarID, q)
}

func (s *service) GetMonth(ctx context.Context, calendarID string, yearMonth string) ([]DinnerRecord, error) {
	if err := ValidYearMonth(yearMonth); err != nil {
		return nil, err
	}
	return s.getAll(ctx, calendarID, s.monthQuery(calendarID, yearMonth))
}

func (s *service) monthQuery(calendarID string, yearMonth string) firestore.Query {
	start, end := MonthRange(yearMonth)
	return s.records(calendarID).
		Where("date", ">=", start).
		Where("date", "<=", end).
		OrderBy("date", firestore.Asc).
		OrderBy("createdAt", firestore.Desc)
}

func (s *service) getAll(ctx context.Context, calendarID string, q firestore.Query) ([]DinnerRecord, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()
	records := make([]DinnerRecord, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := DinnerRecord{}
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("failed to convert doc %s: %w", doc.Ref.ID, err)
		}
		rec.ID = doc.Ref.ID
		rec.CalendarID = calendarID
		records = append(records, rec)
	}
	return records, nil
}

func (s *service) SubscribeMonth(ctx context.Context, calendarID string, yearMonth string, fn SnapshotFunc) (CancelFunc, error) {
	if err := ValidYearMonth(yearMonth); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	snaps := s.monthQuery(calendarID, yearMonth).Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Error().
						Err(err).
						Str("calendarId", calendarID).
						Str("yearMonth", yearMonth).
						Msg("month subscription stopped")
				}
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				log.Error().
					Err(err).
					Str("calendarId", calendarID).
					Msg("failed to read month snapshot")
				continue
			}
			records := make([]DinnerRecord, 0, len(docs))
			for _, doc := range docs {
				rec := DinnerRecord{}
				if err := doc.DataTo(&rec); err != nil {
					log.Error().
						Err(err).
						Str("docId", doc.Ref.ID).
						Msg("skipping malformed dinner record")
					continue
				}
				rec.ID = doc.Ref.ID
				rec.CalendarID = calendarID
				records = append(records, rec)
			}
			fn(records)
		}
	}()

	return CancelFunc(cancel), nil
}

func (s *service) Toggle(ctx context.Context, calendarID string, date string, name string) (bool, error) {
	if name == "" {
		return false, errors.New("name is empty")
	}
	records, err := s.GetByDate(ctx, calendarID, date)
	if err != nil {
		return false, err
	}
	current := LatestFor(records, date, name)
	if current != nil && current.NeedsDinner {
		return false, s.Delete(ctx, calendarID, current.ID)
	}
	if _, err := s.Add(ctx, calendarID, AddInput{
		Date:        date,
		Name:        name,
		NeedsDinner: true,
	}); err != nil {
		return false, err
	}
	return true, nil
}

package record

import "time"

// DinnerRecord is one person's stated dinner-needed status for one date.
// Records are append/delete only; changing an answer appends a new record
// and the projection in projection.go decides which one is current.
type DinnerRecord struct {
	ID          string    `json:"id" firestore:"-"`
	CalendarID  string    `json:"calendarId" firestore:"-"`
	Date        string    `json:"date" firestore:"date"`
	Name        string    `json:"name" firestore:"name"`
	NeedsDinner bool      `json:"needsDinner" firestore:"needsDinner"`
	DinnerTime  *string   `json:"dinnerTime,omitempty" firestore:"dinnerTime,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// AddInput is the caller-supplied part of a new record.
type AddInput struct {
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	NeedsDinner bool    `json:"needsDinner"`
	DinnerTime  *string `json:"dinnerTime,omitempty"`
}

// SnapshotFunc receives the full current result set of a subscribed month
// query on every underlying change.
type SnapshotFunc func(records []DinnerRecord)

// CancelFunc tears down a subscription. Callers must invoke it when the
// viewed month or calendar changes and on teardown.
type CancelFunc func()

package calendar

import "time"

// Calendar is a shareable namespace holding all dinner records for one
// family. The id doubles as the routing key and the document key.
type Calendar struct {
	ID        string    `json:"id" firestore:"-"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bangohan/services/record"
)

// RecordSource is the slice of the record service the hub needs.
type RecordSource interface {
	SubscribeMonth(ctx context.Context, calendarID string, yearMonth string, fn record.SnapshotFunc) (record.CancelFunc, error)
}

// Snapshot is the message pushed to clients: the complete current result
// set of the watched month. Clients replace their state wholesale.
type Snapshot struct {
	Type       string                `json:"type"`
	CalendarID string                `json:"calendarId"`
	YearMonth  string                `json:"yearMonth"`
	Records    []record.DinnerRecord `json:"records"`
}

type subKey struct {
	calendarID string
	yearMonth  string
}

// feed is one live store subscription shared by every client watching the
// same (calendar, month) pair.
type feed struct {
	clients map[string]*client
	cancel  record.CancelFunc
	// last is replayed to clients that join after the first emission.
	last []byte
}

type Hub struct {
	mu     sync.Mutex
	source RecordSource
	feeds  map[subKey]*feed
}

func NewHub(source RecordSource) *Hub {
	return &Hub{
		source: source,
		feeds:  make(map[subKey]*feed),
	}
}

// Serve upgrades the request and attaches the client to the month feed
// named by the calendarId and month query parameters.
func (h *Hub) Serve(c *gin.Context) {
	calendarID := c.Query("calendarId")
	yearMonth := c.Query("month")
	if calendarID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calendarId is required"})
		return
	}
	if err := record.ValidYearMonth(yearMonth); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.With("error", err.Error()).Error("failed to upgrade websocket")
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 16),
	}
	key := subKey{calendarID: calendarID, yearMonth: yearMonth}
	if err := h.register(key, cl); err != nil {
		slog.With("error", err.Error()).Error("failed to start month feed")
		_ = conn.Close()
		return
	}

	go cl.writePump()
	go cl.readPump(h, key)
}

func (h *Hub) register(key subKey, cl *client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.feeds[key]
	if !ok {
		f = &feed{clients: make(map[string]*client)}
		cancel, err := h.source.SubscribeMonth(context.Background(), key.calendarID, key.yearMonth, func(records []record.DinnerRecord) {
			h.broadcast(key, records)
		})
		if err != nil {
			return err
		}
		f.cancel = cancel
		h.feeds[key] = f
	}
	f.clients[cl.id] = cl
	if f.last != nil {
		select {
		case cl.send <- f.last:
		default:
		}
	}
	return nil
}

// unregister detaches the client; the last client out cancels the store
// subscription so no stale callback outlives its viewers.
func (h *Hub) unregister(key subKey, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.feeds[key]
	if !ok {
		return
	}
	if _, ok := f.clients[cl.id]; !ok {
		return
	}
	delete(f.clients, cl.id)
	close(cl.send)
	if len(f.clients) == 0 {
		f.cancel()
		delete(h.feeds, key)
	}
}

func (h *Hub) broadcast(key subKey, records []record.DinnerRecord) {
	msg, err := json.Marshal(Snapshot{
		Type:       "snapshot",
		CalendarID: key.calendarID,
		YearMonth:  key.yearMonth,
		Records:    records,
	})
	if err != nil {
		slog.With("error", err.Error()).Error("failed to marshal snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	f, ok := h.feeds[key]
	if !ok {
		return
	}
	f.last = msg
	for _, cl := range f.clients {
		select {
		case cl.send <- msg:
		default:
			slog.Warn("dropping snapshot for slow client", "clientId", cl.id)
		}
	}
}

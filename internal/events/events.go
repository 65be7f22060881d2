package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventBookingConfirmed    = "booking_confirmed"
	EventMembershipActivated = "membership_activated"
)

// BookingConfirmedPayload is the confirmation snapshot carried to event
// consumers once a booking reaches its terminal status.
type BookingConfirmedPayload struct {
	BookingID     int64     `json:"booking_id"`
	OfficeID      int64     `json:"office_id"`
	BranchID      int64     `json:"branch_id"`
	RenterEmail   string    `json:"renter_email"`
	SettledAmount float64   `json:"settled_amount"`
	Date          time.Time `json:"date"`
}

// MembershipActivatedPayload mirrors BookingConfirmedPayload for the
// membership-acquisition branch.
type MembershipActivatedPayload struct {
	AcquisitionID int64   `json:"acquisition_id"`
	MembershipID  int64   `json:"membership_id"`
	BuyerEmail    string  `json:"buyer_email"`
	SettledAmount float64 `json:"settled_amount"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        string
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event. Publication is
// fire-and-forget: subscriber errors never reach the publisher.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}

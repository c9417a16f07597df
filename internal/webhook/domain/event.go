package domain

import (
	"encoding/json"
	"strings"
)

// Category groups event types by the kind of object they carry.
type Category string

const (
	CategoryPayment      Category = "payment"
	CategoryInvoice      Category = "invoice"
	CategorySubscription Category = "subscription"
	CategoryCheckout     Category = "checkout"
	CategoryUnknown      Category = "unknown"
)

// Event is a verified webhook event. The concrete type is one of
// *PaymentEvent, *InvoiceEvent, *SubscriptionEvent, *CheckoutEvent or
// *UnknownEvent, so callers branch with a type switch:
//
//	switch e := event.(type) {
//	case *domain.PaymentEvent:
//	    ...
//	case *domain.UnknownEvent:
//	    ...
//	}
type Event interface {
	EventID() string
	EventType() string
	Category() Category
	isEvent()
}

// EventMeta holds the fields shared by every event.
type EventMeta struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`
}

// EventID returns the provider's event identifier.
func (m EventMeta) EventID() string { return m.ID }

// EventType returns the dotted event type, e.g. "invoice.paid".
func (m EventMeta) EventType() string { return m.Type }

func (EventMeta) isEvent() {}

// PaymentObject is the payment intent or charge carried by a PaymentEvent.
type PaymentObject struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Customer string `json:"customer"`
}

// PaymentEvent covers payment_intent.* and charge.* events.
type PaymentEvent struct {
	EventMeta
	Object PaymentObject
}

// Category returns CategoryPayment.
func (*PaymentEvent) Category() Category { return CategoryPayment }

// InvoiceObject is the invoice carried by an InvoiceEvent.
type InvoiceObject struct {
	ID           string `json:"id"`
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
	AmountDue    int64  `json:"amount_due"`
	AmountPaid   int64  `json:"amount_paid"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// InvoiceEvent covers invoice.* events.
type InvoiceEvent struct {
	EventMeta
	Object InvoiceObject
}

// Category returns CategoryInvoice.
func (*InvoiceEvent) Category() Category { return CategoryInvoice }

// SubscriptionObject is the subscription carried by a SubscriptionEvent.
type SubscriptionObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Status            string `json:"status"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
}

// SubscriptionEvent covers customer.subscription.* events.
type SubscriptionEvent struct {
	EventMeta
	Object SubscriptionObject
}

// Category returns CategorySubscription.
func (*SubscriptionEvent) Category() Category { return CategorySubscription }

// CheckoutObject is the checkout session carried by a CheckoutEvent.
type CheckoutObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Subscription      string `json:"subscription"`
	Mode              string `json:"mode"`
	PaymentStatus     string `json:"payment_status"`
	ClientReferenceID string `json:"client_reference_id"`
}

// CheckoutEvent covers checkout.session.* events.
type CheckoutEvent struct {
	EventMeta
	Object CheckoutObject
}

// Category returns CategoryCheckout.
func (*CheckoutEvent) Category() Category { return CategoryCheckout }

// UnknownEvent is any event type without a dedicated representation. The
// data object is kept undecoded.
type UnknownEvent struct {
	EventMeta
	Object json.RawMessage
}

// Category returns CategoryUnknown.
func (*UnknownEvent) Category() Category { return CategoryUnknown }

type rawEvent struct {
	EventMeta
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CategoryForType maps a dotted event type to its category.
func CategoryForType(eventType string) Category {
	switch {
	case strings.HasPrefix(eventType, "payment_intent."), strings.HasPrefix(eventType, "charge."):
		return CategoryPayment
	case strings.HasPrefix(eventType, "invoice."):
		return CategoryInvoice
	case strings.HasPrefix(eventType, "customer.subscription."):
		return CategorySubscription
	case strings.HasPrefix(eventType, "checkout.session."):
		return CategoryCheckout
	default:
		return CategoryUnknown
	}
}

// ParseEvent decodes a verified payload into its typed event.
//
// The payload must be a JSON object with non-empty "id" and "type" fields.
// A missing data object is accepted and leaves the typed object zero-valued.
func ParseEvent(payload []byte) (Event, error) {
	var raw rawEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, ErrMalformedEvent
	}
	if raw.ID == "" || raw.Type == "" {
		return nil, ErrMalformedEvent
	}

	object := raw.Data.Object
	if len(object) == 0 || string(object) == "null" {
		object = nil
	}

	var (
		event  Event
		target any
	)
	switch CategoryForType(raw.Type) {
	case CategoryPayment:
		e := &PaymentEvent{EventMeta: raw.EventMeta}
		event, target = e, &e.Object
	case CategoryInvoice:
		e := &InvoiceEvent{EventMeta: raw.EventMeta}
		event, target = e, &e.Object
	case CategorySubscription:
		e := &SubscriptionEvent{EventMeta: raw.EventMeta}
		event, target = e, &e.Object
	case CategoryCheckout:
		e := &CheckoutEvent{EventMeta: raw.EventMeta}
		event, target = e, &e.Object
	default:
		return &UnknownEvent{EventMeta: raw.EventMeta, Object: object}, nil
	}

	if object != nil {
		if err := json.Unmarshal(object, target); err != nil {
			return nil, ErrMalformedEvent
		}
	}
	return event, nil
}

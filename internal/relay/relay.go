// Package relay delivers formatted order messages to the shop owner.
package relay

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Message is an order ready for delivery.
type Message struct {
	// Reference identifies one submission.
	Reference string
	// Name is the customer name.
	Name string
	// Contact is how the shop reaches the customer (the phone number).
	Contact string
	// Body is the human-readable order text.
	Body string
}

// Relay sends a Message. Implementations do not retry.
type Relay interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var messagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "relay_messages_total",
		Help: "Total number of order messages handed to a relay, by outcome",
	},
	[]string{"driver", "outcome"},
)

// ErrEmptyMessage is returned for a message with no body.
var ErrEmptyMessage = errors.New("relay: empty message body")

type counted struct {
	Relay
}

// Instrument counts every Send of r in relay_messages_total.
func Instrument(r Relay) Relay {
	if _, ok := r.(counted); ok {
		return r
	}
	return counted{Relay: r}
}

func (c counted) Send(ctx context.Context, msg Message) error {
	err := c.Relay.Send(ctx, msg)
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	messagesTotal.WithLabelValues(c.Relay.Name(), outcome).Inc()
	return err
}

package notification

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cowork/config"
	"cowork/infras/kafka"
	"cowork/infras/otel"
	"cowork/shared/constant"

	"github.com/rs/zerolog/log"
)

// ReservationCreatedEvent is published once per admitted reservation. Consumers
// fan it out to the requester and the office host; delivery is at-most-once.
type ReservationCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	OfficeID      string `json:"office_id"`
	OfficeTitle   string `json:"office_title"`
	RequesterID   string `json:"requester_id"`
	HostID        string `json:"host_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Days          int    `json:"days"`
	Price         int64  `json:"price"`
}

type Notifier interface {
	ReservationCreated(ctx context.Context, event ReservationCreatedEvent) error
}

type notifierImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Notifier {
	return &notifierImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

// ReservationCreated implements Notifier. Messages are keyed by office so
// per-office ordering is preserved for consumers.
func (n *notifierImpl) ReservationCreated(ctx context.Context, event ReservationCreatedEvent) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".ReservationCreated")
	defer scope.End()
	defer scope.TraceIfError(err)

	topic := n.cfg.Kafka.Topics.ReservationCreated

	message := kafka.Message{
		Key:   event.OfficeID,
		Value: event,
	}

	if err = n.client.SendMessages(ctx, topic, message); err != nil {
		log.Error().Err(err).Str("topic", topic).Str("reservation_id", event.ReservationID).Msg("failed to publish reservation created event")

		return fmt.Errorf("failed to publish reservation created event: %w", err)
	}

	log.Info().Str("topic", topic).Str("reservation_id", event.ReservationID).Msg("published reservation created event")

	return nil
}

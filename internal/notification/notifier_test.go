package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cowork/config"
	"cowork/infras/kafka"
	kafkaMocks "cowork/infras/kafka/mocks"
	"cowork/infras/otel/mocks"
	"cowork/internal/notification"
)

func TestNotifier_ReservationCreated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topics.ReservationCreated = "reservations.created"

	notifier := notification.New(mockClient, cfg, mockOtel)

	event := notification.ReservationCreatedEvent{
		ReservationID: "reservation-id",
		OfficeID:      "office-id",
		OfficeTitle:   "Downtown Loft",
		RequesterID:   "requester-id",
		HostID:        "host-id",
		StartDate:     "2026-03-10",
		EndDate:       "2026-03-17",
		Days:          8,
		Price:         8000,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "publishes keyed by office",
			setupMock: func() {
				mockClient.EXPECT().
					SendMessages(gomock.Any(), "reservations.created", gomock.Cond(func(message kafka.Message) bool {
						return message.Key == event.OfficeID
					})).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "broker error",
			setupMock: func() {
				mockClient.EXPECT().
					SendMessages(gomock.Any(), "reservations.created", gomock.Any()).
					Return(errors.New("broker unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := notifier.ReservationCreated(context.Background(), event)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

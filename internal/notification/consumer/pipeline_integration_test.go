//go:build integration

package consumer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adr1ancosmin/padel-pal/internal/booking/client"
	bookingmodels "github.com/adr1ancosmin/padel-pal/internal/booking/models"
	"github.com/adr1ancosmin/padel-pal/internal/booking/publisher"
	bookingrepo "github.com/adr1ancosmin/padel-pal/internal/booking/repository"
	bookingsvc "github.com/adr1ancosmin/padel-pal/internal/booking/service"
	"github.com/adr1ancosmin/padel-pal/internal/notification/consumer"
	"github.com/adr1ancosmin/padel-pal/internal/notification/models"
	notificationrepo "github.com/adr1ancosmin/padel-pal/internal/notification/repository"
	notificationsvc "github.com/adr1ancosmin/padel-pal/internal/notification/service"
	"github.com/adr1ancosmin/padel-pal/internal/testenv"
	"github.com/adr1ancosmin/padel-pal/pkg/rabbitmq"
)

type everythingExists struct{}

func (everythingExists) Exists(ctx context.Context, kind client.Kind, id int64) bool { return true }

func TestBookingCreatesNotification(t *testing.T) {
	db := testenv.Postgres(t, &bookingmodels.Booking{}, &models.Notification{})
	url := testenv.RabbitMQ(t)

	mqPub, err := rabbitmq.NewPublisher(url)
	require.NoError(t, err)
	defer mqPub.Close()

	mqCons, err := rabbitmq.NewConsumer(url, "it-notification", 4)
	require.NoError(t, err)
	defer mqCons.Close()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	msgs, err := mqCons.Consume(ctx)
	require.NoError(t, err)

	notifications := notificationrepo.NewNotificationRepository(db)
	ec := consumer.NewEventConsumer(notificationsvc.NewNotificationService(notifications), nil, consumer.Config{Workers: 2})
	done := make(chan struct{})
	go func() {
		ec.Run(ctx, msgs)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	bookings := bookingsvc.NewBookingService(
		bookingrepo.NewBookingRepository(db),
		everythingExists{},
		publisher.NewEventPublisher(mqPub, 5*time.Second),
	)

	booking, err := bookings.CreateBooking(t.Context(), 7, 3)
	require.NoError(t, err)

	var got []models.Notification
	require.Eventually(t, func() bool {
		got, err = notifications.FindByBookingID(t.Context(), booking.ID)
		return err == nil && len(got) == 1
	}, 10*time.Second, 100*time.Millisecond)

	n := got[0]
	assert.Equal(t, int64(7), n.UserID)
	assert.Equal(t, models.StatusSent, n.Status)
	assert.Equal(t, models.TypeBookingConfirmation, n.NotificationType)
	assert.Contains(t, n.Message, "Court 3")
}

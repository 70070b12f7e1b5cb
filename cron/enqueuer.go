package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"glambook/config"
	"glambook/models"

	"github.com/hibiken/asynq"
)

// reminderHour is the hour of day a day-before reminder goes out.
const reminderHour = 10

// Enqueuer puts booking reminder tasks on the worker queue once a
// booking is verified. It satisfies the engine's ReminderScheduler port.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer connects a task client to the worker queue Redis.
func NewEnqueuer() *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerQueueDB,
	})}
}

// Close releases the underlying queue client.
func (e *Enqueuer) Close() error { return e.client.Close() }

// ScheduleReminder queues a reminder for the morning before the
// appointment. Bookings made less than a day ahead get no reminder.
func (e *Enqueuer) ScheduleReminder(ctx context.Context, bookingID string, intent *models.BookingIntent) error {
	when, err := time.Parse("2006-01-02", intent.Date)
	if err != nil {
		return fmt.Errorf("reminder date %q: %w", intent.Date, err)
	}
	remindAt := when.AddDate(0, 0, -1).Add(reminderHour * time.Hour)
	if time.Until(remindAt) < time.Hour {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		BookingID: bookingID,
		Phone:     intent.Phone,
		Name:      intent.Name,
		Service:   intent.Service,
		Date:      intent.Date,
	})
	if err != nil {
		return fmt.Errorf("reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingReminder, payload)
	if _, err := e.client.EnqueueContext(ctx, task, asynq.ProcessAt(remindAt), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}

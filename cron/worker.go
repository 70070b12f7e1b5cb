package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"glambook/config"
	"glambook/database/repository/booking"
	"glambook/models"
	"glambook/services/otp"
	"glambook/services/session"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	TypeSessionSweep    = "session:sweep"
	TypeBookingReminder = "booking:reminder"
)

const sweepInterval = 15 * time.Minute

// ReminderPayload is the enqueued booking reminder task body.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	Service   string `json:"service"`
	Date      string `json:"date"`
}

// InitAgentWorker runs the async worker in background: it sweeps idle
// sessions and delivers booking reminders.
func InitAgentWorker(store *session.RedisStore, bookings booking.Repository, sender otp.Sender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionSweep, handleSessionSweep(store))
	mux.HandleFunc(TypeBookingReminder, handleBookingReminder(bookings, sender))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Periodically enqueue the sweep task.
	go scheduleSweeps(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[AgentWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AgentWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AgentWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func scheduleSweeps(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeSessionSweep, nil)
		if _, err := client.Enqueue(task, asynq.MaxRetry(1)); err != nil {
			log.Printf("[AgentWorker] ⚠️ Failed to enqueue session sweep: %v", err)
		}
	}
}

func handleSessionSweep(store *session.RedisStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		maxIdle := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
		removed, err := store.SweepIdle(ctx, maxIdle)
		if err != nil {
			log.Printf("[SweepHandler] ❌ Session sweep failed: %v", err)
			return err
		}
		if removed > 0 {
			log.Printf("[SweepHandler] 🧹 Removed %d idle sessions", removed)
		}
		return nil
	}
}

func handleBookingReminder(bookings booking.Repository, sender otp.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		// Skip reminders for bookings cancelled after enqueue.
		b, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] ⚠️ Booking %s not found, skipping reminder", p.BookingID)
			return nil
		}
		if b.Status != models.BookingStatusConfirmed {
			return nil
		}

		msg := "Hi " + p.Name + ", a reminder for your " + p.Service + " appointment on " + p.Date + ". See you soon!"
		if err := sender.Send(ctx, p.Phone, msg); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[AgentWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

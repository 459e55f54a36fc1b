package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"salonflow/config"
	bookingRepo "salonflow/database/repository/booking"
	holdRepo "salonflow/database/repository/hold"
	"salonflow/models"
	"salonflow/services/sms"
	"salonflow/services/tasks"
	"salonflow/utils"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(gateway sms.Gateway, bookings bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(gateway, bookings))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(gateway sms.Gateway, bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		// The booking may have been cancelled since the reminder was queued.
		booking, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			return err
		}
		if booking == nil || booking.Status == models.BookingStatusCancelled {
			log.Printf("[ReminderHandler] skipping reminder for booking %s", p.BookingID)
			return nil
		}

		message := fmt.Sprintf("Reminder: your appointment is on %s at %s.", p.Date, p.Time)
		if err := gateway.Send(ctx, p.Phone, message); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

// InitHoldSweep periodically flips past-TTL holds to EXPIRED. Cleanup and
// metrics only: availability checks evaluate expiry lazily and never depend
// on this sweep having run.
func InitHoldSweep(holds holdRepo.HoldRepository, clock utils.Clock, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			n, err := holds.MarkExpiredDue(context.Background(), clock.Now())
			if err != nil {
				log.Printf("[HoldSweep] sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[HoldSweep] expired %d stale holds", n)
			}
		}
	}()
}

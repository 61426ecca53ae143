package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"flavortable/config"
	bookingRepo "flavortable/database/repository/booking"
	"flavortable/models"
	"flavortable/services/notification"
	"flavortable/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(notifSvc notification.Service, repo bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
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
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(notifSvc, repo))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.Service, repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		// Re-read the record: a booking cancelled after scheduling gets no
		// reminder.
		booking, err := repo.GetByID(ctx, p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] Booking %s not found, skipping: %v", p.BookingID, err)
			return nil
		}
		if booking.Status != models.BookingStatusConfirmed {
			log.Printf("[ReminderHandler] Booking %s is %s, skipping reminder", booking.ID, booking.Status)
			return nil
		}

		log.Printf("[ReminderHandler] Sending reminder for booking %s at %s %s", booking.ID, booking.Date, booking.Time)
		if err := notifSvc.SendReminder(ctx, *booking); err != nil {
			log.Printf("[ReminderHandler] Failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

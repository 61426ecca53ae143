// File: services/notification/email.go
package notification

import (
	"context"
	"fmt"

	appconfig "flavortable/config"
	"flavortable/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESNotificationService emails the configured front-desk address via SES.
type SESNotificationService struct {
	client         *ses.Client
	from           string
	to             string
	restaurantName string
}

func NewSESNotificationService(ctx context.Context) (*SESNotificationService, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(appconfig.AppConfig.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &SESNotificationService{
		client:         ses.NewFromConfig(cfg),
		from:           appconfig.AppConfig.NotifyEmailFrom,
		to:             appconfig.AppConfig.NotifyEmailTo,
		restaurantName: appconfig.AppConfig.RestaurantName,
	}, nil
}

func (s *SESNotificationService) SendBookingConfirmation(ctx context.Context, booking models.Booking) error {
	subject := fmt.Sprintf("[%s] New booking: %s %s", s.restaurantName, booking.Date, booking.Time)
	body := fmt.Sprintf(
		"New reservation confirmed.\n\nGuests: %d\nDate: %s\nTime: %s\nSeating: %s\nCuisine: %s\nSpecial requests: %s\nBooking ID: %s\n",
		booking.NumberOfGuests, booking.Date, booking.Time,
		booking.SeatingArea, booking.Cuisine, booking.SpecialRequests, booking.ID,
	)
	return s.send(ctx, subject, body)
}

func (s *SESNotificationService) SendReminder(ctx context.Context, booking models.Booking) error {
	subject := fmt.Sprintf("[%s] Upcoming booking today at %s", s.restaurantName, booking.Time)
	body := fmt.Sprintf(
		"Reminder: reservation for %d guests today (%s) at %s, %s seating. Booking ID: %s\n",
		booking.NumberOfGuests, booking.Date, booking.Time, booking.SeatingArea, booking.ID,
	)
	return s.send(ctx, subject, body)
}

func (s *SESNotificationService) send(ctx context.Context, subject, body string) error {
	if s.from == "" || s.to == "" {
		// Notifications are unconfigured in development; not an error.
		return nil
	}
	input := &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{s.to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	}
	_, err := s.client.SendEmail(ctx, input)
	return err
}

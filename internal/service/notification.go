package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/repository"
	"github.com/72tommy72/HRMate/internal/whatsapp"
)

type SendNotificationParams struct {
	RecipientType string
	RecipientIDs  []string
	Channels      []model.NotificationChannel
	Subject       *string
	Message       string
	FromPhone     string
	CreatedBy     *string
}

// NotificationService fans a message out across delivery channels. Each
// recipient/channel pair gets its own row; a delivery failure is recorded on
// that row and never aborts the rest of the fan-out.
type NotificationService struct {
	notifications repository.NotificationRepository
	employees     repository.EmployeeRepository
	clients       repository.ClientRepository
	users         repository.UserRepository
	registry      *whatsapp.Registry
	mailer        Mailer
	log           zerolog.Logger
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	employees repository.EmployeeRepository,
	clients repository.ClientRepository,
	users repository.UserRepository,
	registry *whatsapp.Registry,
	mailer Mailer,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		employees:     employees,
		clients:       clients,
		users:         users,
		registry:      registry,
		mailer:        mailer,
		log:           logger,
	}
}

type recipientContact struct {
	email *string
	phone *string
}

func (s *NotificationService) Send(ctx context.Context, params SendNotificationParams) ([]model.Notification, error) {
	if params.Message == "" {
		return nil, apperrors.MissingRequired("message")
	}
	if len(params.RecipientIDs) == 0 {
		return nil, apperrors.MissingRequired("recipients")
	}
	if len(params.Channels) == 0 {
		params.Channels = []model.NotificationChannel{model.ChannelInApp}
	}
	for _, channel := range params.Channels {
		switch channel {
		case model.ChannelEmail, model.ChannelWhatsapp, model.ChannelInApp:
		default:
			return nil, apperrors.InvalidInput("channels", fmt.Sprintf("unknown channel %q", channel))
		}
	}

	var results []model.Notification
	for _, recipientID := range params.RecipientIDs {
		contact, err := s.resolveContact(ctx, params.RecipientType, recipientID)
		if err != nil {
			return nil, err
		}

		for _, channel := range params.Channels {
			record := model.CreateNotificationParams{
				RecipientType: params.RecipientType,
				RecipientID:   recipientID,
				Channel:       channel,
				Subject:       params.Subject,
				Message:       params.Message,
				Status:        model.NotificationStatusSent,
				CreatedBy:     params.CreatedBy,
			}

			if err := s.deliver(ctx, channel, contact, params); err != nil {
				msg := err.Error()
				record.Status = model.NotificationStatusFailed
				record.Error = &msg
				s.log.Warn().Err(err).
					Str("recipient_id", recipientID).
					Str("channel", string(channel)).
					Msg("Notification delivery failed")
			} else {
				now := time.Now()
				record.SentAt = &now
			}

			saved, err := s.notifications.Create(ctx, record)
			if err != nil {
				return nil, apperrors.Storage(err)
			}
			results = append(results, *saved)
		}
	}
	return results, nil
}

func (s *NotificationService) deliver(ctx context.Context, channel model.NotificationChannel, contact recipientContact, params SendNotificationParams) error {
	switch channel {
	case model.ChannelInApp:
		// The stored row is the delivery.
		return nil
	case model.ChannelEmail:
		if contact.email == nil || *contact.email == "" {
			return fmt.Errorf("recipient has no email address")
		}
		subject := ""
		if params.Subject != nil {
			subject = *params.Subject
		}
		return s.mailer.Send(ctx, *contact.email, subject, params.Message)
	case model.ChannelWhatsapp:
		if contact.phone == nil || *contact.phone == "" {
			return fmt.Errorf("recipient has no phone number")
		}
		if params.FromPhone == "" {
			return fmt.Errorf("no sender channel configured")
		}
		return s.registry.Send(ctx, params.FromPhone, *contact.phone, params.Message)
	}
	return fmt.Errorf("unknown channel %q", channel)
}

func (s *NotificationService) resolveContact(ctx context.Context, recipientType, recipientID string) (recipientContact, error) {
	switch recipientType {
	case "employee":
		employee, err := s.employees.FindByID(ctx, recipientID)
		if err != nil {
			return recipientContact{}, apperrors.Storage(err)
		}
		if employee == nil {
			return recipientContact{}, apperrors.NotFound("Employee")
		}
		return recipientContact{email: employee.Email, phone: employee.Phone}, nil
	case "client":
		client, err := s.clients.FindByID(ctx, recipientID)
		if err != nil {
			return recipientContact{}, apperrors.Storage(err)
		}
		if client == nil {
			return recipientContact{}, apperrors.NotFound("Client")
		}
		return recipientContact{email: &client.Email, phone: &client.Phone}, nil
	case "user":
		user, err := s.users.FindByID(ctx, recipientID)
		if err != nil {
			return recipientContact{}, apperrors.Storage(err)
		}
		if user == nil {
			return recipientContact{}, apperrors.NotFound("User")
		}
		return recipientContact{email: &user.Email, phone: user.Phone}, nil
	}
	return recipientContact{}, apperrors.InvalidInput("recipientType", "must be employee, client or user")
}

func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID string, limit, offset int) ([]model.Notification, error) {
	notifications, err := s.notifications.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) (*model.Notification, error) {
	notification, err := s.notifications.MarkRead(ctx, id, recipientID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if notification == nil {
		return nil, apperrors.NotFound("Notification")
	}
	return notification, nil
}

func (s *NotificationService) Delete(ctx context.Context, id, recipientID string) error {
	affected, err := s.notifications.Delete(ctx, id, recipientID)
	if err != nil {
		return apperrors.Storage(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Notification")
	}
	return nil
}

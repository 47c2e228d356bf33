package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/domain/repository"
	"flightmail-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// EmailProcessor handles a fetched email immediately
type EmailProcessor interface {
	ProcessEmail(ctx context.Context, email *entity.Email) (*entity.Trip, error)
}

// travelSubjectRe matches subjects worth handing to the flight parser
var travelSubjectRe = regexp.MustCompile(`(?i)\b(flights?|trip|itinerary|confirmation|confirmed|booking|reservation|e-?ticket|boarding|travel|PNR|vuelo|reserva)\b`)

// GmailService polls the Gmail API and processes new travel emails
type GmailService struct {
	gmailService *gmail.Service
	emailRepo    repository.EmailRepository
	processor    EmailProcessor
	logger       logger.Logger
	pollInterval time.Duration
}

// NewGmailService creates a new Gmail service
func NewGmailService(
	ctx context.Context,
	tokenSource oauth2.TokenSource,
	emailRepo repository.EmailRepository,
	processor EmailProcessor,
	logger logger.Logger,
	pollInterval time.Duration,
) (*GmailService, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailService{
		gmailService: service,
		emailRepo:    emailRepo,
		processor:    processor,
		logger:       logger,
		pollInterval: pollInterval,
	}, nil
}

// FetchAndProcessEmails lists messages received since the last logged email
// (with a 3-day overlap), skips those already logged, and processes the rest.
func (s *GmailService) FetchAndProcessEmails(ctx context.Context) error {
	lastEmail, err := s.emailRepo.GetLastEmail(ctx)
	if err != nil {
		s.logger.Error("Failed to get last email", "error", err)
	}

	var fetchFrom time.Time
	hasLastEmail := lastEmail != nil && !lastEmail.ReceivedAt.IsZero()
	if hasLastEmail {
		fetchFrom = lastEmail.ReceivedAt
	} else {
		fetchFrom = time.Now().AddDate(0, -6, 0)
	}

	queryDate := fetchFrom
	if hasLastEmail {
		// Go back 3 days to catch any emails we might have missed
		queryDate = fetchFrom.AddDate(0, 0, -3)
	}

	query := fmt.Sprintf("after:%s", queryDate.Format("2006/01/02"))
	s.logger.Info("Querying Gmail", "query", query, "cutoff", fetchFrom.Format(time.RFC3339))

	var messages []*gmail.Message
	err = s.gmailService.Users.Messages.List("me").Q(query).Pages(ctx, func(page *gmail.ListMessagesResponse) error {
		messages = append(messages, page.Messages...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	if len(messages) == 0 {
		s.logger.Debug("No new messages found")
		return nil
	}

	emailIDs := make([]string, len(messages))
	for i, msg := range messages {
		emailIDs[i] = msg.Id
	}

	existingEmails, err := s.emailRepo.FindByEmailIDs(ctx, emailIDs)
	if err != nil {
		s.logger.Error("Failed to batch check existing emails", "error", err)
		existingEmails = make(map[string]*entity.Email)
	}

	var processed, skippedExisting, skippedOld, skippedSubject int
	for _, msg := range messages {
		if _, exists := existingEmails[msg.Id]; exists {
			skippedExisting++
			continue
		}

		fullMsg, err := s.gmailService.Users.Messages.Get("me", msg.Id).Context(ctx).Do()
		if err != nil {
			s.logger.Error("Failed to get message", "emailID", msg.Id, "error", err)
			continue
		}

		email, err := convertToEmail(fullMsg)
		if err != nil {
			s.logger.Error("Failed to convert message", "emailID", msg.Id, "error", err)
			continue
		}

		if hasLastEmail && !email.ReceivedAt.After(fetchFrom) {
			skippedOld++
			continue
		}

		if !MatchesTravelSubject(email.Subject) {
			s.logger.Debug("Email doesn't match subject filter", "emailID", email.EmailID, "subject", email.Subject)
			skippedSubject++
			continue
		}

		if _, err := s.processor.ProcessEmail(ctx, email); err != nil {
			s.logger.Error("Failed to process email", "emailID", email.EmailID, "error", err)
			continue
		}
		processed++
	}

	s.logger.Info("Email fetch completed",
		"totalFromGmail", len(messages),
		"alreadyInDB", skippedExisting,
		"skippedOld", skippedOld,
		"skippedSubject", skippedSubject,
		"processed", processed)

	return nil
}

// StartPolling starts polling Gmail for new emails
func (s *GmailService) StartPolling(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Gmail polling stopped")
			return
		case <-ticker.C:
			s.logger.Info("Polling Gmail for new emails")
			if err := s.FetchAndProcessEmails(ctx); err != nil {
				s.logger.Error("Error polling Gmail", "error", err)
			}
		}
	}
}

// MatchesTravelSubject reports whether a subject looks like a travel email
func MatchesTravelSubject(subject string) bool {
	return travelSubjectRe.MatchString(subject)
}

// convertToEmail converts a Gmail message to our domain entity
func convertToEmail(msg *gmail.Message) (*entity.Email, error) {
	if msg.Payload == nil {
		return nil, fmt.Errorf("message %s has no payload", msg.Id)
	}

	email := &entity.Email{
		EmailID:       msg.Id,
		Channel:       entity.ChannelGmail,
		Labels:        msg.LabelIds,
		ProcessStatus: entity.StatusPending,
		ReceivedAt:    time.UnixMilli(msg.InternalDate).UTC(),
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			email.From = header.Value
		case "To":
			email.To = header.Value
		case "Subject":
			email.Subject = header.Value
		}
	}

	if err := collectBodies(msg.Payload, email); err != nil {
		return nil, err
	}
	return email, nil
}

// collectBodies walks nested MIME parts and keeps the first text/plain and
// text/html bodies it finds. Attachments are ignored.
func collectBodies(part *gmail.MessagePart, email *entity.Email) error {
	if part == nil {
		return nil
	}

	if part.Filename == "" && part.Body != nil && part.Body.Data != "" {
		mimeType := strings.ToLower(part.MimeType)
		switch {
		case strings.HasPrefix(mimeType, "text/plain") && email.Body == "":
			data, err := decodeBody(part.Body.Data)
			if err != nil {
				return err
			}
			email.Body = data
		case strings.HasPrefix(mimeType, "text/html") && email.HTMLBody == "":
			data, err := decodeBody(part.Body.Data)
			if err != nil {
				return err
			}
			email.HTMLBody = data
		}
	}

	for _, child := range part.Parts {
		if err := collectBodies(child, email); err != nil {
			return err
		}
	}
	return nil
}

// decodeBody accepts padded and unpadded URL-safe base64
func decodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
		if err != nil {
			return "", fmt.Errorf("failed to decode body: %w", err)
		}
	}
	return string(decoded), nil
}

package repository

import (
	"context"
	"time"

	"flightmail-service/internal/domain/entity"
)

// EmailRepository stores email log entries (metadata only).
type EmailRepository interface {
	Save(ctx context.Context, email *entity.Email) error
	GetLastEmail(ctx context.Context) (*entity.Email, error)
	FindByEmailID(ctx context.Context, emailID string) (*entity.Email, error)
	FindByEmailIDs(ctx context.Context, emailIDs []string) (map[string]*entity.Email, error)
	UpdateStatusByEmailID(ctx context.Context, emailID string, status string, startedAt time.Time) error
	MarkAsProcessedByEmailID(ctx context.Context, emailID, status, processorType, errorDetail string, extractedData map[string]interface{}) error
}

package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	"flightmail-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
)

func encode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestMatchesTravelSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    bool
	}{
		{subject: "Your United flight confirmation", want: true},
		{subject: "Fwd: Itinerary for your trip to Paris", want: true},
		{subject: "Reservation ABC123", want: true},
		{subject: "Tu reserva de vuelo", want: true},
		{subject: "Your e-ticket receipt", want: true},
		{subject: "Weekly newsletter", want: false},
		{subject: "Tripod sale", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesTravelSubject(tt.subject))
		})
	}
}

func TestConvertToEmail_NestedMultipart(t *testing.T) {
	msg := &gmail.Message{
		Id:           "18c1",
		LabelIds:     []string{"INBOX"},
		InternalDate: 1705312800000,
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "United <unitedairlines@united.com>"},
				{Name: "To", Value: "jane@example.com"},
				{Name: "Subject", Value: "Your trip confirmation"},
			},
			Parts: []*gmail.MessagePart{
				{
					MimeType: "multipart/alternative",
					Parts: []*gmail.MessagePart{
						{MimeType: "text/plain; charset=UTF-8", Body: &gmail.MessagePartBody{Data: encode("IAD to CDG")}},
						{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: encode("<p>IAD to CDG</p>")}},
					},
				},
				{MimeType: "application/pdf", Filename: "receipt.pdf", Body: &gmail.MessagePartBody{AttachmentId: "att-1"}},
			},
		},
	}

	email, err := convertToEmail(msg)
	require.NoError(t, err)

	assert.Equal(t, "18c1", email.EmailID)
	assert.Equal(t, entity.ChannelGmail, email.Channel)
	assert.Equal(t, "United <unitedairlines@united.com>", email.From)
	assert.Equal(t, "Your trip confirmation", email.Subject)
	assert.Equal(t, "IAD to CDG", email.Body)
	assert.Equal(t, "<p>IAD to CDG</p>", email.HTMLBody)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), email.ReceivedAt)
}

func TestConvertToEmail_SinglePartUnpadded(t *testing.T) {
	msg := &gmail.Message{
		Id: "18c2",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("SEA to LAX!"))},
		},
	}

	email, err := convertToEmail(msg)
	require.NoError(t, err)
	assert.Equal(t, "SEA to LAX!", email.Body)
}

func TestConvertToEmail_Errors(t *testing.T) {
	_, err := convertToEmail(&gmail.Message{Id: "x"})
	assert.Error(t, err)

	_, err = convertToEmail(&gmail.Message{Id: "y", Payload: &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: "!!not base64!!"},
	}})
	assert.Error(t, err)
}

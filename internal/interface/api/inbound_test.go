package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/usecase"
	"flightmail-service/pkg/flightparser"
	"flightmail-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTripService is a mock implementation of TripService
type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) ProcessEmail(ctx context.Context, email *entity.Email) (*entity.Trip, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Trip), args.Error(1)
}

func (m *MockTripService) Parse(ctx context.Context, from, subject, body string) flightparser.ParserResult {
	args := m.Called(ctx, from, subject, body)
	return args.Get(0).(flightparser.ParserResult)
}

func (m *MockTripService) ListTrips(ctx context.Context, userEmail string, limit int) ([]*entity.Trip, error) {
	args := m.Called(ctx, userEmail, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Trip), args.Error(1)
}

func newTestRouter(service TripService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewInboundHandler(service, logger.NewNopLogger()), logger.NewNopLogger())
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInboundEmail_JSON(t *testing.T) {
	service := &MockTripService{}
	router := newTestRouter(service)

	trip := &entity.Trip{ID: "trip-1", UserEmail: "jane@example.com", Status: entity.TripStatusConfirmed}
	service.On("ProcessEmail", mock.Anything, mock.MatchedBy(func(e *entity.Email) bool {
		return e.EmailID == "<abc@mail>" && e.Channel == entity.ChannelWebhook &&
			e.Body == "SEA to LAX" && e.Subject == "Trip"
	})).Return(trip, nil)

	body, _ := json.Marshal(map[string]string{
		"messageId": "<abc@mail>",
		"from":      "jane@example.com",
		"subject":   "Trip",
		"text":      "SEA to LAX",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inbound/email", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := serve(router, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got entity.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "trip-1", got.ID)
	assert.Equal(t, entity.TripStatusConfirmed, got.Status)
	service.AssertExpectations(t)
}

func TestInboundEmail_MultipartForm(t *testing.T) {
	service := &MockTripService{}
	router := newTestRouter(service)

	var captured *entity.Email
	service.On("ProcessEmail", mock.Anything, mock.AnythingOfType("*entity.Email")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*entity.Email) }).
		Return(&entity.Trip{ID: "trip-2"}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("from", "Jane <jane@example.com>")
	mw.WriteField("subject", "Fwd: Your flight")
	mw.WriteField("html", "<p>SEA to LAX</p>")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inbound/email", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := serve(router, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "<p>SEA to LAX</p>", captured.HTMLBody)
	assert.True(t, strings.HasPrefix(captured.EmailID, "webhook-"))
	assert.Len(t, captured.EmailID, len("webhook-")+32)
}

func TestInboundEmail_Validation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{name: "missing from", form: url.Values{"text": {"SEA to LAX"}}},
		{name: "missing body", form: url.Values{"from": {"jane@example.com"}, "text": {"  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &MockTripService{}
			router := newTestRouter(service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/inbound/email", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			w := serve(router, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			service.AssertNotCalled(t, "ProcessEmail", mock.Anything, mock.Anything)
		})
	}
}

func TestInboundEmail_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "duplicate", err: usecase.ErrAlreadyProcessed, wantCode: http.StatusConflict},
		{name: "storage failure", err: errors.New("mongo down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &MockTripService{}
			router := newTestRouter(service)
			service.On("ProcessEmail", mock.Anything, mock.Anything).Return(nil, tt.err)

			form := url.Values{"from": {"jane@example.com"}, "text": {"SEA to LAX"}}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/inbound/email", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			w := serve(router, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.NotContains(t, w.Body.String(), "mongo down")
		})
	}
}

func TestWebhookMessageID_Stable(t *testing.T) {
	req := inboundEmailRequest{From: "a@example.com", Subject: "Trip", Text: "SEA to LAX"}

	assert.Equal(t, webhookMessageID(req), webhookMessageID(req))
	other := req
	other.Text = "SEA to SFO"
	assert.NotEqual(t, webhookMessageID(req), webhookMessageID(other))
}

func TestParse(t *testing.T) {
	service := &MockTripService{}
	router := newTestRouter(service)

	result := flightparser.ParserResult{
		Success:    true,
		ParserUsed: "generic",
		Flight:     &flightparser.ParsedFlight{Origin: "SEA", Destination: "LAX", IsOneWay: true, Confidence: 0.6, RouteFromScan: true},
	}
	service.On("Parse", mock.Anything, "a@example.com", "Trip", "SEA ... LAX").Return(result)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse",
		strings.NewReader(`{"from":"a@example.com","subject":"Trip","body":"SEA ... LAX"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got flightparser.ParserResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, result, got)
}

func TestParse_RequiresBody(t *testing.T) {
	router := newTestRouter(&MockTripService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{"subject":"Trip"}`))
	req.Header.Set("Content-Type", "application/json")

	assert.Equal(t, http.StatusBadRequest, serve(router, req).Code)
}

func TestListTrips(t *testing.T) {
	service := &MockTripService{}
	router := newTestRouter(service)
	trips := []*entity.Trip{{ID: "t1"}, {ID: "t2"}}
	service.On("ListTrips", mock.Anything, "jane@example.com", 5).Return(trips, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/trips?user=jane@example.com&limit=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var got tripsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "t2", got.Trips[1].ID)
}

func TestListTrips_BadRequests(t *testing.T) {
	for _, target := range []string{"/api/v1/trips", "/api/v1/trips?user=a@example.com&limit=x", "/api/v1/trips?user=a@example.com&limit=-1"} {
		t.Run(target, func(t *testing.T) {
			router := newTestRouter(&MockTripService{})
			w := serve(router, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&MockTripService{})
	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Healthy", w.Body.String())
}

package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/domain/repository"
	"flightmail-service/pkg/flightparser"
	"flightmail-service/pkg/logger"
	"flightmail-service/pkg/metrics"
	"flightmail-service/pkg/utils"
)

const (
	processorType    = "flight"
	defaultListLimit = 50
	maxListLimit     = 200
)

// ErrAlreadyProcessed is returned when an email ID has already been handled.
var ErrAlreadyProcessed = errors.New("email already processed")

// FlightParser extracts a flight from an email.
type FlightParser interface {
	ParseFlightEmail(ctx context.Context, from, subject, body string) flightparser.ParserResult
}

// TripProcessor turns inbound emails into stored trips
type TripProcessor struct {
	parser      FlightParser
	emailRepo   repository.EmailRepository
	tripRepo    repository.TripRepository
	airlineRepo repository.AirlineRepository
	geocoder    repository.Geocoder
	cache       repository.ResultCache
	publisher   repository.EventPublisher
	metrics     *metrics.Metrics
	logger      logger.Logger
	now         func() time.Time
}

// ProcessorOption configures optional collaborators
type ProcessorOption func(*TripProcessor)

func WithGeocoder(g repository.Geocoder) ProcessorOption {
	return func(p *TripProcessor) { p.geocoder = g }
}

func WithAirlineRepository(r repository.AirlineRepository) ProcessorOption {
	return func(p *TripProcessor) { p.airlineRepo = r }
}

func WithResultCache(c repository.ResultCache) ProcessorOption {
	return func(p *TripProcessor) { p.cache = c }
}

func WithEventPublisher(pub repository.EventPublisher) ProcessorOption {
	return func(p *TripProcessor) { p.publisher = pub }
}

func WithMetrics(m *metrics.Metrics) ProcessorOption {
	return func(p *TripProcessor) { p.metrics = m }
}

// NewTripProcessor creates a new trip processor
func NewTripProcessor(
	parser FlightParser,
	emailRepo repository.EmailRepository,
	tripRepo repository.TripRepository,
	logger logger.Logger,
	opts ...ProcessorOption,
) *TripProcessor {
	p := &TripProcessor{
		parser:    parser,
		emailRepo: emailRepo,
		tripRepo:  tripRepo,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessEmail parses one email and records the resulting trip. A parse
// failure still produces a pending-review trip; only persistence errors
// are returned.
func (p *TripProcessor) ProcessEmail(ctx context.Context, email *entity.Email) (*entity.Trip, error) {
	start := p.now()
	log := p.logger.With("emailID", email.EmailID, "channel", email.Channel)

	if err := p.claim(ctx, email); err != nil {
		return nil, err
	}

	userEmail := utils.ExtractEmailAddress(email.From)
	body := email.Body
	if strings.TrimSpace(body) == "" && email.HTMLBody != "" {
		body = utils.CleanHTMLText(email.HTMLBody)
	}

	result := p.Parse(ctx, email.From, email.Subject, body)
	trip := p.buildTrip(ctx, log, email, userEmail, result)

	if err := p.tripRepo.Upsert(ctx, trip); err != nil {
		log.Error("Failed to store trip", "error", err)
		p.countError("trip_upsert")
		p.markProcessed(ctx, log, email.EmailID, entity.StatusFailed, result.ParserUsed, err.Error(), nil)
		return nil, fmt.Errorf("failed to store trip: %w", err)
	}

	p.publish(ctx, log, trip)

	if p.metrics != nil {
		p.metrics.EmailsProcessed.Inc()
		p.metrics.TripsRecorded.WithLabelValues(trip.Status).Inc()
		p.metrics.ProcessingTime.Observe(p.now().Sub(start).Seconds())
	}

	extracted := map[string]interface{}{
		"tripId":     trip.ID,
		"tripStatus": trip.Status,
		"parserUsed": result.ParserUsed,
		"confidence": result.Confidence(),
	}
	if !result.Success {
		extracted["errorKind"] = string(result.ErrorKind)
	}
	p.markProcessed(ctx, log, email.EmailID, entity.StatusCompleted, result.ParserUsed, "", extracted)

	log.Info("Email processed",
		"tripId", trip.ID,
		"status", trip.Status,
		"parserUsed", result.ParserUsed,
		"elapsed", p.now().Sub(start))

	return trip, nil
}

// Parse runs the flight parser, consulting the result cache when one is set.
func (p *TripProcessor) Parse(ctx context.Context, from, subject, body string) flightparser.ParserResult {
	if p.cache == nil {
		return p.parser.ParseFlightEmail(ctx, from, subject, body)
	}

	key := contentKey(from, subject, body)
	cached, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("Result cache read failed", "error", err)
	}
	if cached != nil {
		p.logger.Debug("Result cache hit", "parserUsed", cached.ParserUsed)
		return *cached
	}

	result := p.parser.ParseFlightEmail(ctx, from, subject, body)
	if cacheable(result) {
		if err := p.cache.Set(ctx, key, result); err != nil {
			p.logger.Warn("Result cache write failed", "error", err)
		}
	}
	return result
}

// ListTrips returns a user's trips, newest first.
func (p *TripProcessor) ListTrips(ctx context.Context, userEmail string, limit int) ([]*entity.Trip, error) {
	userEmail = utils.ExtractEmailAddress(userEmail)
	if userEmail == "" {
		return nil, errors.New("user email is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return p.tripRepo.ListByUser(ctx, userEmail, limit)
}

// claim records the email in the log and marks it PROCESSING. Emails
// already completed or skipped are rejected with ErrAlreadyProcessed.
func (p *TripProcessor) claim(ctx context.Context, email *entity.Email) error {
	if email.EmailID == "" {
		return errors.New("email ID is required")
	}

	existing, err := p.emailRepo.FindByEmailID(ctx, email.EmailID)
	if err == nil && existing == nil {
		err = repository.ErrNotFound
	}
	switch {
	case err == nil:
		if existing.ProcessStatus == entity.StatusCompleted || existing.ProcessStatus == entity.StatusSkipped {
			return ErrAlreadyProcessed
		}
		if err := p.emailRepo.UpdateStatusByEmailID(ctx, email.EmailID, entity.StatusProcessing, p.now()); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		return nil
	case errors.Is(err, repository.ErrNotFound):
		email.ProcessStatus = entity.StatusProcessing
		email.ProcessStartedAt = p.now()
		if err := p.emailRepo.Save(ctx, email); err != nil {
			return fmt.Errorf("failed to save email: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("failed to look up email: %w", err)
	}
}

func (p *TripProcessor) buildTrip(ctx context.Context, log logger.Logger, email *entity.Email, userEmail string, result flightparser.ParserResult) *entity.Trip {
	trip := &entity.Trip{
		UserEmail:     userEmail,
		Status:        entity.TripStatusPendingReview,
		ParserUsed:    result.ParserUsed,
		Subject:       email.Subject,
		SourceEmailID: email.EmailID,
	}

	if !result.Success || result.Flight == nil {
		trip.DedupeKey = strings.Join([]string{userEmail, "email", email.EmailID}, "|")
		trip.ParseError = result.Error
		trip.ParseErrorKind = string(result.ErrorKind)
		return trip
	}

	flight := result.Flight
	trip.Origin = p.geocode(ctx, log, flight.Origin)
	trip.Destination = p.geocode(ctx, log, flight.Destination)
	trip.DepartureDate = flight.DepartureDate
	trip.ReturnDate = flight.ReturnDate
	trip.IsOneWay = flight.IsOneWay
	trip.Airline = p.airlineName(ctx, log, flight.Airline)
	trip.ConfirmationNumber = flight.ConfirmationNumber
	trip.Confidence = flight.Confidence
	trip.DedupeKey = strings.Join([]string{
		userEmail,
		strings.ToUpper(flight.ConfirmationNumber),
		flight.DepartureDate,
		flight.Origin,
		flight.Destination,
	}, "|")

	if trip.Origin.Resolved && trip.Destination.Resolved && flight.DepartureDate != "" && !flight.RouteFromScan {
		trip.Status = entity.TripStatusConfirmed
	}
	return trip
}

func (p *TripProcessor) geocode(ctx context.Context, log logger.Logger, code string) *entity.Place {
	unresolved := &entity.Place{Query: code, Code: code}
	if p.geocoder == nil {
		return unresolved
	}

	place, err := p.geocoder.Geocode(ctx, code)
	if err != nil {
		log.Warn("Geocoding failed", "query", code, "error", err)
		p.countError("geocode")
		return unresolved
	}
	if place == nil {
		return unresolved
	}
	if place.Code == "" {
		place.Code = code
	}
	return place
}

// airlineName expands two-letter IATA designators to the carrier name.
func (p *TripProcessor) airlineName(ctx context.Context, log logger.Logger, airline string) string {
	if p.airlineRepo == nil || len(airline) != 2 {
		return airline
	}

	record, err := p.airlineRepo.GetByCode(ctx, airline)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warn("Airline lookup failed", "code", airline, "error", err)
		}
		return airline
	}
	return record.Name
}

func (p *TripProcessor) publish(ctx context.Context, log logger.Logger, trip *entity.Trip) {
	if p.publisher == nil {
		return
	}

	event := entity.TripEvent{
		Type:       entity.TripRecordedEvent,
		TripID:     trip.ID,
		UserEmail:  trip.UserEmail,
		Status:     trip.Status,
		ParserUsed: trip.ParserUsed,
		OccurredAt: p.now().UTC(),
	}
	if trip.Origin != nil {
		event.Origin = trip.Origin.Code
	}
	if trip.Destination != nil {
		event.Destination = trip.Destination.Code
	}

	if err := p.publisher.PublishTrip(ctx, event); err != nil {
		log.Error("Failed to publish trip event", "tripId", trip.ID, "error", err)
		p.countError("publish")
	}
}

func (p *TripProcessor) markProcessed(ctx context.Context, log logger.Logger, emailID, status, parserUsed, errorDetail string, extracted map[string]interface{}) {
	procType := processorType
	if parserUsed != "" {
		procType = processorType + ":" + parserUsed
	}
	if err := p.emailRepo.MarkAsProcessedByEmailID(ctx, emailID, status, procType, errorDetail, extracted); err != nil {
		log.Error("Failed to mark email as processed", "status", status, "error", err)
	}
}

func (p *TripProcessor) countError(operation string) {
	if p.metrics != nil {
		p.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}

// cacheable reports whether a result is deterministic for its input.
// Model transport failures may succeed on a later attempt.
func cacheable(result flightparser.ParserResult) bool {
	switch result.ErrorKind {
	case flightparser.ErrModelUnavailable, flightparser.ErrModelRequestFailed:
		return false
	}
	return true
}

// contentKey hashes the parser inputs so the body is never stored in clear text.
func contentKey(from, subject, body string) string {
	h := sha256.New()
	for _, part := range []string{from, subject, body} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

package flightparser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stageRecord struct {
	stage  string
	result ParserResult
}

type recordingObserver struct {
	stages []stageRecord
}

func (o *recordingObserver) StageCompleted(stage string, result ParserResult) {
	o.stages = append(o.stages, stageRecord{stage: stage, result: result})
}

type stubModel struct {
	result ParserResult
	calls  int
}

func (m *stubModel) ParseWithModel(_ context.Context, _, _, _ string) ParserResult {
	m.calls++
	return m.result
}

func fixedStrategy(result ParserResult) Strategy {
	return func(string, string) ParserResult { return result }
}

func TestParseFlightEmail_UnitedConfirmation(t *testing.T) {
	model := &stubModel{}
	p := NewParser(WithModel(model))

	result := p.ParseFlightEmail(context.Background(),
		"reservations@united.com",
		"Your upcoming trip",
		"Washington, DC (IAD) to Paris (CDG)\nMon, Jan 15, 2024\nConfirmation: ABC123")

	require.True(t, result.Success)
	assert.Equal(t, "united", result.ParserUsed)
	assert.Equal(t, ParsedFlight{
		Origin:             "IAD",
		Destination:        "CDG",
		DepartureDate:      "2024-01-15",
		IsOneWay:           true,
		Airline:            "United Airlines",
		ConfirmationNumber: "ABC123",
		Confidence:         0.85,
	}, *result.Flight)
	assert.Zero(t, model.calls)
}

func TestParseFlightEmail_GenericAtThreshold(t *testing.T) {
	model := &stubModel{}
	p := NewParser(WithModel(model))

	result := p.ParseFlightEmail(context.Background(), "friend@example.com", "Trip", "SEA ... LAX")

	require.True(t, result.Success)
	assert.Equal(t, ParserGeneric, result.ParserUsed)
	assert.Equal(t, 0.6, result.Flight.Confidence)
	assert.True(t, result.Flight.IsOneWay)
	assert.Zero(t, model.calls)
}

func TestParseFlightEmail_EscalatesToModel(t *testing.T) {
	modelResult := succeed(ParserModel, &ParsedFlight{Origin: "SFO", Destination: "NRT", IsOneWay: true, Confidence: 0.7})
	model := &stubModel{result: modelResult}
	observer := &recordingObserver{}

	p := NewParser(
		WithStrategies(map[Source]Strategy{
			SourceUnited: fixedStrategy(succeed("united", &ParsedFlight{Origin: "SFO", Destination: "NRT", Confidence: 0.65})),
		}),
		WithGenericStrategy(fixedStrategy(succeed(ParserGeneric, &ParsedFlight{Origin: "SFO", Destination: "NRT", Confidence: 0.55}))),
		WithModel(model),
		WithObserver(observer),
	)

	result := p.ParseFlightEmail(context.Background(), "news@united.com", "Trip", "body")

	assert.Equal(t, modelResult, result)
	assert.Equal(t, 1, model.calls)
	require.Len(t, observer.stages, 3)
	assert.Equal(t, StageSource, observer.stages[0].stage)
	assert.Equal(t, ErrLowConfidence, observer.stages[0].result.ErrorKind)
	assert.Equal(t, "united", observer.stages[0].result.ParserUsed)
	assert.Equal(t, StageGeneric, observer.stages[1].stage)
	assert.Equal(t, ErrLowConfidence, observer.stages[1].result.ErrorKind)
	assert.Equal(t, StageModel, observer.stages[2].stage)
	assert.True(t, observer.stages[2].result.Success)
}

func TestParseFlightEmail_ModelFailureIsTerminal(t *testing.T) {
	modelResult := fail(ParserModel, ErrModelMissingFields, "model response is missing origin or destination")
	model := &stubModel{result: modelResult}
	p := NewParser(WithModel(model))

	result := p.ParseFlightEmail(context.Background(), "me@example.com", "Hello", "No flight in here")

	assert.Equal(t, modelResult, result)
	assert.Equal(t, 1, model.calls)
}

func TestParseFlightEmail_NoModelConfigured(t *testing.T) {
	p := NewParser()

	result := p.ParseFlightEmail(context.Background(), "me@example.com", "Hello", "No flight in here")

	assert.False(t, result.Success)
	assert.Equal(t, ErrModelUnavailable, result.ErrorKind)
	assert.Equal(t, ParserModel, result.ParserUsed)
}

func TestParseFlightEmail_CustomThresholds(t *testing.T) {
	model := &stubModel{result: fail(ParserModel, ErrModelUnavailable, "off")}
	p := NewParser(WithModel(model), WithThresholds(0.7, 0.65))

	result := p.ParseFlightEmail(context.Background(), "me@example.com", "", "SEA ... LAX")

	assert.False(t, result.Success)
	assert.Equal(t, 1, model.calls)
}

func TestParseFlightEmail_Idempotent(t *testing.T) {
	p := NewParser()
	body := "Washington, DC (IAD) to Paris (CDG)\nMon, Jan 15, 2024\nConfirmation: ABC123"

	first := p.ParseFlightEmail(context.Background(), "reservations@united.com", "", body)
	second := p.ParseFlightEmail(context.Background(), "reservations@united.com", "", body)

	assert.Equal(t, first, second)
}

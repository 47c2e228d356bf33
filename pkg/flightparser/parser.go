package flightparser

import (
	"context"
	"fmt"

	"flightmail-service/pkg/logger"
)

const (
	DefaultSourceThreshold  = 0.7
	DefaultGenericThreshold = 0.6
)

// Stage names reported to observers.
const (
	StageSource  = "source"
	StageGeneric = "generic"
	StageModel   = "model"
)

// ModelFallback is the terminal stage of the pipeline.
type ModelFallback interface {
	ParseWithModel(ctx context.Context, from, subject, body string) ParserResult
}

// Observer is told about every stage the parser attempts, including
// results rejected for low confidence.
type Observer interface {
	StageCompleted(stage string, result ParserResult)
}

// Parser runs the staged extraction pipeline: the detected source's
// strategy, then the generic strategy, then the model.
type Parser struct {
	strategies       map[Source]Strategy
	generic          Strategy
	model            ModelFallback
	sourceThreshold  float64
	genericThreshold float64
	observer         Observer
	logger           logger.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithThresholds sets the minimum confidence accepted from the source and
// generic stages.
func WithThresholds(source, generic float64) Option {
	return func(p *Parser) {
		p.sourceThreshold = source
		p.genericThreshold = generic
	}
}

func WithStrategies(strategies map[Source]Strategy) Option {
	return func(p *Parser) {
		p.strategies = strategies
	}
}

func WithGenericStrategy(s Strategy) Option {
	return func(p *Parser) {
		if s != nil {
			p.generic = s
		}
	}
}

func WithModel(m ModelFallback) Option {
	return func(p *Parser) {
		p.model = m
	}
}

func WithObserver(o Observer) Option {
	return func(p *Parser) {
		p.observer = o
	}
}

func WithLogger(l logger.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser builds a parser with the default source strategies and
// thresholds and no model fallback.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		strategies:       DefaultStrategies(),
		generic:          ParseGeneric,
		sourceThreshold:  DefaultSourceThreshold,
		genericThreshold: DefaultGenericThreshold,
		logger:           logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFlightEmail extracts a flight from an email. The first stage whose
// result clears its threshold wins; the model result is returned as is.
func (p *Parser) ParseFlightEmail(ctx context.Context, from, subject, body string) ParserResult {
	source := DetectSource(from, subject, body)
	log := p.logger.With("source", string(source), "bodyLength", len(body))

	if strategy, ok := p.strategies[source]; ok {
		result := strategy(subject, body)
		if p.accept(log, StageSource, result, p.sourceThreshold) {
			return p.finish(log, result)
		}
	}

	result := p.generic(subject, body)
	if p.accept(log, StageGeneric, result, p.genericThreshold) {
		return p.finish(log, result)
	}

	var modelResult ParserResult
	if p.model == nil {
		modelResult = fail(ParserModel, ErrModelUnavailable, "no model backend configured")
	} else {
		modelResult = p.model.ParseWithModel(ctx, from, subject, body)
	}
	p.notify(StageModel, modelResult)
	return p.finish(log, modelResult)
}

// accept reports whether result clears threshold, notifying the observer
// either way.
func (p *Parser) accept(log logger.Logger, stage string, result ParserResult, threshold float64) bool {
	if !result.Success {
		log.Debug("stage failed", "stage", stage, "parserUsed", result.ParserUsed, "errorKind", result.ErrorKind)
		p.notify(stage, result)
		return false
	}

	confidence := result.Confidence()
	if confidence < threshold {
		log.Debug("stage below threshold", "stage", stage, "parserUsed", result.ParserUsed,
			"confidence", confidence, "threshold", threshold)
		p.notify(stage, fail(result.ParserUsed, ErrLowConfidence,
			fmt.Sprintf("confidence %.2f below threshold %.2f", confidence, threshold)))
		return false
	}

	log.Debug("stage accepted", "stage", stage, "parserUsed", result.ParserUsed, "confidence", confidence)
	p.notify(stage, result)
	return true
}

func (p *Parser) notify(stage string, result ParserResult) {
	if p.observer != nil {
		p.observer.StageCompleted(stage, result)
	}
}

func (p *Parser) finish(log logger.Logger, result ParserResult) ParserResult {
	if result.Success {
		log.Info("flight extracted", "parserUsed", result.ParserUsed, "confidence", result.Confidence(),
			"origin", result.Flight.Origin, "destination", result.Flight.Destination)
	} else {
		log.Info("flight extraction failed", "parserUsed", result.ParserUsed, "errorKind", result.ErrorKind,
			"error", result.Error)
	}
	return result
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"travelplanner/internal/ai"
	"travelplanner/internal/modules/aiusage"
	"travelplanner/internal/types"
)

// Fixed generation settings for every itinerary.
const (
	MaxOutputTokens = 8000
	Temperature     = 0.8
)

// usageRecordTimeout bounds usage bookkeeping after a generation.
const usageRecordTimeout = 2 * time.Second

// UsageRecorder receives accounting for successful generations.
type UsageRecorder interface {
	Record(ctx context.Context, rec aiusage.Record) error
}

// Itinerary is a generated plan together with the request it answers.
type Itinerary struct {
	Request     TripRequest
	Text        string
	Usage       ai.Usage
	Cost        types.USD
	Model       string
	GeneratedAt time.Time
}

// TripPlanner renders the prompts and dispatches one generation per request.
type TripPlanner struct {
	generator ai.Generator
	tariff    Tariff
	usage     UsageRecorder
	log       *zap.Logger
	now       func() time.Time
}

// NewTripPlanner wires a planner. usage may be nil.
func NewTripPlanner(generator ai.Generator, tariff Tariff, usage UsageRecorder, log *zap.Logger) *TripPlanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripPlanner{
		generator: generator,
		tariff:    tariff,
		usage:     usage,
		log:       log,
		now:       time.Now,
	}
}

// PlanTrip validates req, applies defaults and makes exactly one upstream call.
// It returns *MissingFieldsError before any call when required fields are absent,
// and *UpstreamError for every failure of the call itself.
func (p *TripPlanner) PlanTrip(ctx context.Context, req TripRequest) (*Itinerary, error) {
	if err := req.Validate(); err != nil {
		ObserveOutcome(OutcomeInvalid)
		return nil, err
	}
	req = req.WithDefaults()

	completion, err := p.generator.Generate(ctx, ai.GenerationRequest{
		System:      SystemPrompt,
		Prompt:      BuildTripPrompt(req),
		MaxTokens:   MaxOutputTokens,
		Temperature: Temperature,
	})
	if err != nil {
		ObserveOutcome(OutcomeUpstreamError)
		p.log.Error("itinerary generation failed",
			zap.String("request_id", RequestID(ctx)),
			zap.String("destination", req.Destination),
			zap.Error(err),
		)
		return nil, &UpstreamError{Message: err.Error()}
	}

	it := &Itinerary{
		Request:     req,
		Text:        completion.Text,
		Usage:       completion.Usage,
		Cost:        p.tariff.Cost(completion.Usage),
		Model:       p.generator.Model(),
		GeneratedAt: p.now().UTC(),
	}

	ObserveOutcome(OutcomeSuccess)
	generationTokens.WithLabelValues("input").Add(float64(it.Usage.InputTokens))
	generationTokens.WithLabelValues("output").Add(float64(it.Usage.OutputTokens))
	generationCost.Add(float64(it.Cost))

	p.recordUsage(ctx, it)
	return it, nil
}

func (p *TripPlanner) recordUsage(ctx context.Context, it *Itinerary) {
	if p.usage == nil {
		return
	}
	reqID := RequestID(ctx)
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), usageRecordTimeout)
	defer cancel()

	err := p.usage.Record(recCtx, aiusage.Record{
		RequestID:    reqID,
		Destination:  it.Request.Destination,
		Model:        it.Model,
		InputTokens:  it.Usage.InputTokens,
		OutputTokens: it.Usage.OutputTokens,
		CostUSD:      float64(it.Cost),
		GeneratedAt:  it.GeneratedAt,
	})
	if err != nil {
		p.log.Warn("usage recording failed", zap.String("request_id", reqID), zap.Error(err))
	}
}

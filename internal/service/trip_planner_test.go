package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelplanner/internal/ai"
	"travelplanner/internal/modules/aiusage"
)

type stubGenerator struct {
	calls int
	last  ai.GenerationRequest
	out   *ai.Completion
	err   error
}

func (s *stubGenerator) Generate(_ context.Context, req ai.GenerationRequest) (*ai.Completion, error) {
	s.calls++
	s.last = req
	return s.out, s.err
}

func (s *stubGenerator) Model() string { return "stub-model" }

type stubRecorder struct {
	records []aiusage.Record
	err     error
}

func (s *stubRecorder) Record(_ context.Context, rec aiusage.Record) error {
	s.records = append(s.records, rec)
	return s.err
}

func fixedClock() time.Time {
	return time.Date(2026, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
}

func TestPlanTripSuccess(t *testing.T) {
	gen := &stubGenerator{out: &ai.Completion{
		Text:  "Day 1: Athens",
		Usage: ai.Usage{InputTokens: 1_000_000, OutputTokens: 1_000_000},
	}}
	rec := &stubRecorder{}
	p := NewTripPlanner(gen, DefaultTariff, rec, nil)
	p.now = fixedClock

	ctx := WithRequestID(context.Background(), "req-1")
	it, err := p.PlanTrip(ctx, minimalRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, SystemPrompt, gen.last.System)
	assert.Equal(t, BuildTripPrompt(minimalRequest().WithDefaults()), gen.last.Prompt)
	assert.Equal(t, 8000, gen.last.MaxTokens)
	assert.Equal(t, 0.8, gen.last.Temperature)

	assert.Equal(t, "Day 1: Athens", it.Text)
	assert.Equal(t, "$18.0000", it.Cost.String())
	assert.Equal(t, "stub-model", it.Model)
	assert.Equal(t, time.UTC, it.GeneratedAt.Location())
	assert.Equal(t, 10, it.GeneratedAt.Hour())
	assert.Equal(t, "Flexible", it.Request.Dates)

	require.Len(t, rec.records, 1)
	assert.Equal(t, "req-1", rec.records[0].RequestID)
	assert.Equal(t, "Greece", rec.records[0].Destination)
	assert.Equal(t, 18.0, rec.records[0].CostUSD)
}

func TestPlanTripMissingFieldsSkipsUpstream(t *testing.T) {
	gen := &stubGenerator{}
	p := NewTripPlanner(gen, DefaultTariff, nil, nil)

	_, err := p.PlanTrip(context.Background(), TripRequest{Destination: "Greece"})
	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"travelers", "duration"}, missing.Fields)
	assert.Equal(t, 0, gen.calls)
}

func TestPlanTripUpstreamFailure(t *testing.T) {
	gen := &stubGenerator{
		out: &ai.Completion{Usage: ai.Usage{InputTokens: 900}},
		err: errors.New("anthropic: rate_limit_error (status 429): slow down"),
	}
	rec := &stubRecorder{}
	p := NewTripPlanner(gen, DefaultTariff, rec, nil)

	it, err := p.PlanTrip(context.Background(), minimalRequest())
	assert.Nil(t, it)
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "anthropic: rate_limit_error (status 429): slow down", upstream.Message)
	assert.Equal(t, "Error generating itinerary: anthropic: rate_limit_error (status 429): slow down", err.Error())
	assert.Equal(t, 1, gen.calls)
	assert.Empty(t, rec.records, "partial usage must be discarded")
}

func TestPlanTripRecorderFailureDoesNotFailRequest(t *testing.T) {
	gen := &stubGenerator{out: &ai.Completion{Text: "ok"}}
	rec := &stubRecorder{err: errors.New("redis down")}
	p := NewTripPlanner(gen, DefaultTariff, rec, nil)

	it, err := p.PlanTrip(context.Background(), minimalRequest())
	require.NoError(t, err)
	assert.Equal(t, "ok", it.Text)
	assert.Len(t, rec.records, 1)
}

func TestTariffCost(t *testing.T) {
	assert.Equal(t, "$18.0000", DefaultTariff.Cost(ai.Usage{InputTokens: 1_000_000, OutputTokens: 1_000_000}).String())
	assert.Equal(t, "$0.0546", DefaultTariff.Cost(ai.Usage{InputTokens: 1200, OutputTokens: 3400}).String())
	assert.Equal(t, "$0.0000", DefaultTariff.Cost(ai.Usage{}).String())
}

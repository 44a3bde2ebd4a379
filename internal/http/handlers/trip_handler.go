// README: Trip planning handler (validates the body, dispatches one generation).
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplanner/internal/service"
)

// GeneratedAtLayout renders UTC timestamps with microseconds and a Z suffix.
const GeneratedAtLayout = "2006-01-02T15:04:05.000000Z"

type TripHandler struct {
	planner *service.TripPlanner
}

func NewTripHandler(planner *service.TripPlanner) *TripHandler {
	return &TripHandler{planner: planner}
}

type planSummary struct {
	Travelers string `json:"travelers"`
	Duration  string `json:"duration"`
	Dates     string `json:"dates"`
	Budget    string `json:"budget"`
	Interests string `json:"interests"`
}

type planMetadata struct {
	GeneratedAt   string `json:"generatedAt"`
	InputTokens   int    `json:"inputTokens"`
	OutputTokens  int    `json:"outputTokens"`
	EstimatedCost string `json:"estimatedCost"`
	Model         string `json:"model"`
}

type planResponse struct {
	Success     bool         `json:"success"`
	Destination string       `json:"destination"`
	Itinerary   string       `json:"itinerary"`
	Summary     planSummary  `json:"summary"`
	Metadata    planMetadata `json:"metadata"`
}

func newPlanResponse(it *service.Itinerary) planResponse {
	req := it.Request
	return planResponse{
		Success:     true,
		Destination: req.Destination,
		Itinerary:   it.Text,
		Summary: planSummary{
			Travelers: req.Travelers,
			Duration:  req.Duration,
			Dates:     req.Dates,
			Budget:    req.Budget,
			Interests: req.InterestList(),
		},
		Metadata: planMetadata{
			GeneratedAt:   it.GeneratedAt.UTC().Format(GeneratedAtLayout),
			InputTokens:   it.Usage.InputTokens,
			OutputTokens:  it.Usage.OutputTokens,
			EstimatedCost: it.Cost.String(),
			Model:         it.Model,
		},
	}
}

var errBodyNotObject = errors.New("Request body must be a JSON object")

// decodeTripRequest accepts exactly one JSON object with nothing but
// whitespace after it. A field of the wrong JSON type is reported by name.
func decodeTripRequest(body io.Reader) (service.TripRequest, error) {
	var req service.TripRequest
	if body == nil {
		return req, errBodyNotObject
	}
	dec := json.NewDecoder(body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return req, errBodyNotObject
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return req, errBodyNotObject
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return req, errBodyNotObject
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return req, fmt.Errorf("Invalid type for field: %s", typeErr.Field)
		}
		return req, errBodyNotObject
	}
	return req, nil
}

// PlanTrip handles POST /api/plan-trip.
func (h *TripHandler) PlanTrip(c *gin.Context) {
	if !isJSONContentType(c.ContentType()) {
		service.ObserveOutcome(service.OutcomeInvalid)
		writeError(c, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	req, err := decodeTripRequest(c.Request.Body)
	if err != nil {
		service.ObserveOutcome(service.OutcomeInvalid)
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.planner.PlanTrip(c.Request.Context(), req)
	if err != nil {
		var missing *service.MissingFieldsError
		var upstream *service.UpstreamError
		switch {
		case errors.As(err, &missing):
			writeError(c, http.StatusBadRequest, missing.Error())
		case errors.As(err, &upstream):
			writeError(c, http.StatusInternalServerError, upstream.Error())
		default:
			writeError(c, http.StatusInternalServerError, "Error generating itinerary: "+err.Error())
		}
		return
	}

	writeJSON(c, http.StatusOK, newPlanResponse(it))
}

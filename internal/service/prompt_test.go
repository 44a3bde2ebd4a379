package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func minimalRequest() TripRequest {
	return TripRequest{Destination: "Greece", Travelers: "2 adults", Duration: "5 days"}
}

func TestBuildTripPromptAppliesDefaults(t *testing.T) {
	prompt := BuildTripPrompt(minimalRequest().WithDefaults())

	for _, line := range []string{
		"- Destination: Greece\n",
		"- Travelers: 2 adults\n",
		"- Duration: 5 days\n",
		"- Travel Dates: Flexible\n",
		"- Budget: Moderate budget\n",
		"- Departing From: United States\n",
		"- Interests: sightseeing, culture, food\n",
		"- Preferred Pace: moderate\n",
	} {
		assert.Contains(t, prompt, line)
	}
	assert.NotContains(t, prompt, "Special Requests")
	// The overview runs straight into the deliverables with a single blank line.
	assert.Contains(t, prompt, "- Preferred Pace: moderate\n\n**Required Deliverables:**")
}

func TestBuildTripPromptSpecialRequests(t *testing.T) {
	req := minimalRequest()
	req.SpecialRequests = "vegetarian only"
	prompt := BuildTripPrompt(req.WithDefaults())

	var found bool
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "- Special Requests:") {
			found = true
			assert.True(t, strings.HasSuffix(line, "vegetarian only"), line)
		}
	}
	assert.True(t, found, "special requests line missing")

	req.SpecialRequests = ""
	assert.NotContains(t, BuildTripPrompt(req.WithDefaults()), "Special Requests")

	req.SpecialRequests = "   "
	assert.Contains(t, BuildTripPrompt(req.WithDefaults()), "- Special Requests:    \n")
}

func TestBuildTripPromptHasAllSections(t *testing.T) {
	prompt := BuildTripPrompt(minimalRequest().WithDefaults())
	for _, section := range []string{
		"1. **EXECUTIVE SUMMARY**",
		"2. **FLIGHTS & TRANSPORTATION**",
		"3. **ACCOMMODATIONS**",
		"4. **DETAILED DAY-BY-DAY ITINERARY**",
		"5. **RESTAURANT & DINING GUIDE**",
		"6. **ACTIVITIES & EXPERIENCES**",
		"7. **BUDGET BREAKDOWN**",
		"8. **PRACTICAL TIPS**",
		"9. **BOOKING CHECKLIST & TIMELINE**",
		"10. **CALENDAR EXPORT READY**",
	} {
		assert.Contains(t, prompt, section)
	}
}

func TestBuildTripPromptUsesSuppliedFields(t *testing.T) {
	req := TripRequest{
		Destination:   "Japan",
		Travelers:     "Family of 4",
		Duration:      "10 days",
		Dates:         "April 1-10, 2027",
		Budget:        "$12,000",
		DepartureCity: "Austin, Texas",
		Interests:     []string{"history", "food", "beaches"},
		Pace:          "relaxed",
	}
	prompt := BuildTripPrompt(req.WithDefaults())
	assert.Contains(t, prompt, "- Travel Dates: April 1-10, 2027\n")
	assert.Contains(t, prompt, "- Budget: $12,000\n")
	assert.Contains(t, prompt, "- Departing From: Austin, Texas\n")
	assert.Contains(t, prompt, "- Interests: history, food, beaches\n")
	assert.Contains(t, prompt, "- Preferred Pace: relaxed\n")
}

func TestSystemPromptIsStatic(t *testing.T) {
	assert.True(t, strings.HasPrefix(SystemPrompt, "You are an expert travel planning AI agent"))
	assert.NotContains(t, SystemPrompt, "%s")
}

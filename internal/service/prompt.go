package service

import (
	"fmt"
	"strings"
)

// SystemPrompt is the static persona sent as the system instruction.
const SystemPrompt = `You are an expert travel planning AI agent with 20+ years of experience in creating personalized travel itineraries. You have deep knowledge of destinations worldwide, cultural insights, logistics optimization, and budget management.

Your approach is:
- Thorough and detail-oriented
- Culturally sensitive and authentic
- Budget-conscious while maximizing value
- Focused on creating memorable experiences
- Practical with realistic timing and logistics

You create comprehensive travel plans that include:
- Flight recommendations with specific airlines and routes
- Accommodation suggestions with pricing
- Day-by-day detailed itineraries
- Restaurant and dining recommendations
- Activity bookings and timing
- Transportation logistics
- Budget breakdown
- Pro tips and local insights`

const tripOverviewHeader = "Create a comprehensive, personalized travel itinerary with the following parameters:\n\n**Trip Overview:**\n"

// deliverables is the fixed ten-section outline that follows the overview.
const deliverables = `
**Required Deliverables:**

1. **EXECUTIVE SUMMARY** (2-3 paragraphs)
   - Trip overview and highlights
   - What makes this itinerary special
   - Budget summary

2. **FLIGHTS & TRANSPORTATION**
   - Specific flight recommendations (airline, route, approximate pricing)
   - Airport transfers
   - Local transportation options
   - Inter-city travel if applicable

3. **ACCOMMODATIONS**
   - Hotel/lodging recommendations for each location
   - Why each is a good fit
   - Approximate nightly rates and total
   - Booking tips

4. **DETAILED DAY-BY-DAY ITINERARY**
   For EACH day include:
   - Day number and date
   - Morning activities (with times)
   - Lunch recommendations
   - Afternoon activities
   - Dinner suggestions
   - Evening options
   - Approximate costs per activity
   - Pro tips and insider advice

5. **RESTAURANT & DINING GUIDE**
   - 10-15 restaurant recommendations
   - Cuisine type, price range, why recommended
   - Reservation requirements

6. **ACTIVITIES & EXPERIENCES**
   - Must-do attractions with timing and cost
   - Hidden gems
   - Cultural experiences
   - Family-friendly options
   - Booking requirements

7. **BUDGET BREAKDOWN**
   - Flights: $X
   - Accommodations: $X
   - Activities: $X
   - Meals: $X
   - Transportation: $X
   - Contingency: $X
   - **Total: $X**

8. **PRACTICAL TIPS**
   - Best time to visit attractions (avoid crowds)
   - What to pack
   - Cultural etiquette
   - Money-saving tips
   - Safety considerations
   - Phone/internet recommendations

9. **BOOKING CHECKLIST & TIMELINE**
   - What to book immediately
   - What to book 1-2 months before
   - What to book upon arrival
   - Required reservations

10. **CALENDAR EXPORT READY**
    - Format the itinerary so it can be easily added to digital calendars
    - Include specific times and locations

**Style Guidelines:**
- Be specific with names, prices, and timing
- Use real hotel/restaurant names when possible
- Include approximate costs in USD
- Write in a friendly, enthusiastic tone
- Make it practical and actionable
- Include pro tips that show local knowledge

Generate a complete, professional travel plan that someone could actually use to book and enjoy this trip!`

// BuildTripPrompt renders the task instruction for an already defaulted request.
// The special requests line is written only when the field is non-empty.
func BuildTripPrompt(r TripRequest) string {
	var b strings.Builder
	b.WriteString(tripOverviewHeader)
	fmt.Fprintf(&b, "- Destination: %s\n", r.Destination)
	fmt.Fprintf(&b, "- Travelers: %s\n", r.Travelers)
	fmt.Fprintf(&b, "- Duration: %s\n", r.Duration)
	fmt.Fprintf(&b, "- Travel Dates: %s\n", r.Dates)
	fmt.Fprintf(&b, "- Budget: %s\n", r.Budget)
	fmt.Fprintf(&b, "- Departing From: %s\n", r.DepartureCity)
	fmt.Fprintf(&b, "- Interests: %s\n", r.InterestList())
	fmt.Fprintf(&b, "- Preferred Pace: %s\n", r.Pace)
	if r.SpecialRequests != "" {
		fmt.Fprintf(&b, "- Special Requests: %s\n", r.SpecialRequests)
	}
	b.WriteString(deliverables)
	return b.String()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"travelplanner/internal/ai"
	"travelplanner/internal/config"
	"travelplanner/internal/service"
)

func main() {
	destination := flag.String("destination", "Greece", "trip destination")
	travelers := flag.String("travelers", "Family of 4 (2 adults, 2 young adults)", "who is travelling")
	duration := flag.String("duration", "7 days", "trip length")
	interests := flag.String("interests", "history,food,beaches", "comma-separated interests")
	special := flag.String("special", "", "special requests")
	send := flag.Bool("send", false, "dispatch the prompt to the configured provider")
	flag.Parse()

	req := service.TripRequest{
		Destination:     *destination,
		Travelers:       *travelers,
		Duration:        *duration,
		SpecialRequests: *special,
	}
	for _, in := range strings.Split(*interests, ",") {
		if in = strings.TrimSpace(in); in != "" {
			req.Interests = append(req.Interests, in)
		}
	}
	if err := req.Validate(); err != nil {
		log.Fatal(err)
	}

	if !*send {
		fmt.Println(service.BuildTripPrompt(req.WithDefaults()))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.APIKey() == "" {
		log.Fatalf("%s environment variable not set", cfg.CredentialEnv())
	}

	ctx := context.Background()
	generator, closeGenerator, err := ai.NewGenerator(ctx, ai.ProviderConfig{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.AI.AnthropicBaseURL,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer closeGenerator()

	planner := service.NewTripPlanner(generator, service.Tariff{
		InputPerMTok:  cfg.Tariff.InputPerMTok,
		OutputPerMTok: cfg.Tariff.OutputPerMTok,
	}, nil, nil)

	it, err := planner.PlanTrip(ctx, req)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(it.Text)
	fmt.Printf("\nModel: %s\n", it.Model)
	fmt.Printf("Tokens: %d in / %d out\n", it.Usage.InputTokens, it.Usage.OutputTokens)
	fmt.Printf("Estimated cost: %s\n", it.Cost)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName    = "AI Travel Planning Agent"
	ServiceVersion = "1.0"
	PlanTripPath   = "/api/plan-trip"
)

type healthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Health handles GET /.
func Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, healthResponse{
		Status:    "online",
		Service:   ServiceName,
		Version:   ServiceVersion,
		Endpoints: map[string]string{"plan_trip": PlanTripPath},
	})
}

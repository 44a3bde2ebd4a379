// README: API gateway; registers HTTP routes and delegates to the trip planner.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"travelplanner/internal/http/handlers"
	"travelplanner/internal/http/middleware"
	"travelplanner/internal/service"
)

type ServerDeps struct {
	Planner *service.TripPlanner
	Logger  *zap.Logger
}

type Server struct {
	planner *service.TripPlanner
	log     *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		planner: deps.Planner,
		log:     log,
	}
}

// Routes builds the gin engine. Unknown paths (trailing-slash variants
// included) get a 404 envelope and known paths with the wrong method a 405 envelope.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.RedirectTrailingSlash = false
	r.Use(
		middleware.RequestID(),
		middleware.Logging(s.log),
		middleware.Metrics(),
		middleware.Recovery(s.log),
		middleware.CORS(),
	)

	r.GET("/", handlers.Health)

	tripHandler := handlers.NewTripHandler(s.planner)
	r.POST(handlers.PlanTripPath, tripHandler.PlanTrip)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(handlers.NotFound)
	r.NoMethod(handlers.MethodNotAllowed)
	return r
}

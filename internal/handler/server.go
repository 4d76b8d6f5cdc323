// Package handler implements the HTTP layer of the vehicle catalog API.
// Handlers decode and validate request bodies, call the service layer, and
// shape responses; no business rules live here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wonsz1/vehicle-catalog/internal/domain"
	"github.com/wonsz1/vehicle-catalog/internal/service"
)

// VehicleServicer defines the business operations the vehicle handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type VehicleServicer interface {
	Create(ctx context.Context, in service.VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, id int64, in service.VehicleInput) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	vehicles VehicleServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(vehicles VehicleServicer) *Server {
	return &Server{vehicles: vehicles}
}

// Routes returns the chi router for the full API surface.
// Mount it at "/" in main.go.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)
	r.Get("/vehicle-types", s.listVehicleTypes)

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.listVehicles)
		r.Post("/", s.createVehicle)
		r.Get("/{id}", s.getVehicle)
		r.Put("/{id}", s.updateVehicle)
		r.Delete("/{id}", s.deleteVehicle)
	})

	return r
}

// health handles GET /healthz. It reports process liveness only — no
// dependency checks, so a dead database does not flap the instance.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

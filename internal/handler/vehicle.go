package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/wonsz1/vehicle-catalog/internal/domain"
	"github.com/wonsz1/vehicle-catalog/internal/service"
)

var validate = validator.New()

// vehicleRequest is the JSON body of POST /vehicles and PUT /vehicles/{id}.
// The validate tags reject requests that could never satisfy the domain rules
// before the service layer is invoked; the domain re-validates regardless.
type vehicleRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=16"`
	Brand              string `json:"brand" validate:"required,max=60"`
	Model              string `json:"model" validate:"required,max=60"`
	Type               string `json:"type" validate:"required"`
}

// VehicleResponse is the JSON shape of a single vehicle.
type VehicleResponse struct {
	ID                 int64     `json:"id"`
	RegistrationNumber string    `json:"registrationNumber"`
	Brand              string    `json:"brand"`
	Model              string    `json:"model"`
	Type               string    `json:"type"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// VehicleListResponse wraps the collection returned by GET /vehicles.
type VehicleListResponse struct {
	Data []VehicleResponse `json:"data"`
}

// VehicleTypeResponse is one entry of GET /vehicle-types.
type VehicleTypeResponse struct {
	Value       string `json:"value"`
	DisplayName string `json:"displayName"`
}

// listVehicles handles GET /vehicles.
func (s *Server) listVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, VehicleListResponse{
		Data: lo.Map(vehicles, func(v *domain.Vehicle, _ int) VehicleResponse {
			return vehicleToResponse(v)
		}),
	})
}

// createVehicle handles POST /vehicles.
func (s *Server) createVehicle(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeVehicleRequest(w, r)
	if !ok {
		return
	}

	v, err := s.vehicles.Create(r.Context(), req.toInput())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, vehicleToResponse(v))
}

// getVehicle handles GET /vehicles/{id}.
func (s *Server) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	v, err := s.vehicles.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicleToResponse(v))
}

// updateVehicle handles PUT /vehicles/{id}.
func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}
	req, ok := decodeVehicleRequest(w, r)
	if !ok {
		return
	}

	v, err := s.vehicles.Update(r.Context(), id, req.toInput())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, vehicleToResponse(v))
}

// deleteVehicle handles DELETE /vehicles/{id}.
func (s *Server) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	if err := s.vehicles.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listVehicleTypes handles GET /vehicle-types: the closed category set with
// display labels, for populating client-side dropdowns.
func (s *Server) listVehicleTypes(w http.ResponseWriter, r *http.Request) {
	types := lo.Map(domain.AllVehicleTypes(), func(t domain.VehicleType, _ int) VehicleTypeResponse {
		return VehicleTypeResponse{Value: t.WireValue(), DisplayName: t.DisplayName()}
	})
	respondJSON(w, http.StatusOK, map[string][]VehicleTypeResponse{"data": types})
}

// ---- request/response mapping ----------------------------------------------

func (req vehicleRequest) toInput() service.VehicleInput {
	return service.VehicleInput{
		RegistrationNumber: req.RegistrationNumber,
		Brand:              req.Brand,
		Model:              req.Model,
		Type:               req.Type,
	}
}

// vehicleToResponse is the single stateless entity→DTO mapping function.
// Every response path goes through it so the wire shape cannot drift between
// endpoints.
func vehicleToResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID(),
		RegistrationNumber: v.RegistrationNumber().Value(),
		Brand:              v.Brand(),
		Model:              v.Model(),
		Type:               v.Type().WireValue(),
		CreatedAt:          v.CreatedAt(),
		UpdatedAt:          v.UpdatedAt(),
	}
}

// decodeVehicleRequest decodes and tag-validates the request body, writing
// the error response itself when the body is unusable.
func decodeVehicleRequest(w http.ResponseWriter, r *http.Request) (vehicleRequest, bool) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "request body must be valid JSON")
		return vehicleRequest{}, false
	}

	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
		return vehicleRequest{}, false
	}

	return req, true
}

// validationMessage renders the first tag violation as "field is required" /
// "field exceeds the allowed length" in the JSON field's casing.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}

	fields := map[string]string{
		"RegistrationNumber": "registrationNumber",
		"Brand":              "brand",
		"Model":              "model",
		"Type":               "type",
	}
	fe := verrs[0]
	name, ok := fields[fe.Field()]
	if !ok {
		name = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "max":
		return name + " cannot exceed " + fe.Param() + " characters"
	default:
		return name + " is invalid"
	}
}

// vehicleID parses the {id} path parameter, writing a 404 when it is not a
// positive integer — such a path can never name an existing vehicle.
func vehicleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusNotFound, "not_found", "vehicle not found")
		return 0, false
	}
	return id, true
}

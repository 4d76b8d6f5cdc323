// Package service contains the business logic for the vehicle catalog API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonsz1/vehicle-catalog/internal/domain"
	"github.com/wonsz1/vehicle-catalog/internal/repo"
)

// VehicleInput carries the raw strings of a create or update request.
// Parsing and validation happen in the domain package — the service only
// decides ordering and uniqueness policy.
type VehicleInput struct {
	RegistrationNumber string
	Brand              string
	Model              string
	Type               string
}

// VehicleService implements the catalog's use cases on top of VehicleRepo.
type VehicleService struct {
	vehicles repo.VehicleRepo
}

// NewVehicleService constructs a VehicleService backed by the provided repo.
func NewVehicleService(r repo.VehicleRepo) *VehicleService {
	return &VehicleService{vehicles: r}
}

// Create parses the input, builds a fresh aggregate, and persists it.
// A registration number already held by another vehicle yields
// domain.ErrConflict before the insert is attempted; the unique index
// covers the remaining race between two concurrent creators.
func (s *VehicleService) Create(ctx context.Context, in VehicleInput) (*domain.Vehicle, error) {
	reg, err := domain.NewRegistrationNumber(in.RegistrationNumber)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	vt, err := domain.ParseVehicleType(in.Type)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.Create: %w", err)
	}

	v, err := domain.NewVehicle(reg, in.Brand, in.Model, vt)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.Create: %w", err)
	}

	if err := s.ensureRegistrationFree(ctx, reg.Value(), 0); err != nil {
		return nil, fmt.Errorf("service.VehicleService.Create: %w", err)
	}

	if _, err := s.vehicles.Persist(ctx, v); err != nil {
		return nil, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	return v, nil
}

// Update loads the vehicle, applies the new details through the aggregate's
// own operation, and persists the result. The registration number is
// re-checked for uniqueness: moving to a plate held by a different vehicle
// is rejected with domain.ErrConflict, keeping update symmetrical with
// create rather than silently overwriting.
func (s *VehicleService) Update(ctx context.Context, id int64, in VehicleInput) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.Update: %w", err)
	}

	// Normalize first so the uniqueness check sees the stored form.
	reg, err := domain.NewRegistrationNumber(in.RegistrationNumber)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	if err := s.ensureRegistrationFree(ctx, reg.Value(), id); err != nil {
		return nil, fmt.Errorf("service.VehicleService.Update: %w", err)
	}

	if err := v.UpdateDetails(in.RegistrationNumber, in.Brand, in.Model, in.Type); err != nil {
		return nil, fmt.Errorf("service.VehicleService.Update: %w", err)
	}

	if _, err := s.vehicles.Persist(ctx, v); err != nil {
		return nil, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return v, nil
}

// GetByID returns a single vehicle by its id.
func (s *VehicleService) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.GetByID: %w", err)
	}
	return v, nil
}

// List returns all vehicles in the catalog.
func (s *VehicleService) List(ctx context.Context) ([]*domain.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.List: %w", err)
	}
	return vehicles, nil
}

// Delete removes a vehicle by id. The repo reports absence as a false flag;
// this layer turns it into domain.ErrNotFound for callers.
func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	removed, err := s.vehicles.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	if !removed {
		return fmt.Errorf("service.VehicleService.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ensureRegistrationFree returns domain.ErrConflict when value is already
// registered to a vehicle other than selfID. Pass selfID 0 on create.
// This check-then-write pair is not atomic against concurrent writers —
// the unique index translates the losing write to the same conflict error.
func (s *VehicleService) ensureRegistrationFree(ctx context.Context, value string, selfID int64) error {
	existing, err := s.vehicles.FindByRegistrationNumber(ctx, value)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID() != selfID {
		return domain.ErrConflict
	}
	return nil
}

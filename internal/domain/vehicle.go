// Package domain contains the vehicle aggregate and its value objects.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
//
// Vehicle is deliberately opaque: all fields are unexported and every
// mutation goes through a named operation that re-validates, so an invariant
// cannot be broken from outside the package.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// timeNow is swapped out in tests that need a deterministic clock.
var timeNow = time.Now

// Vehicle is the aggregate root of the catalog: one registered vehicle with
// its plate, brand/model metadata, category, and audit timestamps.
//
// ID is zero until the repository persists the vehicle for the first time and
// promotes it via AssignID; after that it never changes.
type Vehicle struct {
	id                 int64
	registrationNumber RegistrationNumber
	brand              string
	model              string
	vehicleType        VehicleType
	createdAt          time.Time
	updatedAt          time.Time
}

const brandModelMaxLen = 60

// NewVehicle builds a fresh, not-yet-persisted vehicle.
// Brand and model must be non-empty after trimming and at most 60 characters;
// a violation returns ErrValidation naming the field and no vehicle is
// constructed. Both timestamps are set to the same instant.
func NewVehicle(reg RegistrationNumber, brand, model string, t VehicleType) (*Vehicle, error) {
	if err := validateBrand(brand); err != nil {
		return nil, err
	}
	if err := validateModel(model); err != nil {
		return nil, err
	}

	now := timeNow().UTC()
	return &Vehicle{
		registrationNumber: reg,
		brand:              brand,
		model:              model,
		vehicleType:        t,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// Reconstitute rehydrates a vehicle from its stored row. It bypasses
// creation-time validation — the data was validated when it was written —
// and is intended for the repo layer only.
func Reconstitute(id int64, reg RegistrationNumber, brand, model string, t VehicleType, createdAt, updatedAt time.Time) *Vehicle {
	return &Vehicle{
		id:                 id,
		registrationNumber: reg,
		brand:              brand,
		model:              model,
		vehicleType:        t,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// AssignID promotes a freshly inserted vehicle to persisted form.
// It is called exactly once, by the repository, immediately after a
// successful insert. A second call (or a non-positive id) returns
// ErrIllegalState and leaves the existing id untouched.
func (v *Vehicle) AssignID(id int64) error {
	if v.id != 0 {
		return fmt.Errorf("%w: id can only be set once", ErrIllegalState)
	}
	if id <= 0 {
		return fmt.Errorf("%w: id must be a positive integer", ErrIllegalState)
	}
	v.id = id
	return nil
}

// UpdateDetails re-parses the registration number and type from their raw
// string forms, re-validates brand and model, and replaces all four fields.
// The replacement is all-or-nothing: if any input is invalid the vehicle is
// left exactly as it was. On success updatedAt is refreshed.
func (v *Vehicle) UpdateDetails(registrationNumber, brand, model, vehicleType string) error {
	reg, err := NewRegistrationNumber(registrationNumber)
	if err != nil {
		return err
	}
	t, err := ParseVehicleType(vehicleType)
	if err != nil {
		return err
	}
	if err := validateBrand(brand); err != nil {
		return err
	}
	if err := validateModel(model); err != nil {
		return err
	}

	v.registrationNumber = reg
	v.vehicleType = t
	v.brand = brand
	v.model = model
	v.updatedAt = timeNow().UTC()
	return nil
}

// ID returns the persisted identity, or 0 when the vehicle has not been
// inserted yet. Use IsPersisted to branch on lifecycle state.
func (v *Vehicle) ID() int64 { return v.id }

// IsPersisted reports whether the vehicle has been assigned its database id.
func (v *Vehicle) IsPersisted() bool { return v.id != 0 }

// RegistrationNumber returns the plate value object.
func (v *Vehicle) RegistrationNumber() RegistrationNumber { return v.registrationNumber }

// Brand returns the manufacturer name, e.g. "Toyota".
func (v *Vehicle) Brand() string { return v.brand }

// Model returns the model name, e.g. "Corolla".
func (v *Vehicle) Model() string { return v.model }

// Type returns the vehicle category.
func (v *Vehicle) Type() VehicleType { return v.vehicleType }

// CreatedAt returns the creation timestamp. Set once, never refreshed.
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns the last-mutation timestamp.
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

func validateBrand(brand string) error {
	if strings.TrimSpace(brand) == "" {
		return fmt.Errorf("%w: brand cannot be empty", ErrValidation)
	}
	if len(brand) > brandModelMaxLen {
		return fmt.Errorf("%w: brand cannot exceed %d characters", ErrValidation, brandModelMaxLen)
	}
	return nil
}

func validateModel(model string) error {
	if strings.TrimSpace(model) == "" {
		return fmt.Errorf("%w: model cannot be empty", ErrValidation)
	}
	if len(model) > brandModelMaxLen {
		return fmt.Errorf("%w: model cannot exceed %d characters", ErrValidation, brandModelMaxLen)
	}
	return nil
}

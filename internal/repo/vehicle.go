// Package repo contains all database access logic for the vehicle catalog.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wonsz1/vehicle-catalog/internal/domain"
)

// uniqueViolation is the SQLSTATE Postgres reports when an insert or update
// breaks a unique index, here the one on registration_number.
const uniqueViolation = "23505"

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly allows
// integration tests to pass a transaction that is rolled back after each
// test, giving free per-test isolation without any manual cleanup. Begin is
// part of the interface because Persist opens its own transaction; when the
// repo itself runs inside a pgx.Tx, Begin starts a savepoint.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// VehicleRepo defines the persistence operations for Vehicles.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// Every method wraps driver failures in domain.ErrStorage with the cause
// attached. The repository never rejects a duplicate registration number
// itself — the unique index does, and Persist translates that violation to
// domain.ErrConflict so the check-then-write race between two creators still
// surfaces as a conflict rather than a raw SQL error.
type VehicleRepo interface {
	// List returns all vehicles in insertion (id) order.
	// An empty table yields an empty slice, not an error.
	List(ctx context.Context) ([]*domain.Vehicle, error)

	// GetByID retrieves a single vehicle by its integer primary key.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)

	// FindByRegistrationNumber retrieves a single vehicle by the unique
	// registration_number column. Returns domain.ErrNotFound when absent.
	// Callers use it to pre-check uniqueness before writing.
	FindByRegistrationNumber(ctx context.Context, value string) (*domain.Vehicle, error)

	// Persist is an insert-or-update decided by whether the vehicle has an
	// id. The insert path generates the id, assigns it on the passed-in
	// aggregate, and stamps created_at = updated_at; the update path keys on
	// the existing id and stamps a fresh updated_at. Either way the whole
	// write runs in one transaction and the same aggregate is returned.
	Persist(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)

	// DeleteByID removes a vehicle row. It reports whether a row was
	// actually removed; deleting an absent id is not an error.
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// pgVehicleRepo is the Postgres implementation of VehicleRepo.
type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db handle.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation. The repo never opens its own connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

const vehicleColumns = `id, registration_number, brand, model, type, created_at, updated_at`

// List returns all vehicles ordered by id (insertion order).
func (r *pgVehicleRepo) List(ctx context.Context) ([]*domain.Vehicle, error) {
	const q = `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, storageErr("List", err)
	}
	defer rows.Close()

	vehicles := []*domain.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.List: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("List", err)
	}

	return vehicles, nil
}

// GetByID retrieves a vehicle by primary key.
func (r *pgVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	const q = `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("repo.VehicleRepo.GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.VehicleRepo.GetByID: %w", err)
	}
	return v, nil
}

// FindByRegistrationNumber retrieves a vehicle by its unique plate value.
func (r *pgVehicleRepo) FindByRegistrationNumber(ctx context.Context, value string) (*domain.Vehicle, error) {
	const q = `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE registration_number = @registration_number`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"registration_number": value})
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("repo.VehicleRepo.FindByRegistrationNumber: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.VehicleRepo.FindByRegistrationNumber: %w", err)
	}
	return v, nil
}

// Persist writes the aggregate's state as one row inside one transaction.
// A failure anywhere before commit rolls the whole write back, leaving the
// previous row state (or no row, for inserts) unchanged.
func (r *pgVehicleRepo) Persist(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storageErr("Persist", err)
	}
	// Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	if v.IsPersisted() {
		if err := r.update(ctx, tx, v, now); err != nil {
			return nil, err
		}
	} else {
		if err := r.insert(ctx, tx, v, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("Persist", err)
	}
	return v, nil
}

// insert writes a new row with created_at = updated_at = now, then promotes
// the aggregate with the generated id.
func (r *pgVehicleRepo) insert(ctx context.Context, tx pgx.Tx, v *domain.Vehicle, now time.Time) error {
	const q = `
		INSERT INTO vehicles (registration_number, brand, model, type, created_at, updated_at)
		VALUES (@registration_number, @brand, @model, @type, @now, @now)
		RETURNING id`

	args := pgx.NamedArgs{
		"registration_number": v.RegistrationNumber().Value(),
		"brand":               v.Brand(),
		"model":               v.Model(),
		"type":                v.Type().WireValue(),
		"now":                 now,
	}

	var id int64
	if err := tx.QueryRow(ctx, q, args).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.VehicleRepo.Persist: %w", domain.ErrConflict)
		}
		return storageErr("Persist", err)
	}

	return v.AssignID(id)
}

// update overwrites all mutable columns keyed by the existing id and stamps
// a fresh updated_at. created_at is deliberately not touched.
func (r *pgVehicleRepo) update(ctx context.Context, tx pgx.Tx, v *domain.Vehicle, now time.Time) error {
	const q = `
		UPDATE vehicles
		SET registration_number = @registration_number,
		    brand               = @brand,
		    model               = @model,
		    type                = @type,
		    updated_at          = @now
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":                  v.ID(),
		"registration_number": v.RegistrationNumber().Value(),
		"brand":               v.Brand(),
		"model":               v.Model(),
		"type":                v.Type().WireValue(),
		"now":                 now,
	}

	tag, err := tx.Exec(ctx, q, args)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.VehicleRepo.Persist: %w", domain.ErrConflict)
		}
		return storageErr("Persist", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.Persist: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteByID removes a vehicle by primary key and reports whether a row
// actually went away. Absence is not an error — the service layer decides
// how to present it.
func (r *pgVehicleRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM vehicles WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, storageErr("DeleteByID", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanVehicle to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanVehicle maps a single database row into a rehydrated *domain.Vehicle.
func scanVehicle(s scanner) (*domain.Vehicle, error) {
	var (
		id                   int64
		regRaw               string
		brand, model         string
		typeRaw              string
		createdAt, updatedAt time.Time
	)

	if err := s.Scan(&id, &regRaw, &brand, &model, &typeRaw, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	// Stored values were validated at write time; a parse failure here means
	// the row was modified outside the application.
	reg, err := domain.NewRegistrationNumber(regRaw)
	if err != nil {
		return nil, fmt.Errorf("corrupt registration_number in row %d: %w", id, err)
	}
	vt, err := domain.ParseVehicleType(typeRaw)
	if err != nil {
		return nil, fmt.Errorf("corrupt type in row %d: %w", id, err)
	}

	return domain.Reconstitute(id, reg, brand, model, vt, createdAt, updatedAt), nil
}

// storageErr wraps a driver error in domain.ErrStorage with the failing
// operation named, keeping the cause reachable via errors.Is/As.
func storageErr(op string, err error) error {
	return fmt.Errorf("repo.VehicleRepo.%s: %w: %w", op, domain.ErrStorage, err)
}

// isUniqueViolation reports whether err is a Postgres unique-index violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

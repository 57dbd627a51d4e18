// Package repository provides data access for leads.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a lead does not exist.
var ErrNotFound = errors.New("lead not found")

// DB is the subset of pgxpool.Pool the repository uses. Tests substitute a
// pgxmock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Lead is the persisted lead row.
type Lead struct {
	ID           int64
	Name         string
	Email        string
	Phone        *string
	AppName      *string
	FacilityType *string
	Area         *float64
	HazardLevel  *string
	TotalUnits   *int
	Data         []byte
	Status       string
	CreatedAt    time.Time
}

// NewLead holds the insertable fields of a lead.
type NewLead struct {
	Name         string
	Email        string
	Phone        *string
	AppName      *string
	FacilityType *string
	Area         *float64
	HazardLevel  *string
	TotalUnits   *int
	Data         []byte
}

// Repository provides lead persistence.
type Repository struct {
	db DB
}

// New creates a lead repository.
func New(db DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a lead and returns its generated id and creation time.
func (r *Repository) Create(ctx context.Context, lead NewLead) (int64, time.Time, error) {
	var (
		id        int64
		createdAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		INSERT INTO leads (name, email, phone, app_name, facility_type, area, hazard_level, total_units, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, lead.Name, lead.Email, lead.Phone, lead.AppName, lead.FacilityType,
		lead.Area, lead.HazardLevel, lead.TotalUnits, lead.Data).Scan(&id, &createdAt)
	if err != nil {
		return 0, time.Time{}, err
	}
	return id, createdAt, nil
}

// List returns all leads ordered newest first.
func (r *Repository) List(ctx context.Context) ([]Lead, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, phone, app_name, facility_type, area, hazard_level, total_units, data, status, created_at
		FROM leads
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		var item Lead
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Phone, &item.AppName,
			&item.FacilityType, &item.Area, &item.HazardLevel, &item.TotalUnits,
			&item.Data, &item.Status, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

// UpdateStatus moves a lead through the pipeline. Returns the previous status
// so the service can publish a status-change event.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) (string, error) {
	var oldStatus string
	err := r.db.QueryRow(ctx, `
		UPDATE leads AS l
		SET status = $1
		FROM (SELECT id, status FROM leads WHERE id = $2 FOR UPDATE) AS prev
		WHERE l.id = prev.id
		RETURNING prev.status
	`, status, id).Scan(&oldStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return oldStatus, nil
}

// GetStatus returns the current status of a lead.
func (r *Repository) GetStatus(ctx context.Context, id int64) (string, error) {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM leads WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

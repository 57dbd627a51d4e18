package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func strPtr(s string) *string { return &s }

func TestCreateReturnsIDAndCreatedAt(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	area := 560.0
	units := 4

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs("Ali", "ali@example.com", strPtr("+966501234567"), strPtr("Extinguisher Estimator"),
			strPtr("warehouse"), &area, strPtr("light"), &units, []byte(`{"kind":"extinguishers"}`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	id, createdAt, err := repo.Create(context.Background(), NewLead{
		Name:         "Ali",
		Email:        "ali@example.com",
		Phone:        strPtr("+966501234567"),
		AppName:      strPtr("Extinguisher Estimator"),
		FacilityType: strPtr("warehouse"),
		Area:         &area,
		HazardLevel:  strPtr("light"),
		TotalUnits:   &units,
		Data:         []byte(`{"kind":"extinguishers"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if !createdAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, createdAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)

	newer := time.Now()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`(?s)SELECT.+FROM leads.+ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "phone", "app_name", "facility_type",
			"area", "hazard_level", "total_units", "data", "status", "created_at",
		}).
			AddRow(int64(2), "B", "b@example.com", nil, nil, nil, nil, nil, nil, nil, "New", newer).
			AddRow(int64(1), "A", "a@example.com", nil, nil, nil, nil, nil, nil, nil, "Contacted", older))

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(items))
	}
	if items[0].ID != 2 || items[1].ID != 1 {
		t.Fatalf("expected newest first, got %d then %d", items[0].ID, items[1].ID)
	}
	if items[1].Status != "Contacted" {
		t.Fatalf("status lost in scan: %q", items[1].Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusReturnsPreviousStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("UPDATE leads").
		WithArgs("Contacted", int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("New"))

	oldStatus, err := repo.UpdateStatus(context.Background(), 7, "Contacted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oldStatus != "New" {
		t.Fatalf("expected previous status New, got %q", oldStatus)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("UPDATE leads").
		WithArgs("Archived", int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), 99, "Archived")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT status FROM leads").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("New"))

	status, err := repo.GetStatus(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "New" {
		t.Fatalf("expected New, got %q", status)
	}

	mock.ExpectQuery("SELECT status FROM leads").
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetStatus(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

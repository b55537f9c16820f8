package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/infra/adapter/persistence/postgres"
)

/* ──────────────────────────────── ヘルパ ──────────────────────────────── */

func rows(updates ...entity.ManualUpdate) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{"company", "type", "title", "description", "date"})
	for _, u := range updates {
		r.AddRow(u.Company, string(u.Category), u.Title, u.Description, u.Date)
	}
	return r
}

/* ──────────────────────────────── 1. Load ──────────────────────────────── */

func TestUpdateRepo_Load(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	a := entity.ManualUpdate{Company: "Mombak", Category: entity.CategoryFunding, Title: "a", Description: "d", Date: "January 02, 2025"}
	b := entity.ManualUpdate{Company: "Moxair", Category: entity.CategoryOther, Title: "b", Description: "d", Date: "January 03, 2025"}
	c := entity.ManualUpdate{Company: "Mombak", Category: entity.CategoryProductLaunch, Title: "c", Description: "d", Date: "January 04, 2025"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM manual_updates`)).
		WillReturnRows(rows(a, b, c))

	repo := postgres.NewUpdateRepo(db)
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}

	want := map[string][]entity.ManualUpdate{
		"Mombak": {a, c},
		"Moxair": {b},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateRepo_Load_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM manual_updates`).WillReturnRows(rows())

	got, err := postgres.NewUpdateRepo(db).Load(context.Background())
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil map, got %#v", got)
	}
}

func TestUpdateRepo_Load_QueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM manual_updates`).WillReturnError(sql.ErrConnDone)

	_, err := postgres.NewUpdateRepo(db).Load(context.Background())
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("want ErrConnDone, got %v", err)
	}
}

/* ──────────────────────────────── 2. Append ──────────────────────────────── */

func TestUpdateRepo_Append(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	u := entity.ManualUpdate{
		Company:     "Mombak",
		Category:    entity.CategoryFunding,
		Title:       "Series B closed",
		Description: "Raised $50M",
		Date:        "March 04, 2025",
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO manual_updates`)).
		WithArgs("Mombak", "Funding News", "Series B closed", "Raised $50M", "March 04, 2025").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := postgres.NewUpdateRepo(db).Append(context.Background(), u); err != nil {
		t.Fatalf("Append err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateRepo_Append_Error(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO manual_updates`).WillReturnError(sql.ErrTxDone)

	err := postgres.NewUpdateRepo(db).Append(context.Background(), entity.ManualUpdate{Company: "Mombak"})
	if !errors.Is(err, sql.ErrTxDone) {
		t.Fatalf("want ErrTxDone, got %v", err)
	}
}

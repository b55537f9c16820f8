package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/observability/metrics"
	"climate-dashboard/internal/repository"
)

const driverName = "postgres"

// UpdateRepo stores manual updates in the manual_updates table.
// Insertion order is the BIGSERIAL id, and each Append is a single INSERT.
type UpdateRepo struct{ db *sql.DB }

func NewUpdateRepo(db *sql.DB) repository.UpdateRepository {
	return &UpdateRepo{db: db}
}

func (repo *UpdateRepo) Load(ctx context.Context) (map[string][]entity.ManualUpdate, error) {
	const query = `
SELECT company, type, title, description, date
FROM manual_updates
ORDER BY id ASC`
	start := time.Now()
	state, err := repo.load(ctx, query)
	metrics.RecordStoreOperation(driverName, "load", time.Since(start), err)
	return state, err
}

func (repo *UpdateRepo) load(ctx context.Context, query string) (map[string][]entity.ManualUpdate, error) {
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer func() { _ = rows.Close() }()

	state := make(map[string][]entity.ManualUpdate)
	for rows.Next() {
		var u entity.ManualUpdate
		var category string
		if err := rows.Scan(&u.Company, &category, &u.Title, &u.Description, &u.Date); err != nil {
			return nil, fmt.Errorf("Load: scan: %w", err)
		}
		u.Category = entity.Category(category)
		state[u.Company] = append(state[u.Company], u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	return state, nil
}

func (repo *UpdateRepo) Append(ctx context.Context, u entity.ManualUpdate) error {
	const query = `
INSERT INTO manual_updates (company, type, title, description, date)
VALUES ($1, $2, $3, $4, $5)`
	start := time.Now()
	_, err := repo.db.ExecContext(ctx, query, u.Company, string(u.Category), u.Title, u.Description, u.Date)
	if err != nil {
		err = fmt.Errorf("Append: %w", err)
	}
	metrics.RecordStoreOperation(driverName, "append", time.Since(start), err)
	return err
}

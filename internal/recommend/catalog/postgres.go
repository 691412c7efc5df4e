package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

var _ Catalog = (*PostgresCatalog)(nil)

// Querier is the subset of *pgxpool.Pool the catalog needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresCatalog reads reviewed places from the places table.
type PostgresCatalog struct {
	logger *slog.Logger
	db     Querier
}

func NewPostgresCatalog(db Querier, logger *slog.Logger) *PostgresCatalog {
	return &PostgresCatalog{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresCatalog) Places(ctx context.Context) ([]types.Place, error) {
	query := `
        SELECT id, name, category, latitude, longitude, rating, COALESCE(reviews, '')
        FROM places
        ORDER BY category, name
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query places", slog.Any("error", err))
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	var places []types.Place
	for rows.Next() {
		var (
			id uuid.UUID
			p  types.Place
		)
		if err := rows.Scan(&id, &p.Name, &p.Category, &p.Latitude, &p.Longitude, &p.Rating, &p.Reviews); err != nil {
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}
		p.ID = id.String()
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating place rows: %w", err)
	}

	r.logger.InfoContext(ctx, "Loaded places from database", slog.Int("count", len(places)))
	return places, nil
}

// Seed inserts places that are not in the table yet, keyed by name and
// category. It returns the number of rows written.
func (r *PostgresCatalog) Seed(ctx context.Context, places []types.Place) (int64, error) {
	query := `
        INSERT INTO places (id, name, category, latitude, longitude, rating, reviews)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (name, category) DO NOTHING
    `
	var written int64
	for _, p := range places {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			id = uuid.NewSHA1(placeNamespace, []byte(p.Category+"|"+p.Name))
		}
		tag, err := r.db.Exec(ctx, query, id, p.Name, p.Category, p.Latitude, p.Longitude, p.Rating, p.Reviews)
		if err != nil {
			return written, fmt.Errorf("failed to insert place %q: %w", p.Name, err)
		}
		written += tag.RowsAffected()
	}
	return written, nil
}

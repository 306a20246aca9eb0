package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Mainak-2006/rn-zomato/internal/cart"
)

// DBPool matches the methods from *pgxpool.Pool the repository uses, so tests
// can substitute pgxmock.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const foodColumns = `id, name, price, COALESCE(rating, 0), restaurant, category, COALESCE(description, ''), COALESCE(veg, false), COALESCE(image_url, '')`

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, COALESCE(image_url, '') FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Restaurants(ctx context.Context) ([]Restaurant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, address, category, COALESCE(delivery_time, ''), COALESCE(image_url, ''), COALESCE(rating, 0)
		FROM restaurants
		ORDER BY rating DESC NULLS LAST, name
	`)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var rs Restaurant
		if err := rows.Scan(&rs.ID, &rs.Name, &rs.Address, &rs.Category, &rs.DeliveryTime, &rs.ImageURL, &rs.Rating); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Foods(ctx context.Context) ([]Food, error) {
	return r.queryFoods(ctx, `SELECT `+foodColumns+` FROM foods ORDER BY name`)
}

func (r *PostgresRepository) FoodsByRestaurant(ctx context.Context, restaurant string) ([]Food, error) {
	return r.queryFoods(ctx, `SELECT `+foodColumns+` FROM foods WHERE restaurant=$1 ORDER BY name`, restaurant)
}

func (r *PostgresRepository) Food(ctx context.Context, id string) (Food, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+foodColumns+` FROM foods WHERE id=$1`, id)
	f, err := scanFood(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Food{}, ErrNotFound
		}
		return Food{}, fmt.Errorf("get food %s: %w", id, err)
	}
	return f, nil
}

func (r *PostgresRepository) queryFoods(ctx context.Context, sql string, args ...any) ([]Food, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	var out []Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// scanFood reads one food row. Prices are stored as text and normalised
// here; anything unparseable becomes zero.
func scanFood(row pgx.Row) (Food, error) {
	var (
		f     Food
		price string
	)
	if err := row.Scan(&f.ID, &f.Name, &price, &f.Rating, &f.Restaurant, &f.Category, &f.Description, &f.Veg, &f.ImageURL); err != nil {
		return Food{}, err
	}
	f.Price, _ = cart.NormalizePrice(price)
	return f, nil
}

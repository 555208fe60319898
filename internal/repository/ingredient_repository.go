package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cookfarm/pantry-service/internal/domain"
)

// IngredientRepository encapsulates ingredient persistence.
// List methods return ingredients in creation order.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *domain.Ingredient) error
	Update(ctx context.Context, ingredient *domain.Ingredient) error
	GetByID(ctx context.Context, id string) (*domain.Ingredient, error)
	// GetByName returns the earliest created ingredient with exactly this name.
	GetByName(ctx context.Context, name string) (*domain.Ingredient, error)
	ListAll(ctx context.Context) ([]domain.Ingredient, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Ingredient, error)
	// Delete removes the ingredient and reports whether a record existed.
	Delete(ctx context.Context, id string) (bool, error)
}

const ingredientColumns = `id, user_id, name, category, added_date, expiry_date, memo, created_at, updated_at`

type ingredientRepository struct {
	pool *pgxpool.Pool
}

// NewIngredientRepository instantiates repository.
func NewIngredientRepository(pool *pgxpool.Pool) IngredientRepository {
	return &ingredientRepository{pool: pool}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	if !validID(ingredient.UserID) {
		return ErrNotFound
	}
	const query = `
        INSERT INTO ingredients (user_id, name, category, added_date, expiry_date, memo)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		ingredient.UserID,
		ingredient.Name,
		ingredient.Category,
		ingredient.AddedDate.Time(),
		ingredient.ExpiryDate.Time(),
		ingredient.Memo,
	).Scan(&ingredient.ID, &ingredient.CreatedAt, &ingredient.UpdatedAt)
	return translate(err)
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	if !validID(ingredient.ID) {
		return ErrNotFound
	}
	const query = `
        UPDATE ingredients SET name=$1, category=$2, added_date=$3, expiry_date=$4, memo=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		ingredient.Name,
		ingredient.Category,
		ingredient.AddedDate.Time(),
		ingredient.ExpiryDate.Time(),
		ingredient.Memo,
		ingredient.ID,
	).Scan(&ingredient.UpdatedAt)
	return translate(err)
}

func (r *ingredientRepository) GetByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ingredientRepository) GetByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE name=$1 ORDER BY created_at, id LIMIT 1`
	return r.fetchSingle(ctx, query, name)
}

func (r *ingredientRepository) ListAll(ctx context.Context) ([]domain.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIngredients(rows)
}

func (r *ingredientRepository) ListByUser(ctx context.Context, userID string) ([]domain.Ingredient, error) {
	if !validID(userID) {
		return []domain.Ingredient{}, nil
	}
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE user_id=$1 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIngredients(rows)
}

func (r *ingredientRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ingredients WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ingredientRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ingredient, error) {
	ingredient, err := scanIngredient(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translate(err)
	}
	return ingredient, nil
}

func scanIngredient(row pgx.Row) (*domain.Ingredient, error) {
	var (
		ingredient domain.Ingredient
		added      time.Time
		expiry     time.Time
	)
	if err := row.Scan(
		&ingredient.ID,
		&ingredient.UserID,
		&ingredient.Name,
		&ingredient.Category,
		&added,
		&expiry,
		&ingredient.Memo,
		&ingredient.CreatedAt,
		&ingredient.UpdatedAt,
	); err != nil {
		return nil, err
	}
	ingredient.AddedDate = domain.DateOf(added)
	ingredient.ExpiryDate = domain.DateOf(expiry)
	return &ingredient, nil
}

func scanIngredients(rows pgx.Rows) ([]domain.Ingredient, error) {
	result := []domain.Ingredient{}
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ingredient)
	}
	return result, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

const recipeDefaultIndex = "recipes_one_default_per_product"

// RecipeRepo fichas técnicas sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de fichas técnicas.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create inserta la ficha y sus líneas. Debe ejecutarse dentro de una tx para que sea atómico.
func (r *RecipeRepo) Create(ctx context.Context, recipe *entity.Recipe) error {
	query := `
		INSERT INTO recipes (id, product_id, name, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, recipe.ID, nullable(recipe.ProductID), recipe.Name, recipe.IsDefault, recipe.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == recipeDefaultIndex {
			return domain.ErrDefaultRecipeExists
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	lineQuery := `
		INSERT INTO recipe_lines (id, recipe_id, material_id, quantity_per_unit, position)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range recipe.Lines {
		l := &recipe.Lines[i]
		l.RecipeID = recipe.ID
		if _, err := r.q.Exec(ctx, lineQuery, l.ID, l.RecipeID, l.MaterialID, l.QuantityPerUnit, l.Position); err != nil {
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}

// GetByID ficha con sus líneas; nil si no existe.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `
		SELECT id, COALESCE(product_id::text, ''), name, is_default, created_at
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, id).Scan(&rec.ID, &rec.ProductID, &rec.Name, &rec.IsDefault, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Recipe{&rec}); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByProduct fichas del producto, la más reciente primero.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Recipe, error) {
	return r.list(ctx, `product_id = $1`, productID)
}

// ListDefaultsByProduct fichas por defecto del producto, la más reciente primero.
// Con el índice parcial hay a lo sumo una; el orden decide si los datos lo violan.
func (r *RecipeRepo) ListDefaultsByProduct(ctx context.Context, productID string) ([]*entity.Recipe, error) {
	return r.list(ctx, `product_id = $1 AND is_default`, productID)
}

func (r *RecipeRepo) list(ctx context.Context, where string, args ...any) ([]*entity.Recipe, error) {
	query := `
		SELECT id, COALESCE(product_id::text, ''), name, is_default, created_at
		FROM recipes WHERE ` + where + `
		ORDER BY created_at DESC, seq DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Name, &rec.IsDefault, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *RecipeRepo) loadLines(ctx context.Context, recipes []*entity.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Recipe, len(recipes))
	ids := make([]string, 0, len(recipes))
	for _, rec := range recipes {
		byID[rec.ID] = rec
		ids = append(ids, rec.ID)
	}
	query := `
		SELECT id, recipe_id, material_id, quantity_per_unit, position
		FROM recipe_lines WHERE recipe_id = ANY($1::uuid[])
		ORDER BY recipe_id, position, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.RecipeID, &l.MaterialID, &l.QuantityPerUnit, &l.Position); err != nil {
			return fmt.Errorf("scan recipe line: %w", err)
		}
		rec := byID[l.RecipeID]
		rec.Lines = append(rec.Lines, l)
	}
	return rows.Err()
}

// ClearDefault desmarca la ficha por defecto del producto.
func (r *RecipeRepo) ClearDefault(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `UPDATE recipes SET is_default = false WHERE product_id = $1 AND is_default`, productID)
	if err != nil {
		return fmt.Errorf("clear default recipe: %w", err)
	}
	return nil
}

// SetDefault marca la ficha como por defecto. Llamar antes a ClearDefault en la misma tx.
func (r *RecipeRepo) SetDefault(ctx context.Context, recipeID string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE recipes SET is_default = true WHERE id = $1`, recipeID)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == recipeDefaultIndex {
			return domain.ErrDefaultRecipeExists
		}
		return fmt.Errorf("set default recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

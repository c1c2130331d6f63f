package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeyev/eduboard/internal/pkg/categorytree"
)

// CategoryRepository reads the platform's course category tree. The tree is
// fetched flat once per request; descendant resolution happens in memory.
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAllNodes returns every category as a flat (id, parent) list.
func (r *CategoryRepository) GetAllNodes(ctx context.Context) ([]categorytree.Node, error) {
	rows, err := r.db.Query(ctx, `SELECT id, parent_id FROM course_categories`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []categorytree.Node
	for rows.Next() {
		var n categorytree.Node
		if err := rows.Scan(&n.ID, &n.ParentID); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return nodes, nil
}

// SubtreeIDs returns the ids of the category and all its descendants.
func (r *CategoryRepository) SubtreeIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	nodes, err := r.GetAllNodes(ctx)
	if err != nil {
		return nil, err
	}

	ids := categorytree.Descendants(categoryID, nodes)
	return append(ids, categoryID), nil
}

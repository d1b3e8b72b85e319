package store

import (
	"context"
	"sync"

	"github.com/dotcomico/dotmarket-client/internal/apperrors"
	"github.com/dotcomico/dotmarket-client/internal/model"
)

// CategoryAPI is the slice of the API client the category container
// needs.
type CategoryAPI interface {
	GetCategoryTree(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int, input model.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

// WriteResult is the outcome of a category write. The error is already
// display-ready.
type WriteResult struct {
	Success bool
	Error   string
}

// CategoryStats summarizes the cached tree for the back office.
type CategoryStats struct {
	Total    int
	Parents  int
	Children int
}

// Categories caches the full category hierarchy. Writes go to the
// server and then unconditionally refetch the whole tree instead of
// patching locally, so the cached tree never silently diverges from
// server truth.
type Categories struct {
	api CategoryAPI

	mu      sync.Mutex
	tree    []model.Category
	loading bool
	errMsg  string
}

// NewCategories creates an empty category container backed by api.
func NewCategories(api CategoryAPI) *Categories {
	return &Categories{api: api}
}

// Fetch replaces the tree on success. On failure the tree is cleared
// and the error recorded, so stale structure is never served.
func (c *Categories) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	tree, err := c.api.GetCategoryTree(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.errMsg = apperrors.Message(err, "Failed to load categories")
		apperrors.Log(err, "categories.fetch")
		c.tree = nil
		return err
	}

	c.tree = tree
	return nil
}

// Create submits a new category then refetches the tree.
func (c *Categories) Create(ctx context.Context, input model.CategoryInput) WriteResult {
	if _, err := c.api.CreateCategory(ctx, input); err != nil {
		return c.writeFailed(err, "Failed to create category", "categories.create")
	}
	c.refresh(ctx)
	return WriteResult{Success: true}
}

// Update submits changes to a category then refetches the tree.
func (c *Categories) Update(ctx context.Context, id int, input model.CategoryInput) WriteResult {
	if _, err := c.api.UpdateCategory(ctx, id, input); err != nil {
		return c.writeFailed(err, "Failed to update category", "categories.update")
	}
	c.refresh(ctx)
	return WriteResult{Success: true}
}

// Delete removes a category then refetches the tree.
func (c *Categories) Delete(ctx context.Context, id int) WriteResult {
	if err := c.api.DeleteCategory(ctx, id); err != nil {
		return c.writeFailed(err, "Failed to delete category", "categories.delete")
	}
	c.refresh(ctx)
	return WriteResult{Success: true}
}

func (c *Categories) writeFailed(err error, fallback, context string) WriteResult {
	msg := apperrors.Message(err, fallback)
	apperrors.Log(err, context)

	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
	return WriteResult{Success: false, Error: msg}
}

// refresh refetches after a successful write. A refetch failure is
// already recorded by Fetch; the write itself still succeeded.
func (c *Categories) refresh(ctx context.Context) {
	_ = c.Fetch(ctx)
}

// ByID finds a category at any depth of the tree.
func (c *Categories) ByID(id int) *model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return findCategory(c.tree, id)
}

func findCategory(categories []model.Category, id int) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			cat := categories[i]
			return &cat
		}
		if found := findCategory(categories[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

// BySlug finds a category at any depth by its storefront slug.
func (c *Categories) BySlug(slug string) *model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return findCategoryBySlug(c.tree, slug)
}

func findCategoryBySlug(categories []model.Category, slug string) *model.Category {
	for i := range categories {
		if categories[i].Slug == slug {
			cat := categories[i]
			return &cat
		}
		if found := findCategoryBySlug(categories[i].Children, slug); found != nil {
			return found
		}
	}
	return nil
}

// Flat returns the tree flattened in pre-order: each parent precedes
// its children.
func (c *Categories) Flat() []model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return flattenCategories(c.tree)
}

func flattenCategories(categories []model.Category) []model.Category {
	var flat []model.Category
	for _, cat := range categories {
		flat = append(flat, cat)
		flat = append(flat, flattenCategories(cat.Children)...)
	}
	return flat
}

// Parents returns the root-level categories as cached.
func (c *Categories) Parents() []model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()

	parents := make([]model.Category, len(c.tree))
	copy(parents, c.tree)
	return parents
}

// Stats summarizes the cached tree.
func (c *Categories) Stats() CategoryStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	flat := flattenCategories(c.tree)
	parents := len(c.tree)
	return CategoryStats{
		Total:    len(flat),
		Parents:  parents,
		Children: len(flat) - parents,
	}
}

// IsLoading reports whether a fetch is in flight.
func (c *Categories) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last recorded display message, or "".
func (c *Categories) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// ClearErr drops the recorded error message.
func (c *Categories) ClearErr() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
}

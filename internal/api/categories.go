package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dotcomico/dotmarket-client/internal/model"
)

func categoryFormFields(in model.CategoryInput) map[string]string {
	fields := map[string]string{
		"name": in.Name,
		"slug": in.Slug,
		"icon": in.Icon,
	}
	if in.ParentID != nil {
		fields["parentId"] = strconv.Itoa(*in.ParentID)
	}
	return fields
}

// ListCategories fetches the flat category collection.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryTree fetches the full root-to-leaf hierarchy.
func (c *Client) GetCategoryTree(ctx context.Context) ([]model.Category, error) {
	var tree []model.Category
	if err := c.get(ctx, "/categories/tree", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// GetCategory fetches a single category by id.
func (c *Client) GetCategory(ctx context.Context, id int) (*model.Category, error) {
	var category model.Category
	if err := c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug resolves a category from its storefront slug.
func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := c.get(ctx, "/categories/slug/"+slug, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategoryProducts fetches the products filed under a slug.
func (c *Client) ListCategoryProducts(ctx context.Context, slug string) (*model.ProductPage, error) {
	var page model.ProductPage
	if err := c.get(ctx, "/categories/"+slug+"/products", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateCategory creates a category (admin only).
func (c *Client) CreateCategory(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	var category model.Category
	if err := c.sendForm(ctx, "POST", "/categories", categoryFormFields(input), "image", input.ImagePath, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a category (admin only).
func (c *Client) UpdateCategory(ctx context.Context, id int, input model.CategoryInput) (*model.Category, error) {
	var category model.Category
	if err := c.sendForm(ctx, "PUT", fmt.Sprintf("/categories/%d", id), categoryFormFields(input), "image", input.ImagePath, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category (admin only).
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/categories/%d", id))
}

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dotcomico/dotmarket-client/internal/model"
)

// ProductInput carries the writable product fields. Admin create/update
// calls send these as multipart form data so an image can ride along.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  int
	// ImagePath, when set, is a local file attached to the request.
	ImagePath string
}

func (in ProductInput) formFields() map[string]string {
	return map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"price":       strconv.FormatFloat(in.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(in.Stock),
		"categoryId":  strconv.Itoa(in.CategoryID),
	}
}

// ListProducts fetches one page of products with optional filters.
func (c *Client) ListProducts(ctx context.Context, filters *model.ProductFilters) (*model.ProductPage, error) {
	query := url.Values{}
	if filters != nil {
		if filters.Search != "" {
			query.Set("search", filters.Search)
		}
		if filters.Category != "" {
			query.Set("category", filters.Category)
		}
		if filters.MinPrice > 0 {
			query.Set("minPrice", strconv.FormatFloat(filters.MinPrice, 'f', -1, 64))
		}
		if filters.MaxPrice > 0 {
			query.Set("maxPrice", strconv.FormatFloat(filters.MaxPrice, 'f', -1, 64))
		}
		if filters.Page > 0 {
			query.Set("page", strconv.Itoa(filters.Page))
		}
		if filters.Limit > 0 {
			query.Set("limit", strconv.Itoa(filters.Limit))
		}
	}

	var page model.ProductPage
	if err := c.get(ctx, "/products", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	var product model.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product (admin only).
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	var product model.Product
	if err := c.sendForm(ctx, "POST", "/products", input.formFields(), "image", input.ImagePath, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates a product (admin only).
func (c *Client) UpdateProduct(ctx context.Context, id int, input ProductInput) (*model.Product, error) {
	var product model.Product
	if err := c.sendForm(ctx, "PUT", fmt.Sprintf("/products/%d", id), input.formFields(), "image", input.ImagePath, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product (admin only).
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/products/%d", id))
}

package model

// Category is one node of the classification tree. ParentID is nil for
// root categories. Children is populated by the tree endpoint only.
type Category struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *int       `json:"parentId"`
	Icon     string     `json:"icon"`
	Image    string     `json:"image"`
	Children []Category `json:"children,omitempty"`
}

// IsRoot reports whether the category sits at the top of the tree.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryInput carries the fields for creating or updating a category.
// Image uploads travel as multipart form data alongside these fields.
type CategoryInput struct {
	Name     string
	Slug     string
	ParentID *int
	Icon     string
	// ImagePath, when set, is a local file attached to the request.
	ImagePath string
}

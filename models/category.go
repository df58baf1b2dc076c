package models

// Category represents a category record as exchanged with the REST backend.
// ID stays nil until the backend assigns one on creation.
type Category struct {
	ID          *uint  `json:"id"`
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description"`
}

// HasID reports whether the record has been persisted.
func (c Category) HasID() bool {
	return c.ID != nil
}

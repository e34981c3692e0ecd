package model

// Category is a calendar category as returned by the category listing.
// Events reference it by id; the name/color pair is denormalized onto the
// event payload as a CategoryRef.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Ref returns the denormalized view of the category.
func (c Category) Ref() *CategoryRef {
	return &CategoryRef{Name: c.Name, Color: c.Color}
}

package models

// Category is a flat grouping for products. Products reference it by name,
// not by foreign key, so a rename does not touch product rows.
type Category struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ImagePath *string `json:"image_path"`
}

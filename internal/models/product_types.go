package models

// Product is a catalog entry. Category is the denormalized category name.
// ImageURL is derived on read: the path of the image with the smallest
// display order, or null when the product has no images.
type Product struct {
	ID          int64          `json:"id"`
	Name        string         `json:"product_name"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Interest    string         `json:"interest"`
	ImageURL    *string        `json:"image_url"`
	Images      []ProductImage `json:"images"`
}

// ProductImage is one gallery entry for a product. Display order 0 is the
// primary image.
type ProductImage struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	ImagePath    string `json:"image_path"`
	DisplayOrder int    `json:"display_order"`
}

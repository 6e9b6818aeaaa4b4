package models

// CartItem is one line of a cart document. Name and price are copied from the
// product at the time it was added.
type CartItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Cart is the single JSON document stored per user in Redis. Total is always
// the sum of price*quantity over all lines; every mutation below recomputes
// it, so a stored document is never out of sync with its items.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// NewCart returns an empty cart that serializes as {items: [], total: 0}.
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// AddItem merges the item into the cart: if a line with the same product ID
// already exists its quantity is incremented, otherwise the item is appended.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.recomputeTotal()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.recomputeTotal()
}

// SetQuantity sets an explicit quantity for a product line. Quantity 0
// removes the line. Lines for unknown product IDs are left untouched.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity == 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			break
		}
	}
	c.recomputeTotal()
}

// RemoveItem drops the line for the given product ID, if present.
func (c *Cart) RemoveItem(productID int64) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.recomputeTotal()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) recomputeTotal() {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.Total = total
}

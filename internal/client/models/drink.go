package models

// Drink is a product registered through the admin tool.
type Drink struct {
	Name       string `validate:"required"`
	Barcode    string `validate:"required"`
	ContentML  int    `validate:"gte=0"`
	PriceCents int64  `validate:"gt=0"`
}

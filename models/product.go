// models/product.go
package models

// Product is a catalog entry from PRD_MASTER. Price is tax-inclusive yen.
type Product struct {
	ID       int64  `json:"product_id"`
	Code     string `json:"product_code" binding:"required,max=13"`
	Name     string `json:"product_name" binding:"required,max=50"`
	Price    int64  `json:"product_price" binding:"min=0"`
	Color    string `json:"color" binding:"max=30"`
	ItemCode string `json:"item_code" binding:"max=20"`
	FullName string `json:"full_name" binding:"max=100"`
}

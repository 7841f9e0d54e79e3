// models/purchase.go
package models

// PurchaseItem is one scanned product handed to the recorder.
type PurchaseItem struct {
	ProductID    int64
	ProductCode  string
	ProductName  string
	ProductPrice int64
}

// PurchaseItemRequest is one scanned product as sent by the register. Every
// field is mandatory; a zero price is valid, so price is a pointer to tell
// it apart from a missing one.
type PurchaseItemRequest struct {
	ProductID    int64  `json:"product_id" binding:"required"`
	ProductCode  string `json:"product_code" binding:"required,max=13"`
	ProductName  string `json:"product_name" binding:"required,max=100"`
	ProductPrice *int64 `json:"product_price" binding:"required,min=0"`
}

// ToItem converts a bound request item; call it only after validation.
func (r PurchaseItemRequest) ToItem() PurchaseItem {
	return PurchaseItem{
		ProductID:    r.ProductID,
		ProductCode:  r.ProductCode,
		ProductName:  r.ProductName,
		ProductPrice: *r.ProductPrice,
	}
}

// PurchaseRequest is the body of POST /purchase. An empty item list binds
// and is rejected by the recorder with its own message.
type PurchaseRequest struct {
	StaffCode string                `json:"register_staff_code"`
	StoreCode string                `json:"store_code"`
	PosID     string                `json:"pos_id"`
	Items     []PurchaseItemRequest `json:"items" binding:"dive"`
}

type PurchaseResponse struct {
	Success          bool   `json:"success"`
	TotalAmount      int64  `json:"total_amount"`
	TotalAmountExTax int64  `json:"total_amount_ex_tax"`
	TaxAmount        int64  `json:"tax_amount"`
	TransactionID    int64  `json:"transaction_id"`
	Message          string `json:"message"`
}

// models/transaction.go
package models

import "time"

// Transaction is a TRD header. TotalAmount is tax-inclusive and equals the
// sum of its lines' prices.
type Transaction struct {
	ID               int64             `json:"transaction_id"`
	CreatedAt        time.Time         `json:"datetime"`
	StaffCode        string            `json:"register_staff_code"`
	StoreCode        string            `json:"store_code"`
	PosID            string            `json:"pos_id"`
	TotalAmount      int64             `json:"total_amount"`
	TotalAmountExTax int64             `json:"total_amount_ex_tax"`
	Lines            []TransactionLine `json:"items,omitempty"`
}

// TransactionLine is a TRD_DTL row: a snapshot of the product at the time
// of sale, keyed by (TransactionID, LineNo).
type TransactionLine struct {
	TransactionID int64  `json:"transaction_id"`
	LineNo        int    `json:"line_no"`
	ProductID     int64  `json:"product_id"`
	ProductCode   string `json:"product_code"`
	ProductName   string `json:"product_name"`
	ProductPrice  int64  `json:"product_price"`
	TaxCode       string `json:"tax_code"`
}

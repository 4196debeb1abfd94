package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable coupon. It is not a
// database entity; it is composed from sale or service-order data at print
// time.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	Title         string        `json:"title"`
	DocumentNo    string        `json:"document_no"`
	Date          string        `json:"date"`
	Operator      string        `json:"operator,omitempty"`
	Customer      string        `json:"customer,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	SubTotal      float64       `json:"sub_total"`
	Shipping      float64       `json:"shipping,omitempty"`
	Total         float64       `json:"total"`
	Footer        string        `json:"footer,omitempty"`
}

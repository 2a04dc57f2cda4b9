package records

import "time"

// Record is one product/leaflet entry. Document holds the raw PDF bytes;
// encoding/json transports []byte as base64, so the base64 form exists only
// on the wire and the store keeps opaque bytes.
type Record struct {
	ID          int64     `json:"id"`
	SAPID       string    `json:"sapId"`
	ProductName string    `json:"productName"`
	Date        string    `json:"date"`
	Document    []byte    `json:"document"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

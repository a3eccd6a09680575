package request

// PrintReceiptRequest is the request body for printing a ticket.
type PrintReceiptRequest struct {
	Type string `json:"type" binding:"required,oneof=transaction closure"`
	ID   string `json:"id" binding:"required,uuid"`
}

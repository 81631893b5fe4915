package request

import "strings"

type SubmitBookingRequest struct {
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

// ActionRequest is the shared body for admin lifecycle actions. The note is
// optional and lands in the status history when present.
type ActionRequest struct {
	Note *string `json:"note,omitempty" binding:"omitempty,max=500"`
}

func (r ActionRequest) GetNote() *string {
	if r.Note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// TokenActionRequest carries the customer's response token for mutating
// token-guarded actions. Read-only lookups take the token as a query param.
type TokenActionRequest struct {
	Token string `json:"token" binding:"required,len=64,hexadecimal"`
}

type TokenQueryRequest struct {
	Token string `form:"token" binding:"required,len=64,hexadecimal"`
}

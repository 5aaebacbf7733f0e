package dto

// CustomerFilter is bound from query string of GET /v1/customers.
type CustomerFilter struct {
	// Active: "true" (default, autocomplete source) | "false" | "all"
	Active string `form:"active,default=true"`
	Type   string `form:"type" validate:"omitempty,oneof=customer partner"`
	Search string `form:"search"`
}

type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
	Type    string  `json:"type" validate:"omitempty,oneof=customer partner"`
}

type UpdateCustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
	Type    string  `json:"type" validate:"omitempty,oneof=customer partner"`
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Type      string  `json:"type"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}

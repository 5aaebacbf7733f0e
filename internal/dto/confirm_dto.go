package dto

// ConfirmRequest exchanges the delete passcode for a one-time token.
type ConfirmRequest struct {
	Code string `json:"code" validate:"required"`
}

type ConfirmResponse struct {
	Token string `json:"token"`
}

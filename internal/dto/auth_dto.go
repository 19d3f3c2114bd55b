package dto

type LoginRequest struct {
	Name string `json:"name" validate:"required"`
	Pin  string `json:"pin" validate:"required,min=4"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

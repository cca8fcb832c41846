package dto

type CredentialDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenDTO struct {
	Token string `json:"token"`
}

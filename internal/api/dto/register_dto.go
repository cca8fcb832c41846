package dto

type RegisterDTO struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=1,max=50"`
	Password  string `json:"password" validate:"required,min=8,max=64"`
	Password2 string `json:"password2" validate:"required"`
}

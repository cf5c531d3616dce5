package handler

import "github.com/vendora/catalog-api/internal/core/ports"

type registerRequest struct {
	Name     string `json:"name"     form:"name"     example:"Alice"`
	Email    string `json:"email"    form:"email"    example:"alice@example.com"`
	Password string `json:"password" form:"password" example:"s3cret!"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    example:"alice@example.com"`
	Password string `json:"password" form:"password" example:"s3cret!"`
}

func (r loginRequest) toInput() ports.LoginInput {
	return ports.LoginInput{Email: r.Email, Password: r.Password}
}

type logoutRequest struct {
	Token string `json:"token" form:"token"`
}

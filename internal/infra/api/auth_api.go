package api

import (
	"context"
	"net/http"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
	"github.com/bonangpanjinur/desawisata/internal/repository"
)

// 認証API（/auth）
type AuthAPI struct {
	c *Client
}

// DI
func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserData *model.User `json:"user_data"`
	Token    string      `json:"token"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"nama_lengkap"`
}

func (a *AuthAPI) Login(ctx context.Context, username string, password string) (model.Session, error) {
	var out loginResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return model.Session{}, err
	}

	return model.Session{User: out.UserData, Token: out.Token}, nil
}

func (a *AuthAPI) Register(ctx context.Context, in repository.RegisterInput) error {
	req := registerRequest{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
	}
	return a.c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

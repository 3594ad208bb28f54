package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ppob-dashboard/internal/domain/model"
	"ppob-dashboard/internal/domain/ports/gateway"
)

var _ gateway.UserGateway = (*UserClient)(nil)

type UserClient struct {
	c *Client
}

func NewUserClient(c *Client) *UserClient { return &UserClient{c: c} }

func (u *UserClient) Profile(ctx context.Context) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := u.c.do(ctx, http.MethodGet, "/user/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (u *UserClient) UpdateProfile(ctx context.Context, upd gateway.ProfileUpdate) (*model.User, error) {
	var out struct {
		Message string     `json:"message"`
		User    model.User `json:"user"`
	}
	if err := u.c.do(ctx, http.MethodPut, "/user/profile", nil, upd, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (u *UserClient) Balance(ctx context.Context) (int64, error) {
	var out struct {
		Balance struct {
			Balance int64 `json:"balance"`
		} `json:"balance"`
	}
	if err := u.c.do(ctx, http.MethodGet, "/user/balance", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Balance.Balance, nil
}

func (u *UserClient) Transactions(ctx context.Context, page, limit int) ([]model.Transaction, *model.Pagination, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	var out struct {
		Transactions []model.Transaction `json:"transactions"`
		Pagination   model.Pagination    `json:"pagination"`
	}
	if err := u.c.do(ctx, http.MethodGet, "/user/transactions", q, nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Transactions, &out.Pagination, nil
}

func (u *UserClient) ChangePassword(ctx context.Context, chg gateway.PasswordChange) (string, error) {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := u.c.do(ctx, http.MethodPost, "/user/change-password", nil, chg, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

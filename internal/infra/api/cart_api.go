package api

import (
	"context"
	"net/http"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
)

// リモートカートAPI（/pembeli/cart）
type CartAPI struct {
	c *Client
}

// DI
func NewCartAPI(c *Client) *CartAPI {
	return &CartAPI{c: c}
}

// バックエンドは { "cart": [...] } を期待する
type syncCartRequest struct {
	Cart []model.LineItem `json:"cart"`
}

func (a *CartAPI) Fetch(ctx context.Context) ([]model.LineItem, error) {
	var items []model.LineItem
	if err := a.c.do(ctx, http.MethodGet, "/pembeli/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Sync は現在のカート全体を送る（全置換マージ）。
// サーバーがマージ後の確定カートを返す。
func (a *CartAPI) Sync(ctx context.Context, items []model.LineItem) ([]model.LineItem, error) {
	if items == nil {
		items = []model.LineItem{}
	}

	var merged []model.LineItem
	if err := a.c.do(ctx, http.MethodPost, "/pembeli/cart/sync", syncCartRequest{Cart: items}, &merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (a *CartAPI) Clear(ctx context.Context) error {
	return a.c.do(ctx, http.MethodDelete, "/pembeli/cart", nil, nil)
}

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
	"github.com/bonangpanjinur/desawisata/internal/repository"
)

// カタログAPI（/produk）
type ProductAPI struct {
	c *Client
}

// DI
func NewProductAPI(c *Client) *ProductAPI {
	return &ProductAPI{c: c}
}

func (a *ProductAPI) ListProducts(ctx context.Context, q repository.ProductQuery) ([]model.Product, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}

	path := "/produk"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var products []model.Product
	if err := a.c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (a *ProductAPI) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	if err := a.c.do(ctx, http.MethodGet, "/produk/slug/"+url.PathEscape(slug), nil, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

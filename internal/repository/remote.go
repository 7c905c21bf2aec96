package repository

import (
	"context"
	"errors"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
)

// 対象が見つかりませんを統一
var ErrNotFound = errors.New("not found")

// リモートのカートAPI。トークンを持つセッションでのみ呼ぶ。
type RemoteCart interface {
	Fetch(ctx context.Context) ([]model.LineItem, error)
	// 全置換マージ。サーバーがマージ後の確定カートを返す
	Sync(ctx context.Context, items []model.LineItem) ([]model.LineItem, error)
	Clear(ctx context.Context) error
}

// 会員登録の入力
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// 認証API
type AuthAPI interface {
	Login(ctx context.Context, username string, password string) (model.Session, error)
	Register(ctx context.Context, in RegisterInput) error
}

// 商品一覧の絞り込み
type ProductQuery struct {
	Search  string
	Page    int
	PerPage int
}

// カタログAPI（カートに入れる商品データの取得元）
type ProductAPI interface {
	ListProducts(ctx context.Context, q ProductQuery) ([]model.Product, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)
}

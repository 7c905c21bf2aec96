package repository

import (
	"context"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
)

// ローカルに保存したカートのスナップショット置き場。
// メモリ上のカートが常に正で、ここは耐久ミラー。
type CartStorage interface {
	// 保存が無ければ空スライスを返す（エラーにしない）
	Load(ctx context.Context) ([]model.LineItem, error)
	// スナップショット全置換で保存
	Save(ctx context.Context, items []model.LineItem) error
	Clear(ctx context.Context) error
}

package repository

import (
	"context"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"
)

// ローカルに保存したセッション（user＋token）。カートとは別レコード。
type SessionStorage interface {
	// 保存が無ければゼロ値Sessionを返す（エラーにしない）
	Load(ctx context.Context) (model.Session, error)
	Save(ctx context.Context, s model.Session) error
	Clear(ctx context.Context) error
}

package repository

import (
	"context"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"

	"gorm.io/gorm"
)

// カートスナップショットの1行。positionで表示順（投入順）を保つ。
type cartItemRecord struct {
	Position int64          `gorm:"primaryKey;autoIncrement:false"`
	Item     model.LineItem `gorm:"embedded"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

type CartStorageGorm struct {
	db *gorm.DB
}

// DI
func NewCartStorageGorm(db *gorm.DB) *CartStorageGorm {
	return &CartStorageGorm{db: db}
}

func (r *CartStorageGorm) Load(ctx context.Context) ([]model.LineItem, error) {
	var recs []cartItemRecord
	if err := r.db.WithContext(ctx).Order("position asc").Find(&recs).Error; err != nil {
		return nil, err
	}

	items := make([]model.LineItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.Item)
	}
	return items, nil
}

// Save はスナップショット全置換（全削除→並び順付きで挿入）。
func (r *CartStorageGorm) Save(ctx context.Context, items []model.LineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&cartItemRecord{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		recs := make([]cartItemRecord, 0, len(items))
		for i, item := range items {
			recs = append(recs, cartItemRecord{Position: int64(i), Item: item})
		}
		return tx.Create(&recs).Error
	})
}

func (r *CartStorageGorm) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&cartItemRecord{}).Error
}

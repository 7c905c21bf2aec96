package repository

import (
	"context"
	"errors"

	"github.com/bonangpanjinur/desawisata/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// セッションは1行だけ（id固定）
const sessionRecordID = 1

type sessionRecord struct {
	ID    int64       `gorm:"primaryKey"`
	User  *model.User `gorm:"serializer:json"`
	Token string
}

func (sessionRecord) TableName() string { return "sessions" }

type SessionStorageGorm struct {
	db *gorm.DB
}

// DI
func NewSessionStorageGorm(db *gorm.DB) *SessionStorageGorm {
	return &SessionStorageGorm{db: db}
}

func (r *SessionStorageGorm) Load(ctx context.Context) (model.Session, error) {
	var rec sessionRecord
	err := r.db.WithContext(ctx).First(&rec, sessionRecordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 保存が無い＝未ログイン。エラーにしない
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, err
	}

	return model.Session{User: rec.User, Token: rec.Token}, nil
}

func (r *SessionStorageGorm) Save(ctx context.Context, s model.Session) error {
	rec := sessionRecord{ID: sessionRecordID, User: s.User, Token: s.Token}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
}

func (r *SessionStorageGorm) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&sessionRecord{}, sessionRecordID).Error
}

// Migrate はローカル保存用のテーブルを作成する。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&cartItemRecord{}, &sessionRecord{})
}

package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRepository MySQL存储槽
type SlotRepository struct {
	db  *gorm.DB
	key string
}

// NewSlotRepository 创建存储槽
func NewSlotRepository(db *gorm.DB, key string) *SlotRepository {
	return &SlotRepository{db: db, key: key}
}

// Read 读取槽内容，行不存在时返回(nil, nil)
func (r *SlotRepository) Read(ctx context.Context) ([]byte, error) {
	var model SlotModel
	err := r.db.WithContext(ctx).Where("slot_key = ?", r.key).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取存储槽失败: %w", err)
	}
	return model.Payload, nil
}

// Write 覆盖写入
// INSERT ... ON DUPLICATE KEY UPDATE payload, updated_at
func (r *SlotRepository) Write(ctx context.Context, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	model := SlotModel{SlotKey: r.key, Payload: data}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("写入存储槽失败: %w", err)
	}
	return nil
}

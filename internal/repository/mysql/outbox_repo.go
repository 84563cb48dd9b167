package mysql

import (
	"encoding/json"
	"time"

	"Lee_Groups/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// Insert 在调用方事务内写入一条 pending 事件行
func (r *OutboxRepository) Insert(tx *gorm.DB, eventType string, actorID, groupID uint64) error {
	payload, err := json.Marshal(map[string]any{
		"event":    eventType,
		"actor_id": actorID,
		"group_id": groupID,
		"ts":       time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	return tx.Create(&model.GroupEvent{
		EventType: eventType,
		ActorID:   actorID,
		GroupID:   groupID,
		Payload:   string(payload),
		Status:    0,
	}).Error
}

func (r *OutboxRepository) ListPending(limit int) ([]model.GroupEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var list []model.GroupEvent
	err := r.DB.Where("status = 0").Order("id").Limit(limit).Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(id uint64) error {
	return r.DB.Model(&model.GroupEvent{}).
		Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkFailed(id uint64) error {
	return r.DB.Model(&model.GroupEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": 2,
			"retry":  gorm.Expr("retry + 1"),
		}).Error
}

package mysql

import (
	"Lee_Groups/internal/model"

	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

func (r *ConversationRepository) Create(conv *model.Conversation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		oRepo := &OutboxRepository{DB: tx}
		return oRepo.Insert(tx, "message_posted", conv.UserID, conv.GroupID)
	})
}

func (r *ConversationRepository) FindByID(id uint64) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.First(&conv, id).Error
	return &conv, err
}

// ListByGroup 按主键顺序返回，即插入顺序
func (r *ConversationRepository) ListByGroup(groupID uint64) ([]model.Conversation, error) {
	var list []model.Conversation
	err := r.DB.Where("group_id = ?", groupID).Order("id").Find(&list).Error
	return list, err
}

func (r *ConversationRepository) DeleteByID(id uint64) error {
	return r.DB.Delete(&model.Conversation{}, id).Error
}

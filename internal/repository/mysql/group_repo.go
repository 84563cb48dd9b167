package mysql

import (
	"Lee_Groups/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

// Create 建群并让创建者入群，外加 outbox 事件行，同一事务
func (r *GroupRepository) Create(g *model.Group) (*model.Group, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}

		if err := tx.Create(&model.Member{
			UserID:  g.CreatorID,
			GroupID: g.ID,
		}).Error; err != nil {
			return err
		}

		oRepo := &OutboxRepository{DB: tx}
		return oRepo.Insert(tx, "group_created", g.CreatorID, g.ID)
	})
	return g, err
}

func (r *GroupRepository) FindByID(id uint64) (*model.Group, error) {
	var group model.Group
	err := r.DB.First(&group, id).Error
	return &group, err
}

func (r *GroupRepository) FindByPublicID(publicID string) (*model.Group, error) {
	var group model.Group
	err := r.DB.Where("public_id = ?", publicID).First(&group).Error
	return &group, err
}

func (r *GroupRepository) ListAll() ([]model.Group, error) {
	var list []model.Group
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

// DeleteCascade 显式级联删除：发言 -> 成员 -> outbox -> 群组，按序一事务
func (r *GroupRepository) DeleteCascade(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return r.deleteCascadeTx(tx, id)
	})
}

func (r *GroupRepository) deleteCascadeTx(tx *gorm.DB, id uint64) error {
	if err := tx.Where("group_id = ?", id).Delete(&model.Conversation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("group_id = ?", id).Delete(&model.Member{}).Error; err != nil {
		return err
	}
	if err := tx.Where("group_id = ?", id).Delete(&model.GroupEvent{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Group{}, id).Error
}

package mysql

import (
	"Lee_Groups/internal/model"

	"gorm.io/gorm"
)

type MemberRepository struct {
	DB *gorm.DB
}

// Join 无条件插入，重复加入产生重复行（与原始行为一致）
func (r *MemberRepository) Join(member *model.Member) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		oRepo := &OutboxRepository{DB: tx}
		return oRepo.Insert(tx, "member_joined", member.UserID, member.GroupID)
	})
}

// RemoveFirst 按 (群组, 用户) 定位后删除第一条匹配的成员行
func (r *MemberRepository) RemoveFirst(groupID, userID uint64) error {
	var member model.Member
	if err := r.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		Order("id").First(&member).Error; err != nil {
		return err
	}
	return r.DB.Delete(&model.Member{}, member.ID).Error
}

func (r *MemberRepository) ListByGroup(groupID uint64) ([]model.Member, error) {
	var list []model.Member
	err := r.DB.Where("group_id = ?", groupID).Order("id").Find(&list).Error
	return list, err
}

func (r *MemberRepository) GroupIDsForUser(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.Member{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids).Error
	return ids, err
}

func (r *MemberRepository) IsMember(groupID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Member{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

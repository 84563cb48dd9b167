package mysql

import (
	"Lee_Groups/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByPublicID(publicID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("public_id = ?", publicID).First(&user).Error
	return &user, err
}

func (r *UserRepository) ListAll() ([]model.User, error) {
	var list []model.User
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

// DeleteCascade 显式级联删除：先删名下群组（各自级联），再删成员关系和发言，最后删用户
func (r *UserRepository) DeleteCascade(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		gRepo := &GroupRepository{DB: tx}

		var owned []model.Group
		if err := tx.Where("creator_id = ?", id).Find(&owned).Error; err != nil {
			return err
		}
		for _, g := range owned {
			if err := gRepo.deleteCascadeTx(tx, g.ID); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.Member{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Conversation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}

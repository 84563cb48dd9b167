package service

import (
	"context"
	"errors"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/repository/mysql"

	"github.com/google/uuid"
)

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrNotGroupOwner  = errors.New("not the group owner")
	ErrMemberNotFound = errors.New("member not found")
)

type GroupService struct {
	repo       *mysql.GroupRepository
	memberRepo *mysql.MemberRepository
	userRepo   *mysql.UserRepository
	relayer    *EventRelayer // 可为 nil
}

func NewGroupService(repo *mysql.GroupRepository, memberRepo *mysql.MemberRepository, userRepo *mysql.UserRepository, relayer *EventRelayer) *GroupService {
	return &GroupService{
		repo:       repo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		relayer:    relayer,
	}
}

// CreateGroup 建群，创建者随事务自动成为成员
func (s *GroupService) CreateGroup(ctx context.Context, owner *model.User, title string) (*model.Group, error) {
	if title == "" {
		return nil, errors.New("group title required")
	}

	group := &model.Group{
		PublicID:  uuid.NewString(),
		Title:     pkg.TitleCase(title),
		CreatorID: owner.ID,
	}
	if _, err := s.repo.Create(group); err != nil {
		return nil, err
	}

	s.relayer.Dispatch(ctx)
	return group, nil
}

// JoinGroup 无条件加入，重复调用产生重复成员行（与原始行为一致）
func (s *GroupService) JoinGroup(ctx context.Context, user *model.User, groupPublicID string) (*model.Group, error) {
	group, err := s.repo.FindByPublicID(groupPublicID)
	if err != nil {
		return nil, ErrGroupNotFound
	}

	if err := s.memberRepo.Join(&model.Member{
		UserID:  user.ID,
		GroupID: group.ID,
	}); err != nil {
		return nil, err
	}

	s.relayer.Dispatch(ctx)
	return group, nil
}

// AddMember 仅群主或管理员可把指定用户拉入群
func (s *GroupService) AddMember(ctx context.Context, caller *model.User, groupPublicID, userPublicID string) (*model.Group, error) {
	group, err := s.repo.FindByPublicID(groupPublicID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	if !canManage(caller, group) {
		return nil, ErrNotGroupOwner
	}

	user, err := s.userRepo.FindByPublicID(userPublicID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.memberRepo.Join(&model.Member{
		UserID:  user.ID,
		GroupID: group.ID,
	}); err != nil {
		return nil, err
	}

	s.relayer.Dispatch(ctx)
	return group, nil
}

// RemoveMember 仅群主或管理员，按 (群组, 用户) 删第一条匹配成员行
func (s *GroupService) RemoveMember(caller *model.User, groupPublicID, userPublicID string) (*model.Group, error) {
	group, err := s.repo.FindByPublicID(groupPublicID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	if !canManage(caller, group) {
		return nil, ErrNotGroupOwner
	}

	user, err := s.userRepo.FindByPublicID(userPublicID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.memberRepo.RemoveFirst(group.ID, user.ID); err != nil {
		return nil, ErrMemberNotFound
	}
	return group, nil
}

// DeleteGroup 仅群主或管理员，显式按序级联删除
func (s *GroupService) DeleteGroup(caller *model.User, groupPublicID string) error {
	group, err := s.repo.FindByPublicID(groupPublicID)
	if err != nil {
		return ErrGroupNotFound
	}
	if !canManage(caller, group) {
		return ErrNotGroupOwner
	}
	return s.repo.DeleteCascade(group.ID)
}

func (s *GroupService) FindByPublicID(publicID string) (*model.Group, error) {
	group, err := s.repo.FindByPublicID(publicID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func (s *GroupService) ListAll() ([]model.Group, error) {
	return s.repo.ListAll()
}

// ListUserGroups 用户持有成员行的群组
func (s *GroupService) ListUserGroups(userID uint64) ([]model.Group, error) {
	ids, err := s.memberRepo.GroupIDsForUser(userID)
	if err != nil {
		return nil, err
	}
	var list []model.Group
	for _, id := range ids {
		group, err := s.repo.FindByID(id)
		if err != nil {
			continue
		}
		list = append(list, *group)
	}
	return list, nil
}

func (s *GroupService) GroupIDsForUser(userID uint64) ([]uint64, error) {
	return s.memberRepo.GroupIDsForUser(userID)
}

func (s *GroupService) ListMembers(groupID uint64) ([]model.Member, error) {
	return s.memberRepo.ListByGroup(groupID)
}

func canManage(user *model.User, group *model.Group) bool {
	return user.Admin || group.CreatorID == user.ID
}

package service

import (
	"context"
	"errors"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/repository/mysql"
)

var (
	ErrTextRequired    = errors.New("text required")
	ErrTextNotFound    = errors.New("text not found")
	ErrNotTextOwner    = errors.New("not the text owner")
	ErrWrongGroupScope = errors.New("text does not belong to group")
)

type ConversationService struct {
	repo    *mysql.ConversationRepository
	relayer *EventRelayer // 可为 nil
}

func NewConversationService(repo *mysql.ConversationRepository, relayer *EventRelayer) *ConversationService {
	return &ConversationService{repo: repo, relayer: relayer}
}

// PostMessage 空文本拒绝，其余直接落库
func (s *ConversationService) PostMessage(ctx context.Context, author *model.User, group *model.Group, text string) (*model.Conversation, error) {
	if text == "" {
		return nil, ErrTextRequired
	}

	conv := &model.Conversation{
		Text:    text,
		GroupID: group.ID,
		UserID:  author.ID,
	}
	if err := s.repo.Create(conv); err != nil {
		return nil, err
	}

	s.relayer.Dispatch(ctx)
	return conv, nil
}

// DeleteMessage 仅作者、群主或管理员可删
func (s *ConversationService) DeleteMessage(caller *model.User, group *model.Group, textID uint64) error {
	conv, err := s.repo.FindByID(textID)
	if err != nil {
		return ErrTextNotFound
	}
	if conv.GroupID != group.ID {
		return ErrWrongGroupScope
	}
	if !caller.Admin && conv.UserID != caller.ID && group.CreatorID != caller.ID {
		return ErrNotTextOwner
	}
	return s.repo.DeleteByID(conv.ID)
}

// ListMessages 按插入顺序返回群内全部发言
func (s *ConversationService) ListMessages(group *model.Group) ([]model.Conversation, error) {
	return s.repo.ListByGroup(group.ID)
}

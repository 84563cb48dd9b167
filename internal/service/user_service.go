package service

import (
	"errors"
	"log/slog"
	"slices"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/repository/mysql"
	"Lee_Groups/internal/repository/redis"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("incorrect password")
)

type UserService struct {
	repo     *mysql.UserRepository
	sessions *redis.SessionRepository // 可为 nil，nil 时仅靠 JWT 校验
	secret   []byte
	admins   []string
	emailSvc *EmailService // 可为 nil
}

func NewUserService(repo *mysql.UserRepository, sessions *redis.SessionRepository, secret []byte, admins []string, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		secret:   secret,
		admins:   admins,
		emailSvc: emailSvc,
	}
}

// Register 注册并直接建立会话。邮箱已存在时返回 ErrUserExists。
func (s *UserService) Register(first, last, email, password string) (*model.User, string, error) {
	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		PublicID:  uuid.NewString(),
		FirstName: pkg.TitleCase(first),
		LastName:  pkg.TitleCase(last),
		Email:     email,
		Password:  string(hash),
		Admin:     slices.Contains(s.admins, email),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}

	// 欢迎邮件尽力而为，失败不影响注册
	if s.emailSvc != nil {
		if err := s.emailSvc.SendWelcome(user.Email, user.FirstName); err != nil {
			slog.Warn("welcome mail failed", "email", user.Email, "err", err)
		}
	}

	token, err := s.establishSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 邮箱不存在返回 ErrUserNotFound，密码不符返回 ErrWrongPassword
func (s *UserService) Login(email, password string) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, "", ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := s.establishSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.DeleteSessionToken(usrID)
}

func (s *UserService) FindByID(id uint64) (*model.User, error) {
	return s.repo.FindByID(id)
}

func (s *UserService) FindByPublicID(publicID string) (*model.User, error) {
	return s.repo.FindByPublicID(publicID)
}

func (s *UserService) ListAll() ([]model.User, error) {
	return s.repo.ListAll()
}

// DeleteUser 删除用户并显式级联：名下群组、成员关系、发言
func (s *UserService) DeleteUser(id uint64) error {
	if err := s.repo.DeleteCascade(id); err != nil {
		return err
	}
	return s.Logout(id)
}

// establishSession 签发 token 并写入 redis（每用户单会话）
func (s *UserService) establishSession(usrID uint64) (string, error) {
	token, err := pkg.SignSession(s.secret, usrID)
	if err != nil {
		return "", err
	}
	if s.sessions != nil {
		if err := s.sessions.AddSessionToken(usrID, token); err != nil {
			return "", err
		}
	}
	return token, nil
}

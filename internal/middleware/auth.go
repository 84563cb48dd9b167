package middleware

import (
	"net/http"

	"Lee_Groups/internal/model"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/repository/mysql"
	"Lee_Groups/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey = "current_user"
	SessionCookie  = "session"
)

type Auth struct {
	secret   []byte
	sessions *redis.SessionRepository // 可为 nil，nil 时仅校验 JWT
	users    *mysql.UserRepository
}

func NewAuth(secret []byte, sessions *redis.SessionRepository, users *mysql.UserRepository) *Auth {
	return &Auth{secret: secret, sessions: sessions, users: users}
}

// RequireAuth 未登录一律重定向到登录页
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.resolve(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalAuth 匿名可过，登录则注入用户
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := a.resolve(c); ok {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}

// resolve cookie -> claims -> redis 活跃 token 比对 -> 用户
func (a *Auth) resolve(c *gin.Context) (*model.User, bool) {
	tokenStr, err := c.Cookie(SessionCookie)
	if err != nil || tokenStr == "" {
		return nil, false
	}

	claims, err := pkg.ParseSession(a.secret, tokenStr)
	if err != nil {
		return nil, false
	}

	if a.sessions != nil {
		originToken, err := a.sessions.GetSessionToken(claims.UserID)
		if err != nil || originToken != tokenStr {
			// 其他位置登录会顶掉旧会话
			return nil, false
		}
		// 校验通过后顺延过期时间
		_ = a.sessions.ExtendSessionToken(claims.UserID)
	}

	user, err := a.users.FindByID(claims.UserID)
	if err != nil {
		return nil, false
	}
	return user, true
}

func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}

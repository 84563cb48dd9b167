package handler

import (
	"net/http"

	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc      *service.UserService
	groupSvc *service.GroupService
}

func NewUserHandler(svc *service.UserService, groupSvc *service.GroupService) *UserHandler {
	return &UserHandler{svc: svc, groupSvc: groupSvc}
}

func (h *UserHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", gin.H{})
}

// Register 注册成功直接登录并跳首页；邮箱已存在跳登录页
func (h *UserHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.tmpl", gin.H{
			"Errors": fieldErrors(err),
			"Form":   form,
		})
		return
	}

	_, token, err := h.svc.Register(form.First, form.Last, form.Email, form.Password)
	if err != nil {
		if err == service.ErrUserExists {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "registration failed"})
		return
	}

	setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *UserHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{})
}

// Login 用户不存在跳注册页；密码错误回显表单
func (h *UserHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.tmpl", gin.H{
			"Errors": fieldErrors(err),
			"Form":   form,
		})
		return
	}

	_, token, err := h.svc.Login(form.Email, form.Password)
	switch err {
	case nil:
	case service.ErrUserNotFound:
		c.Redirect(http.StatusSeeOther, "/register")
		return
	case service.ErrWrongPassword:
		c.HTML(http.StatusOK, "login.tmpl", gin.H{
			"Notice": "Incorrect Password",
			"Form":   form,
		})
		return
	default:
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "login failed"})
		return
	}

	setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *UserHandler) Logout(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		_ = h.svc.Logout(user.ID)
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// Profile 当前用户持有成员行的群组
func (h *UserHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	groups, err := h.groupSvc.ListUserGroups(user.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "profile failed"})
		return
	}

	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"User":   user,
		"Groups": groups,
	})
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, int(pkg.SessionTTL.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}

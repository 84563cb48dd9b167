package router

import (
	"Lee_Groups/internal/handler"
	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/web"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *middleware.Auth
	User         *handler.UserHandler
	Group        *handler.GroupHandler
	Conversation *handler.ConversationHandler
}

func InitRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	// 匿名可浏览的页面
	r.GET("/", h.Auth.OptionalAuth(), h.Group.Home)
	r.GET("/register", h.User.ShowRegister)
	r.POST("/register", h.User.Register)
	r.GET("/login", h.User.ShowLogin)
	r.POST("/login", h.User.Login)
	r.GET("/logout", h.Auth.OptionalAuth(), h.User.Logout)

	// 登录态页面
	authed := r.Group("/")
	authed.Use(h.Auth.RequireAuth())
	{
		authed.GET("/add-groups", h.Group.ShowAddGroup)
		authed.POST("/add-groups", h.Group.AddGroup)
		authed.GET("/group", h.Group.ShowGroup)
		authed.POST("/group", h.Conversation.PostText)
		authed.GET("/join", h.Group.Join)
		authed.GET("/add-member", h.Group.AddMember)
		authed.GET("/remove-member", h.Group.RemoveMember)
		authed.GET("/delete-text", h.Conversation.DeleteText)
		authed.GET("/delete-group", h.Group.DeleteGroup)
		authed.GET("/profile", h.User.Profile)
	}

	return r
}

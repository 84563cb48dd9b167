package handler

import (
	"net/http"

	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/model"
	"Lee_Groups/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	svc     *service.GroupService
	convSvc *service.ConversationService
	userSvc *service.UserService
}

func NewGroupHandler(svc *service.GroupService, convSvc *service.ConversationService, userSvc *service.UserService) *GroupHandler {
	return &GroupHandler{svc: svc, convSvc: convSvc, userSvc: userSvc}
}

// Home 群组总览 + 当前用户已加入的群组 id 集合
func (h *GroupHandler) Home(c *gin.Context) {
	groups, err := h.svc.ListAll()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "home failed"})
		return
	}

	var memberIDs []uint64
	user := middleware.CurrentUser(c)
	if user != nil {
		memberIDs, _ = h.svc.GroupIDsForUser(user.ID)
	}
	inGroup := make(map[uint64]bool, len(memberIDs))
	for _, id := range memberIDs {
		inGroup[id] = true
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"User":    user,
		"Groups":  groups,
		"InGroup": inGroup,
	})
}

func (h *GroupHandler) ShowAddGroup(c *gin.Context) {
	c.HTML(http.StatusOK, "add_groups.tmpl", gin.H{})
}

func (h *GroupHandler) AddGroup(c *gin.Context) {
	var form AddGroupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "add_groups.tmpl", gin.H{
			"Errors": fieldErrors(err),
			"Form":   form,
		})
		return
	}

	user := middleware.CurrentUser(c)
	group, err := h.svc.CreateGroup(c.Request.Context(), user, form.Title)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "group creation failed"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/group?group="+group.PublicID)
}

// ShowGroup 群组详情：成员、发言、全部用户（拉人用）
func (h *GroupHandler) ShowGroup(c *gin.Context) {
	user := middleware.CurrentUser(c)

	group, err := h.svc.FindByPublicID(c.Query("group"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": "group not found"})
		return
	}

	members, err := h.svc.ListMembers(group.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "group failed"})
		return
	}
	texts, err := h.convSvc.ListMessages(group)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "group failed"})
		return
	}
	users, err := h.userSvc.ListAll()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "group failed"})
		return
	}

	byID := make(map[uint64]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	memberIDs := make(map[uint64]bool, len(members))
	type memberView struct {
		Name     string
		PublicID string
	}
	memberViews := make([]memberView, 0, len(members))
	for _, m := range members {
		memberIDs[m.UserID] = true
		if u, ok := byID[m.UserID]; ok {
			memberViews = append(memberViews, memberView{
				Name:     u.FirstName + " " + u.LastName,
				PublicID: u.PublicID,
			})
		}
	}

	type textView struct {
		ID     uint64
		Text   string
		Author string
		Mine   bool
	}
	textViews := make([]textView, 0, len(texts))
	for _, t := range texts {
		v := textView{ID: t.ID, Text: t.Text, Mine: t.UserID == user.ID}
		if u, ok := byID[t.UserID]; ok {
			v.Author = u.FirstName + " " + u.LastName
		}
		textViews = append(textViews, v)
	}

	c.HTML(http.StatusOK, "group.tmpl", gin.H{
		"User":     user,
		"Group":    group,
		"Members":  memberViews,
		"Texts":    textViews,
		"Users":    users,
		"IsMember": memberIDs[user.ID],
		"IsOwner":  user.Admin || group.CreatorID == user.ID,
	})
}

func (h *GroupHandler) Join(c *gin.Context) {
	user := middleware.CurrentUser(c)

	group, err := h.svc.JoinGroup(c.Request.Context(), user, c.Query("group"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": "group not found"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/group?group="+group.PublicID)
}

func (h *GroupHandler) AddMember(c *gin.Context) {
	user := middleware.CurrentUser(c)

	group, err := h.svc.AddMember(c.Request.Context(), user, c.Query("group"), c.Query("user"))
	if err != nil {
		renderGroupError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/group?group="+group.PublicID)
}

func (h *GroupHandler) RemoveMember(c *gin.Context) {
	user := middleware.CurrentUser(c)

	group, err := h.svc.RemoveMember(user, c.Query("group"), c.Query("user"))
	if err != nil {
		renderGroupError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/group?group="+group.PublicID)
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.svc.DeleteGroup(user, c.Query("group")); err != nil {
		renderGroupError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile")
}

func renderGroupError(c *gin.Context, err error) {
	switch err {
	case service.ErrNotGroupOwner:
		c.HTML(http.StatusForbidden, "error.tmpl", gin.H{"Message": "only the group owner may do this"})
	case service.ErrGroupNotFound, service.ErrUserNotFound, service.ErrMemberNotFound:
		c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": err.Error()})
	default:
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "operation failed"})
	}
}

package handler

import (
	"net/http"
	"strconv"

	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/service"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	svc      *service.ConversationService
	groupSvc *service.GroupService
}

func NewConversationHandler(svc *service.ConversationService, groupSvc *service.GroupService) *ConversationHandler {
	return &ConversationHandler{svc: svc, groupSvc: groupSvc}
}

// PostText 发言后跳回群组页，防重复提交
func (h *ConversationHandler) PostText(c *gin.Context) {
	user := middleware.CurrentUser(c)

	group, err := h.groupSvc.FindByPublicID(c.Query("group"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": "group not found"})
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.tmpl", gin.H{"Message": "text is required"})
		return
	}

	if _, err := h.svc.PostMessage(c.Request.Context(), user, group, form.Text); err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "post failed"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/group?group="+group.PublicID)
}

// DeleteText 仅作者、群主或管理员
func (h *ConversationHandler) DeleteText(c *gin.Context) {
	user := middleware.CurrentUser(c)

	group, err := h.groupSvc.FindByPublicID(c.Query("group"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": "group not found"})
		return
	}

	textID, err := strconv.ParseUint(c.Query("text"), 10, 64)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.tmpl", gin.H{"Message": "invalid text id"})
		return
	}

	switch err := h.svc.DeleteMessage(user, group, textID); err {
	case nil:
	case service.ErrNotTextOwner:
		c.HTML(http.StatusForbidden, "error.tmpl", gin.H{"Message": "only the author or group owner may delete"})
		return
	case service.ErrTextNotFound, service.ErrWrongGroupScope:
		c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": "text not found"})
		return
	default:
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "delete failed"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/group?group="+group.PublicID)
}

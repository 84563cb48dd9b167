package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 每个端点一份表单 schema，约束全部写在 binding tag 里

type RegisterForm struct {
	First    string `form:"first" binding:"required,max=28"`
	Last     string `form:"last" binding:"required,max=28"`
	Email    string `form:"email" binding:"required,email,max=28"`
	Password string `form:"password" binding:"required,min=6,max=28,eqfield=Confirm"`
	Confirm  string `form:"confirm" binding:"required,min=6,max=28"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email,max=28"`
	Password string `form:"password" binding:"required,min=6,max=28"`
}

type AddGroupForm struct {
	Title string `form:"title" binding:"required,max=28"`
}

type PostForm struct {
	Text string `form:"text" binding:"required"`
}

// fieldErrors 把校验错误整理成 字段名 -> 提示语，渲染回表单
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "invalid form submission"
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		case "email":
			out[field] = "Not a valid email address"
		case "min":
			out[field] = "Too short"
		case "max":
			out[field] = "Too long"
		case "eqfield":
			out[field] = "password does not match"
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}

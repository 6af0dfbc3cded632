package controller

import (
	"errors"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	ContactService *service.ContactService
}

func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{ContactService: contactService}
}

type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Submit godoc
// @Summary 提交联系消息
// @Description 公开接口，三个字段去空格后都必填
// @Tags 联系
// @Accept json
// @Produce json
// @Param   request body ContactRequest true "消息内容"
// @Success 201 {object} util.Response{data=model.ContactMessage} "成功"
// @Failure 400 {object} util.Response "字段缺失"
// @Router /api/contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var req ContactRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.ContactService.Submit(req.Name, req.Email, req.Message)
	if err != nil {
		if errors.Is(err, util.ErrInvalidInput) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, msg)
}

// List godoc
// @Summary 联系消息列表
// @Description 后台收件箱，最新在前
// @Tags 联系
// @Produce json
// @Security ApiKeyAuth
// @Param   limit query int false "返回条数，默认 100"
// @Success 200 {object} util.Response{data=[]model.ContactMessage} "成功"
// @Router /api/admin/contact [get]
func (c *ContactController) List(ctx *gin.Context) {
	limit := util.ParseIntDefault(ctx.Query("limit"), 100)
	messages, err := c.ContactService.List(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

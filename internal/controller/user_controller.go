package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 个人资料、偏好设置和账号注销
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, profile, err := c.UserService.GetOrCreateProfile(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"phone":     profile.Phone,
		"country":   profile.Country,
		"timezone":  profile.Timezone,
		"bio":       profile.Bio,
		"avatarUrl": profile.Avatar,
	})
}

// UpdateProfile godoc
// @Summary 更新资料
// @Description 表单提交，带了的字段才覆盖；avatar 为可选的图片文件
// @Tags 用户
// @Accept  mpfd
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "更新成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// 只把请求里出现的键传下去，实现局部更新
	form := func(key string) *string {
		if v, ok := ctx.GetPostForm(key); ok {
			return &v
		}
		return nil
	}

	upd := service.ProfileUpdate{
		FirstName: form("first_name"),
		LastName:  form("last_name"),
		Email:     form("email"),
		Phone:     form("phone"),
		Country:   form("country"),
		Timezone:  form("timezone"),
		Bio:       form("bio"),
	}

	if _, _, err := c.UserService.UpdateProfile(claims.UserID, upd); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if file, err := ctx.FormFile("avatar"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
			src.Close()
			util.BadRequest(ctx, "avatar must be an image")
			return
		}
		src.Close()

		if _, err := c.UserService.UploadAvatar(ctx, claims.UserID, file); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	util.Success(ctx, gin.H{"message": "Profile updated successfully"})
}

// GetPreferences godoc
// @Summary 获取偏好设置
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/preferences [get]
func (c *UserController) GetPreferences(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	prefs, err := c.UserService.GetPreferences(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, prefs)
}

// UpdatePreferences godoc
// @Summary 更新偏好设置
// @Description 四个已知键整体覆盖：缺失的键回落到默认值，不保留旧值
// @Tags 用户
// @Accept  mpfd
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/preferences [put]
func (c *UserController) UpdatePreferences(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	prefs, err := c.UserService.UpdatePreferences(claims.UserID, service.PreferencesInput{
		Theme:         ctx.PostForm("theme"),
		Announcements: ctx.PostForm("nAnnouncements"),
		Reminders:     ctx.PostForm("nReminders"),
		Marketing:     ctx.PostForm("nMarketing"),
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, prefs)
}

// DeleteAccount godoc
// @Summary 注销账号
// @Description 删除账号及其选课、进度、资料，立即生效
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "已删除"
// @Router /api/account/delete [post]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.UserService.DeleteAccount(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

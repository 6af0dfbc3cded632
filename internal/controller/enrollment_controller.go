package controller

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	DashboardService  *service.DashboardService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService, dashboardService *service.DashboardService) *EnrollmentController {
	return &EnrollmentController{
		EnrollmentService: enrollmentService,
		DashboardService:  dashboardService,
	}
}

// Enroll godoc
// @Summary 选课
// @Description 幂等：重复选课返回既有记录，created=false，不报错
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "课程不存在或已禁用"
// @Router /api/courses/{slug}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, created, err := c.EnrollmentService.Enroll(claims.UserID, ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"enrollment": enrollment,
		"created":    created,
	})
}

// Unenroll godoc
// @Summary 退课
// @Description 退未选的课按成功处理
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response "成功"
// @Router /api/courses/{slug}/enroll [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.EnrollmentService.Unenroll(claims.UserID, ctx.Param("slug")); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"unenrolled": true})
}

// Dashboard godoc
// @Summary 学习面板
// @Description 在学课程及完成进度
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.DashboardItem} "成功"
// @Router /api/dashboard [get]
func (c *EnrollmentController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.DashboardService.GetDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// ----- 后台选课管理 -----

type AdminEnrollRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Slug   string `json:"slug" binding:"required"`
}

func (c *EnrollmentController) AdminEnroll(ctx *gin.Context) {
	var req AdminEnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, created, err := c.EnrollmentService.EnrollUser(req.UserID, req.Slug)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) || errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"enrollment": enrollment, "created": created})
}

func (c *EnrollmentController) AdminUnenroll(ctx *gin.Context) {
	var req AdminEnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.EnrollmentService.UnenrollUser(req.UserID, req.Slug); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) || errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"unenrolled": true})
}

type SetStatusRequest struct {
	UserID   uint   `json:"userId" binding:"required"`
	CourseID uint   `json:"courseId" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=active completed not_started"`
}

func (c *EnrollmentController) AdminSetStatus(ctx *gin.Context) {
	var req SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.SetStatus(req.UserID, req.CourseID, model.EnrollmentStatus(req.Status))
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, enrollment)
}

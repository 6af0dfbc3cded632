package controller

import (
	"errors"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	ProgressService *service.ProgressService
}

func NewLearningController(progressService *service.ProgressService) *LearningController {
	return &LearningController{ProgressService: progressService}
}

// ToggleLesson godoc
// @Summary 标记/取消课时完成
// @Description 同一用户同一课时只保留一行记录，重复提交做 upsert
// @Tags 学习进度
// @Accept x-www-form-urlencoded
// @Produce json
// @Security ApiKeyAuth
// @Param   lesson_id formData int true "课时 ID"
// @Param   completed formData string true "true/false"
// @Success 200 {object} util.Response{data=object} "成功，带课程内已完成课时ID集合"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/toggle [post]
func (c *LearningController) ToggleLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.PostForm("lesson_id"))
	if lessonID == 0 {
		util.BadRequest(ctx, "lesson_id is required")
		return
	}
	completed := util.ParseBool(ctx.PostForm("completed"))

	completion, err := c.ProgressService.SetLessonCompletion(claims.UserID, lessonID, completed)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	completedIDs, err := c.ProgressService.CourseCompletion(claims.UserID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"completion":   completion,
		"completedIds": completedIDs,
	})
}

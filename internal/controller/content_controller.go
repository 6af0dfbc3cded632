package controller

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 课程目录与课程播放页
type ContentController struct {
	ContentService    *service.ContentService
	EnrollmentService *service.EnrollmentService
	ProgressService   *service.ProgressService
}

func NewContentController(
	contentService *service.ContentService,
	enrollmentService *service.EnrollmentService,
	progressService *service.ProgressService,
) *ContentController {
	return &ContentController{
		ContentService:    contentService,
		EnrollmentService: enrollmentService,
		ProgressService:   progressService,
	}
}

// ListCourses godoc
// @Summary 课程目录
// @Description 启用课程列表，q 在标题/分类上做大小写不敏感子串过滤；
// @Description 登录用户额外返回已选课程的 slug 集合
// @Tags 课程
// @Produce json
// @Param   q query string false "搜索关键词"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListActiveCourses(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	enrolledSlugs := []string{}
	if claims := util.GetUserFromContext(ctx); claims != nil {
		enrolledSlugs, err = c.EnrollmentService.EnrolledSlugs(claims.UserID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	util.Success(ctx, gin.H{
		"courses":       courses,
		"enrolledSlugs": enrolledSlugs,
	})
}

// GetCourse godoc
// @Summary 课程预览页
// @Description 公开的课程详情：大纲、章节/课时数；登录用户带是否已选
// @Tags 课程
// @Produce json
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "课程不存在或已禁用"
// @Router /api/courses/{slug} [get]
func (c *ContentController) GetCourse(ctx *gin.Context) {
	course, err := c.ContentService.GetCourseCurriculum(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	nModules, nLessons, err := c.ContentService.CountModulesAndLessons(course.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	isEnrolled := false
	if claims := util.GetUserFromContext(ctx); claims != nil {
		isEnrolled, err = c.EnrollmentService.IsEnrolled(claims.UserID, course.ID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	util.Success(ctx, gin.H{
		"course":     course,
		"nModules":   nModules,
		"nLessons":   nLessons,
		"isEnrolled": isEnrolled,
	})
}

// CoursePlayer godoc
// @Summary 课程播放页
// @Description 只有已选课用户可访问，返回完整大纲和已完成课时ID集合
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 403 {object} util.Response "未选课"
// @Failure 404 {object} util.Response "课程不存在或已禁用"
// @Router /api/courses/{slug}/player [get]
func (c *ContentController) CoursePlayer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.ContentService.GetCourseCurriculum(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	enrolled, err := c.EnrollmentService.IsEnrolled(claims.UserID, course.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !enrolled {
		util.Error(ctx, 403, "Please enroll to access the course player")
		return
	}

	completedIDs, err := c.ProgressService.CompletedLessonIDs(claims.UserID, course.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	nModules, nLessons, err := c.ContentService.CountModulesAndLessons(course.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"course":       course,
		"completedIds": completedIDs,
		"nModules":     nModules,
		"nLessons":     nLessons,
	})
}

// ----- 后台内容维护 -----

type CourseRequest struct {
	Slug      string `json:"slug"`
	Title     string `json:"title" binding:"required"`
	Category  string `json:"category"`
	ShortDesc string `json:"shortDesc"`
	IsActive  *bool  `json:"isActive"`
}

func (c *ContentController) CreateCourse(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{
		Slug:      req.Slug,
		Title:     req.Title,
		Category:  req.Category,
		ShortDesc: req.ShortDesc,
		IsActive:  true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := c.ContentService.CreateCourse(ctx.Request.Context(), course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

func (c *ContentController) UpdateCourse(ctx *gin.Context) {
	course, err := c.ContentService.GetCourseByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// slug 不因标题变化重新生成
	course.Title = req.Title
	course.Category = req.Category
	course.ShortDesc = req.ShortDesc
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := c.ContentService.UpdateCourse(ctx.Request.Context(), course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

func (c *ContentController) DeleteCourse(ctx *gin.Context) {
	if err := c.ContentService.DeleteCourse(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

type ModuleRequest struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Index    int    `json:"index"`
	Title    string `json:"title" binding:"required"`
	Intro    string `json:"intro"`
}

func (c *ContentController) CreateModule(ctx *gin.Context) {
	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	index := req.Index
	if index <= 0 {
		index = 1
	}
	m := &model.Module{
		CourseID: req.CourseID,
		Index:    index,
		Title:    req.Title,
		Intro:    req.Intro,
	}
	if err := c.ContentService.CreateModule(ctx.Request.Context(), m); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

func (c *ContentController) UpdateModule(ctx *gin.Context) {
	m, err := c.ContentService.GetModule(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m.Title = req.Title
	m.Intro = req.Intro
	if req.Index > 0 {
		m.Index = req.Index
	}
	if err := c.ContentService.UpdateModule(ctx.Request.Context(), m); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

func (c *ContentController) DeleteModule(ctx *gin.Context) {
	if err := c.ContentService.DeleteModule(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

type LessonRequest struct {
	ModuleID uint   `json:"moduleId" binding:"required"`
	Index    int    `json:"index"`
	Title    string `json:"title" binding:"required"`
	Summary  string `json:"summary"`
	VideoURL string `json:"videoUrl"`
}

func (c *ContentController) CreateLesson(ctx *gin.Context) {
	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	index := req.Index
	if index <= 0 {
		index = 1
	}
	lesson := &model.Lesson{
		ModuleID: req.ModuleID,
		Index:    index,
		Title:    req.Title,
		Summary:  req.Summary,
		VideoURL: req.VideoURL,
	}
	if err := c.ContentService.CreateLesson(ctx.Request.Context(), lesson); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	lesson, err := c.ContentService.GetLesson(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson.Title = req.Title
	lesson.Summary = req.Summary
	lesson.VideoURL = req.VideoURL
	if req.Index > 0 {
		lesson.Index = req.Index
	}
	if err := c.ContentService.UpdateLesson(ctx.Request.Context(), lesson); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	if err := c.ContentService.DeleteLesson(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// UploadResource godoc
// @Summary 上传课时附件
// @Tags 后台
// @Accept  mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Param   file formData file true "附件文件"
// @Param   name formData string false "展示名，缺省用原文件名"
// @Success 201 {object} util.Response{data=model.Resource} "创建成功"
// @Router /api/admin/lessons/{id}/resources [post]
func (c *ContentController) UploadResource(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	_, mimeErr := util.ValidateMimeType(src, []string{util.MimePDF, util.MimeImage, util.MimeText})
	src.Close()
	if mimeErr != nil {
		util.BadRequest(ctx, "resource must be a pdf, image or text file")
		return
	}

	res, err := c.ContentService.UploadResource(ctx.Request.Context(), lessonID, ctx.PostForm("name"), file)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, res)
}

func (c *ContentController) DeleteResource(ctx *gin.Context) {
	if err := c.ContentService.DeleteResource(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

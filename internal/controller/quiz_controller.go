package controller

import (
	"errors"
	"strings"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// 对外返回的题目视图不带 isCorrect，答案只在计分时使用
type choiceView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type questionView struct {
	ID      uint         `json:"id"`
	Text    string       `json:"text"`
	Order   int          `json:"order"`
	Choices []choiceView `json:"choices"`
}

type quizView struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	IsActive  bool           `json:"isActive"`
	PassMark  int            `json:"passMark"`
	Questions []questionView `json:"questions"`
}

func buildQuizView(quizID uint, svc *service.QuizService) (*quizView, error) {
	quiz, err := svc.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}
	view := &quizView{
		ID:        quiz.ID,
		Title:     quiz.Title,
		IsActive:  quiz.IsActive,
		PassMark:  quiz.PassMark,
		Questions: make([]questionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		qv := questionView{ID: q.ID, Text: q.Text, Order: q.Order, Choices: make([]choiceView, 0, len(q.Choices))}
		for _, c := range q.Choices {
			qv.Choices = append(qv.Choices, choiceView{ID: c.ID, Text: c.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view, nil
}

// GetStaticQuiz godoc
// @Summary 静态测验页 1-8
// @Description 首次访问自动配备容器课程与测验记录，返回测验ID供提交接口使用
// @Tags 测验
// @Produce json
// @Param   num path int true "页号 1-8"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "页号越界"
// @Router /api/quiz/static/{num} [get]
func (c *QuizController) GetStaticQuiz(ctx *gin.Context) {
	num := util.ParseIntDefault(ctx.Param("num"), 0)
	quizID, err := c.QuizService.EnsureStaticQuiz(num)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	view, err := buildQuizView(quizID, c.QuizService)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// GetQuiz godoc
// @Summary 测验详情
// @Tags 测验
// @Produce json
// @Param   id path int true "测验 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quiz/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	view, err := buildQuizView(util.MustParseUint(ctx.Param("id")), c.QuizService)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

type attemptJSONRequest struct {
	Answers map[string]string `json:"answers"`
	Score   string            `json:"score"`
	Total   string            `json:"total"`
	Labels  map[string]string `json:"labels"`
}

// parseSubmission 兼容两种客户端：课程播放器发 JSON，静态页发表单。
// 表单里 q_<题目ID>=<选项ID> 走库内计分，score/total/label_* 走直传。
func parseSubmission(ctx *gin.Context) service.QuizSubmission {
	if strings.Contains(ctx.GetHeader("Content-Type"), "application/json") {
		var req attemptJSONRequest
		if err := ctx.ShouldBindJSON(&req); err == nil {
			return service.QuizSubmission{
				Answers: req.Answers,
				Score:   req.Score,
				Total:   req.Total,
				Labels:  req.Labels,
			}
		}
		return service.QuizSubmission{}
	}

	sub := service.QuizSubmission{
		Answers: map[string]string{},
		Labels:  map[string]string{},
		Score:   ctx.PostForm("score"),
		Total:   ctx.PostForm("total"),
	}
	if err := ctx.Request.ParseMultipartForm(1 << 20); err != nil {
		_ = ctx.Request.ParseForm()
	}
	for key, values := range ctx.Request.PostForm {
		if len(values) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(key, "q_"):
			sub.Answers[strings.TrimPrefix(key, "q_")] = values[0]
		case strings.HasPrefix(key, "label_"):
			// 键原样入快照，label_ 前缀保留
			sub.Labels[key] = values[0]
		}
	}
	return sub
}

// SubmitAttempt godoc
// @Summary 提交测验
// @Description 支持匿名提交；每次提交新建一条记录并返回判定结果
// @Tags 测验
// @Accept json
// @Produce json
// @Param   id path int true "测验 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quiz/{id}/attempt [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	var userID *uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		uid := claims.UserID
		userID = &uid
	}

	attempt, err := c.QuizService.SubmitAttempt(util.MustParseUint(ctx.Param("id")), parseSubmission(ctx), userID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"attemptId": attempt.ID,
		"score":     attempt.Score,
		"total":     attempt.Total,
		"passed":    attempt.Passed,
	})
}

// ListAttempts godoc
// @Summary 本人测验历史
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param   id path int true "测验 ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt} "成功"
// @Router /api/quiz/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.QuizService.ListAttempts(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// ----- 后台测验管理 -----

type UpsertQuizRequest struct {
	Title    *string `json:"title"`
	IsActive *bool   `json:"isActive"`
	PassMark *int    `json:"passMark"`
}

func (c *QuizController) UpsertLessonQuiz(ctx *gin.Context) {
	var req UpsertQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.UpsertLessonQuiz(util.MustParseUint(ctx.Param("id")), service.QuizInput{
		Title:    req.Title,
		IsActive: req.IsActive,
		PassMark: req.PassMark,
	})
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.QuizService.DeleteQuiz(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

type QuestionRequest struct {
	Text  string `json:"text" binding:"required"`
	Order int    `json:"order"`
}

func (c *QuizController) AddQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Order <= 0 {
		req.Order = 1
	}

	question, err := c.QuizService.AddQuestion(util.MustParseUint(ctx.Param("id")), req.Text, req.Order)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, question)
}

func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuizService.DeleteQuestion(util.MustParseUint(ctx.Param("questionId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

type ChoiceRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

func (c *QuizController) AddChoice(ctx *gin.Context) {
	var req ChoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	choice, err := c.QuizService.AddChoice(util.MustParseUint(ctx.Param("questionId")), req.Text, req.IsCorrect)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, choice)
}

func (c *QuizController) DeleteChoice(ctx *gin.Context) {
	if err := c.QuizService.DeleteChoice(util.MustParseUint(ctx.Param("choiceId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

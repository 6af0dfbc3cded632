package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"
	"math"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// 静态测验页直传 total 缺失或不可解析时的回落值，前端兼容性要求精确保持
	staticDefaultTotal = 10
	staticDefaultScore = 0

	staticQuizMin = 1
	staticQuizMax = 8

	staticCourseSlug = "web-dev-static"
	staticPassMark   = 60
)

// QuizService 测验引擎：计分、判定通过、落一条不可变的提交记录。
// 测验的启用标志在提交时不做拦截，与既有行为保持一致。
type QuizService struct {
	QuizRepo   *repository.QuizRepository
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
	}
}

// QuizSubmission 两种提交形态，二选一：
//   - Answers 非空（且 Score 为空）按库内题目计分：题目ID -> 所选选项ID
//   - Score 非空走静态页直传：分数和总数原样信任，Labels 原样存入快照
type QuizSubmission struct {
	Answers map[string]string
	Score   string
	Total   string
	Labels  map[string]string
}

// SubmitAttempt userID 为 nil 表示匿名练习。每次提交都新建记录，从不更新旧行，
// 允许无限次重考并保留完整历史。
func (s *QuizService) SubmitAttempt(quizID uint, sub QuizSubmission, userID *uint) (*model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	var score, total int
	rawAnswers := datatypes.JSONMap{}

	if sub.Score == "" {
		score, total, rawAnswers = s.scoreStructured(quiz, sub.Answers)
	} else {
		score = util.ParseIntDefault(sub.Score, staticDefaultScore)
		total = util.ParseIntDefault(sub.Total, staticDefaultTotal)
		for k, v := range sub.Labels {
			rawAnswers[k] = v
		}
	}

	passed := score >= quiz.PassMark

	attempt := &model.QuizAttempt{
		QuizID:     quiz.ID,
		UserID:     userID,
		Score:      score,
		Total:      total,
		Passed:     passed,
		RawAnswers: rawAnswers,
	}
	if err := s.QuizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	monitoring.QuizAttemptCounter.WithLabelValues(outcome).Inc()

	return attempt, nil
}

// scoreStructured 库内计分。总数取提交时测验的题目数，不是答案数：
// 未作答按错算，不从分母剔除。选项必须属于所指的题目才可能计对，
// 防止跨题借用 is_correct 的选项ID。
func (s *QuizService) scoreStructured(quiz *model.Quiz, answers map[string]string) (int, int, datatypes.JSONMap) {
	total := len(quiz.Questions)
	correct := 0
	raw := datatypes.JSONMap{}

	for _, question := range quiz.Questions {
		qid := strconv.FormatUint(uint64(question.ID), 10)
		chosen := answers[qid]
		raw[qid] = chosen

		chosenID, err := strconv.ParseUint(chosen, 10, 32)
		if err != nil {
			continue
		}
		for _, choice := range question.Choices {
			if choice.ID == uint(chosenID) && choice.IsCorrect {
				correct++
				break
			}
		}
	}

	// 分母下限 1，零题测验得 0 分而不是除零
	denom := total
	if denom < 1 {
		denom = 1
	}
	// 半分向偶数取整：1/8 正确得 12 分而不是 13
	score := int(math.RoundToEven(float64(correct) * 100 / float64(denom)))

	return score, total, raw
}

func (s *QuizService) GetQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetAttempt(id uint) (*model.QuizAttempt, error) {
	return s.QuizRepo.FindAttemptByID(id)
}

func (s *QuizService) ListAttempts(quizID uint, userID uint) ([]model.QuizAttempt, error) {
	return s.QuizRepo.ListAttempts(quizID, userID)
}

// EnsureStaticQuiz 为静态测验页 1..8 自动配备容器课程/章节/课时/测验，
// 返回测验ID供页面向提交接口 POST。容器课程用独立 slug，不会和真实课程冲突。
func (s *QuizService) EnsureStaticQuiz(num int) (uint, error) {
	if num < staticQuizMin || num > staticQuizMax {
		return 0, util.ErrQuizNotFound
	}

	course, err := s.CourseRepo.FindBySlug(staticCourseSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		course = &model.Course{
			Slug:      staticCourseSlug,
			Title:     "Web Development (Static Quizzes)",
			Category:  "Web Dev",
			ShortDesc: "Container course for static quiz pages 1-8.",
			IsActive:  true,
		}
		if err := s.CourseRepo.Create(course); err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	module, err := s.ModuleRepo.FirstOrCreateByIndex(course.ID, 1, model.Module{
		Title: "Module (Static Quizzes)",
		Intro: "Auto-provisioned",
	})
	if err != nil {
		return 0, err
	}

	lesson, err := s.LessonRepo.FirstOrCreateByIndex(module.ID, num, model.Lesson{
		Title:   "Static Quiz " + strconv.Itoa(num),
		Summary: "Auto-provisioned",
	})
	if err != nil {
		return 0, err
	}

	quiz, err := s.QuizRepo.FirstOrCreateForLesson(lesson.ID, model.Quiz{
		Title:    "Quiz " + strconv.Itoa(num),
		IsActive: true,
		PassMark: staticPassMark,
	})
	if err != nil {
		return 0, err
	}

	return quiz.ID, nil
}

// ----- 后台测验管理 -----

type QuizInput struct {
	Title    *string
	IsActive *bool
	PassMark *int
}

// UpsertLessonQuiz 课时没有测验则按默认值建一条，再套用传入的字段
func (s *QuizService) UpsertLessonQuiz(lessonID uint, in QuizInput) (*model.Quiz, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	quiz, err := s.QuizRepo.FirstOrCreateForLesson(lessonID, model.Quiz{
		IsActive: true,
		PassMark: model.DefaultPassMark,
	})
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		quiz.Title = *in.Title
	}
	if in.IsActive != nil {
		quiz.IsActive = *in.IsActive
	}
	if in.PassMark != nil {
		quiz.PassMark = *in.PassMark
	}
	if err := s.QuizRepo.Save(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	if _, err := s.GetQuiz(quizID); err != nil {
		return err
	}
	return s.QuizRepo.Delete(quizID)
}

func (s *QuizService) AddQuestion(quizID uint, text string, order int) (*model.Question, error) {
	if _, err := s.GetQuiz(quizID); err != nil {
		return nil, err
	}
	question := &model.Question{QuizID: quizID, Text: text, Order: order}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) DeleteQuestion(questionID uint) error {
	return s.QuizRepo.DeleteQuestion(questionID)
}

func (s *QuizService) AddChoice(questionID uint, text string, isCorrect bool) (*model.Choice, error) {
	choice := &model.Choice{QuestionID: questionID, Text: text, IsCorrect: isCorrect}
	if err := s.QuizRepo.CreateChoice(choice); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *QuizService) DeleteChoice(choiceID uint) error {
	return s.QuizRepo.DeleteChoice(choiceID)
}

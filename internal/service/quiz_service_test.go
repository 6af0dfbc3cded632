package service

import (
	"errors"
	"strconv"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func qid(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func cid(c model.Choice) string {
	return strconv.FormatUint(uint64(c.ID), 10)
}

func TestSubmitAttemptAllCorrect(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)
	user := createUser(t, db, "a@example.com")

	answers := map[string]string{
		qid(quiz.Questions[0].ID): cid(correctChoice(t, quiz.Questions[0])),
		qid(quiz.Questions[1].ID): cid(correctChoice(t, quiz.Questions[1])),
	}

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: answers}, &user.ID)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 100 {
		t.Errorf("score = %d, want 100", attempt.Score)
	}
	if attempt.Total != 2 {
		t.Errorf("total = %d, want 2", attempt.Total)
	}
	if !attempt.Passed {
		t.Error("expected passed")
	}
	if attempt.ID == 0 {
		t.Error("attempt not persisted")
	}
}

func TestSubmitAttemptHalfCorrect(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)

	answers := map[string]string{
		qid(quiz.Questions[0].ID): cid(correctChoice(t, quiz.Questions[0])),
		qid(quiz.Questions[1].ID): cid(wrongChoice(t, quiz.Questions[1])),
	}

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: answers}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 50 {
		t.Errorf("score = %d, want 50", attempt.Score)
	}
	if attempt.Passed {
		t.Error("50 should not pass a 60 pass mark")
	}
}

// 半分向偶数取整：8 题对 1 题是 12.5%，落库 12 分而不是 13
func TestSubmitAttemptHalfRoundsToEven(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := &model.Quiz{
		LessonID: course.Modules[0].Lessons[0].ID,
		Title:    "Eight Questions",
		IsActive: true,
		PassMark: 60,
	}
	for i := 1; i <= 8; i++ {
		quiz.Questions = append(quiz.Questions, model.Question{
			Text:  "Q" + strconv.Itoa(i),
			Order: i,
			Choices: []model.Choice{
				{Text: "right", IsCorrect: true},
				{Text: "wrong", IsCorrect: false},
			},
		})
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	answers := map[string]string{
		qid(quiz.Questions[0].ID): cid(correctChoice(t, quiz.Questions[0])),
	}
	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: answers}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 12 {
		t.Errorf("score = %d, want 12", attempt.Score)
	}
	if attempt.Total != 8 {
		t.Errorf("total = %d, want 8", attempt.Total)
	}
	if attempt.Passed {
		t.Error("12 should not pass a 60 pass mark")
	}
}

// 未作答的题按错算，而且快照里留空串
func TestSubmitAttemptUnansweredCountsWrong(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)

	answers := map[string]string{
		qid(quiz.Questions[0].ID): cid(correctChoice(t, quiz.Questions[0])),
	}

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: answers}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 50 {
		t.Errorf("score = %d, want 50", attempt.Score)
	}
	if attempt.Total != 2 {
		t.Errorf("total = %d, want 2", attempt.Total)
	}

	stored, err := svc.GetAttempt(attempt.ID)
	if err != nil {
		t.Fatalf("GetAttempt: %v", err)
	}
	if got, ok := stored.RawAnswers[qid(quiz.Questions[1].ID)]; !ok || got != "" {
		t.Errorf("unanswered question snapshot = %v, want empty string", got)
	}
}

// 借用别的题的正确选项ID不能计对
func TestSubmitAttemptCrossQuestionChoiceRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)

	answers := map[string]string{
		qid(quiz.Questions[0].ID): cid(correctChoice(t, quiz.Questions[1])),
		qid(quiz.Questions[1].ID): cid(correctChoice(t, quiz.Questions[0])),
	}

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: answers}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 0 {
		t.Errorf("score = %d, want 0", attempt.Score)
	}
}

func TestSubmitAttemptUnparsableChoice(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)

	answers := map[string]string{
		qid(quiz.Questions[0].ID): "not-a-number",
		qid(quiz.Questions[1].ID): cid(correctChoice(t, quiz.Questions[1])),
	}

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: answers}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 50 {
		t.Errorf("score = %d, want 50", attempt.Score)
	}
}

// 零题测验得 0 分而不是除零
func TestSubmitAttemptZeroQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := &model.Quiz{
		LessonID: course.Modules[0].Lessons[1].ID,
		Title:    "Empty Quiz",
		IsActive: true,
		PassMark: 60,
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: map[string]string{}}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 0 {
		t.Errorf("score = %d, want 0", attempt.Score)
	}
	if attempt.Total != 0 {
		t.Errorf("total = %d, want 0", attempt.Total)
	}
	if attempt.Passed {
		t.Error("zero-question quiz should not pass a 60 pass mark")
	}
}

// 分数线是含等于的
func TestSubmitAttemptPassMarkBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 50)

	answers := map[string]string{
		qid(quiz.Questions[0].ID): cid(correctChoice(t, quiz.Questions[0])),
		qid(quiz.Questions[1].ID): cid(wrongChoice(t, quiz.Questions[1])),
	}

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: answers}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 50 {
		t.Errorf("score = %d, want 50", attempt.Score)
	}
	if !attempt.Passed {
		t.Error("score equal to pass mark must pass")
	}
}

func TestSubmitAttemptPreScored(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)

	sub := QuizSubmission{
		Score:  "80",
		Total:  "10",
		Labels: map[string]string{"label_q1": "B", "label_q2": "C"},
	}
	attempt, err := svc.SubmitAttempt(quiz.ID, sub, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 80 || attempt.Total != 10 {
		t.Errorf("score/total = %d/%d, want 80/10", attempt.Score, attempt.Total)
	}
	if !attempt.Passed {
		t.Error("expected passed")
	}
	// 标签键原样入快照，带 label_ 前缀
	if attempt.RawAnswers["label_q1"] != "B" {
		t.Errorf("label_q1 = %v, want B", attempt.RawAnswers["label_q1"])
	}
}

// 直传形态解析失败时分数回落 0、总数回落 10
func TestSubmitAttemptPreScoredDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Score: "oops", Total: "bad"}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 0 {
		t.Errorf("score = %d, want 0", attempt.Score)
	}
	if attempt.Total != 10 {
		t.Errorf("total = %d, want 10", attempt.Total)
	}
	if attempt.Passed {
		t.Error("fallback score must not pass")
	}
}

// 重复提交只追加新记录，旧记录原样保留
func TestSubmitAttemptImmutableHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)
	user := createUser(t, db, "a@example.com")

	allCorrect := map[string]string{
		qid(quiz.Questions[0].ID): cid(correctChoice(t, quiz.Questions[0])),
		qid(quiz.Questions[1].ID): cid(correctChoice(t, quiz.Questions[1])),
	}
	allWrong := map[string]string{
		qid(quiz.Questions[0].ID): cid(wrongChoice(t, quiz.Questions[0])),
		qid(quiz.Questions[1].ID): cid(wrongChoice(t, quiz.Questions[1])),
	}

	first, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: allCorrect}, &user.ID)
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	second, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: allWrong}, &user.ID)
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("second submission must create a new attempt")
	}

	stored, err := svc.GetAttempt(first.ID)
	if err != nil {
		t.Fatalf("GetAttempt: %v", err)
	}
	if stored.Score != 100 {
		t.Errorf("first attempt score changed to %d", stored.Score)
	}

	attempts, err := svc.ListAttempts(quiz.ID, user.ID)
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Errorf("attempt count = %d, want 2", len(attempts))
	}
}

func TestSubmitAttemptAnonymous(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	course := createCourse(t, db, "go-basics", "Go Basics")
	quiz := createQuiz(t, db, course.Modules[0].Lessons[0].ID, 60)

	attempt, err := svc.SubmitAttempt(quiz.ID, QuizSubmission{Answers: map[string]string{}}, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.UserID != nil {
		t.Errorf("anonymous attempt has user %v", *attempt.UserID)
	}
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	_, err := svc.SubmitAttempt(9999, QuizSubmission{}, nil)
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}

// 静态页测验首次访问自动配备，重复访问复用同一条
func TestEnsureStaticQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	id1, err := svc.EnsureStaticQuiz(3)
	if err != nil {
		t.Fatalf("EnsureStaticQuiz: %v", err)
	}
	id2, err := svc.EnsureStaticQuiz(3)
	if err != nil {
		t.Fatalf("EnsureStaticQuiz again: %v", err)
	}
	if id1 != id2 {
		t.Errorf("static quiz ids differ: %d vs %d", id1, id2)
	}

	quiz, err := svc.GetQuiz(id1)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if quiz.PassMark != 60 {
		t.Errorf("static pass mark = %d, want 60", quiz.PassMark)
	}

	other, err := svc.EnsureStaticQuiz(4)
	if err != nil {
		t.Fatalf("EnsureStaticQuiz(4): %v", err)
	}
	if other == id1 {
		t.Error("different static pages must map to different quizzes")
	}
}

func TestEnsureStaticQuizOutOfRange(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	for _, num := range []int{0, 9, -1} {
		if _, err := svc.EnsureStaticQuiz(num); !errors.Is(err, util.ErrQuizNotFound) {
			t.Errorf("EnsureStaticQuiz(%d) err = %v, want ErrQuizNotFound", num, err)
		}
	}
}

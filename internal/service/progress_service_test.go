package service

import (
	"errors"
	"testing"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func TestSetLessonCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	user := createUser(t, db, "a@example.com")
	course := createCourse(t, db, "go-basics", "Go Basics")
	lesson := course.Modules[0].Lessons[0]

	row, err := svc.SetLessonCompletion(user.ID, lesson.ID, true)
	if err != nil {
		t.Fatalf("SetLessonCompletion: %v", err)
	}
	if !row.Completed {
		t.Error("expected completed")
	}
	if row.CompletedAt == nil {
		t.Error("completed_at missing")
	}
}

func TestSetLessonCompletionUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	user := createUser(t, db, "a@example.com")

	if _, err := svc.SetLessonCompletion(user.ID, 9999, true); !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
}

// 取消完成清空时间戳，且始终只有一行
func TestSetLessonCompletionToggle(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	user := createUser(t, db, "a@example.com")
	course := createCourse(t, db, "go-basics", "Go Basics")
	lesson := course.Modules[0].Lessons[0]

	if _, err := svc.SetLessonCompletion(user.ID, lesson.ID, true); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	row, err := svc.SetLessonCompletion(user.ID, lesson.ID, false)
	if err != nil {
		t.Fatalf("mark incomplete: %v", err)
	}
	if row.Completed {
		t.Error("expected not completed")
	}
	if row.CompletedAt != nil {
		t.Errorf("completed_at = %v, want nil after uncompleting", row.CompletedAt)
	}

	var count int64
	db.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("completion rows = %d, want 1", count)
	}
}

// 重复标记完成刷新时间戳到最近一次
func TestSetLessonCompletionRefreshesTimestamp(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	user := createUser(t, db, "a@example.com")
	course := createCourse(t, db, "go-basics", "Go Basics")
	lesson := course.Modules[0].Lessons[0]

	first, err := svc.SetLessonCompletion(user.ID, lesson.ID, true)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := svc.SetLessonCompletion(user.ID, lesson.ID, true)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !second.CompletedAt.After(*first.CompletedAt) {
		t.Errorf("timestamp not refreshed: %v -> %v", first.CompletedAt, second.CompletedAt)
	}
}

func TestCompletedLessonIDsScopedToCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	user := createUser(t, db, "a@example.com")
	course := createCourse(t, db, "go-basics", "Go Basics")
	other := createCourse(t, db, "sql-intro", "SQL Intro")

	if _, err := svc.SetLessonCompletion(user.ID, course.Modules[0].Lessons[0].ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.SetLessonCompletion(user.ID, other.Modules[0].Lessons[0].ID, true); err != nil {
		t.Fatalf("complete other: %v", err)
	}

	ids, err := svc.CompletedLessonIDs(user.ID, course.ID)
	if err != nil {
		t.Fatalf("CompletedLessonIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != course.Modules[0].Lessons[0].ID {
		t.Errorf("ids = %v, want only lesson from go-basics", ids)
	}
}

func TestCourseCompletionForLessonCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)

	user := createUser(t, db, "a@example.com")
	course := createCourse(t, db, "go-basics", "Go Basics")
	other := createCourse(t, db, "sql-intro", "SQL Intro")
	lesson := course.Modules[0].Lessons[0]

	if _, err := svc.SetLessonCompletion(user.ID, lesson.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.SetLessonCompletion(user.ID, other.Modules[0].Lessons[0].ID, true); err != nil {
		t.Fatalf("complete other: %v", err)
	}

	// 只凭课时ID反查所属课程，返回的集合不带别的课程的课时
	ids, err := svc.CourseCompletion(user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("CourseCompletion: %v", err)
	}
	if len(ids) != 1 || ids[0] != lesson.ID {
		t.Errorf("ids = %v, want only %d", ids, lesson.ID)
	}

	if _, err := svc.CourseCompletion(user.ID, 9999); !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
}

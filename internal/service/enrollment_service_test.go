package service

import (
	"errors"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

func TestEnrollIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)

	user := createUser(t, db, "a@example.com")
	createCourse(t, db, "go-basics", "Go Basics")

	first, created, err := svc.Enroll(user.ID, "go-basics")
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if !created {
		t.Error("first enroll should report created")
	}

	second, created, err := svc.Enroll(user.ID, "go-basics")
	if err != nil {
		t.Fatalf("second Enroll: %v", err)
	}
	if created {
		t.Error("repeated enroll must not report created")
	}
	if first.ID != second.ID {
		t.Errorf("enrollment ids differ: %d vs %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&model.Enrollment{}).Count(&count)
	if count != 1 {
		t.Errorf("enrollment rows = %d, want 1", count)
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	user := createUser(t, db, "a@example.com")

	if _, _, err := svc.Enroll(user.ID, "no-such"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
}

// 禁用课程对选课不可见
func TestEnrollInactiveCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	user := createUser(t, db, "a@example.com")

	course := createCourse(t, db, "hidden", "Hidden")
	db.Model(course).Update("is_active", false)

	if _, _, err := svc.Enroll(user.ID, "hidden"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestUnenrollNotEnrolledIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)

	user := createUser(t, db, "a@example.com")
	createCourse(t, db, "go-basics", "Go Basics")

	if err := svc.Unenroll(user.ID, "go-basics"); err != nil {
		t.Errorf("unenroll without enrollment should succeed, got %v", err)
	}
}

func TestUnenrollThenReenroll(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)

	user := createUser(t, db, "a@example.com")
	course := createCourse(t, db, "go-basics", "Go Basics")

	if _, _, err := svc.Enroll(user.ID, "go-basics"); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := svc.Unenroll(user.ID, "go-basics"); err != nil {
		t.Fatalf("Unenroll: %v", err)
	}

	enrolled, err := svc.IsEnrolled(user.ID, course.ID)
	if err != nil {
		t.Fatalf("IsEnrolled: %v", err)
	}
	if enrolled {
		t.Error("still enrolled after unenroll")
	}

	// 硬删除后可重新选课，不会撞唯一索引
	if _, created, err := svc.Enroll(user.ID, "go-basics"); err != nil || !created {
		t.Errorf("re-enroll created=%v err=%v, want created=true", created, err)
	}
}

func TestEnrollUserUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	createCourse(t, db, "go-basics", "Go Basics")

	if _, _, err := svc.EnrollUser(9999, "go-basics"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSetStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)

	user := createUser(t, db, "a@example.com")
	course := createCourse(t, db, "go-basics", "Go Basics")

	if _, _, err := svc.Enroll(user.ID, "go-basics"); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	enrollment, err := svc.SetStatus(user.ID, course.ID, model.EnrollmentCompleted)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if enrollment.Status != model.EnrollmentCompleted {
		t.Errorf("status = %s, want completed", enrollment.Status)
	}

	if _, err := svc.SetStatus(user.ID, 9999, model.EnrollmentCompleted); !errors.Is(err, util.ErrNotEnrolled) {
		t.Errorf("err = %v, want ErrNotEnrolled", err)
	}
}

func TestEnrolledSlugs(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)

	user := createUser(t, db, "a@example.com")
	createCourse(t, db, "go-basics", "Go Basics")
	createCourse(t, db, "sql-intro", "SQL Intro")

	if _, _, err := svc.Enroll(user.ID, "sql-intro"); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	slugs, err := svc.EnrolledSlugs(user.ID)
	if err != nil {
		t.Fatalf("EnrolledSlugs: %v", err)
	}
	if len(slugs) != 1 || slugs[0] != "sql-intro" {
		t.Errorf("slugs = %v, want [sql-intro]", slugs)
	}
}

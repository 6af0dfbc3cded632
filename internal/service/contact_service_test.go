package service

import (
	"errors"
	"testing"

	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
)

func TestContactSubmit(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(repository.NewContactRepository(db))

	msg, err := svc.Submit("  Ada ", " Ada@Example.COM ", " hello there ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if msg.Name != "Ada" {
		t.Errorf("name = %q, want trimmed", msg.Name)
	}
	if msg.Email != "ada@example.com" {
		t.Errorf("email = %q, want lowercased", msg.Email)
	}
	if msg.ID == 0 {
		t.Error("message not persisted")
	}
}

func TestContactSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(repository.NewContactRepository(db))

	cases := []struct {
		name, email, message string
	}{
		{"", "a@b.com", "hi"},
		{"Ada", "", "hi"},
		{"Ada", "a@b.com", ""},
		{"   ", "a@b.com", "hi"},
	}
	for _, c := range cases {
		if _, err := svc.Submit(c.name, c.email, c.message); !errors.Is(err, util.ErrInvalidInput) {
			t.Errorf("Submit(%q,%q,%q) err = %v, want ErrInvalidInput", c.name, c.email, c.message, err)
		}
	}
}

func TestContactListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(repository.NewContactRepository(db))

	if _, err := svc.Submit("A", "a@b.com", "first"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Submit("B", "b@b.com", "second"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	msgs, err := svc.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if msgs[0].Message != "second" {
		t.Errorf("first listed = %q, want newest first", msgs[0].Message)
	}
}

func TestDashboardProgress(t *testing.T) {
	db := newTestDB(t)
	enrollSvc := newEnrollmentService(db)
	progressSvc := newProgressService(db)
	dashSvc := NewDashboardService(
		repository.NewEnrollmentRepository(db),
		repository.NewCompletionRepository(db),
		repository.NewCourseRepository(db),
	)

	user := createUser(t, db, "a@example.com")
	course := createCourse(t, db, "go-basics", "Go Basics")

	if _, _, err := enrollSvc.Enroll(user.ID, "go-basics"); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, err := progressSvc.SetLessonCompletion(user.ID, course.Modules[0].Lessons[0].ID, true); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	items, err := dashSvc.GetDashboard(user.ID)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Progress != 50 {
		t.Errorf("progress = %d, want 50 (1 of 2 lessons)", items[0].Progress)
	}
	if items[0].NLessons != 2 {
		t.Errorf("nLessons = %d, want 2", items[0].NLessons)
	}
	if items[0].Status != "active" {
		t.Errorf("status = %q, want active", items[0].Status)
	}
}

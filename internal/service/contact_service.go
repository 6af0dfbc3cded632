package service

import (
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"strings"
)

// ContactService 联系表单收件箱，只增不改
type ContactService struct {
	ContactRepo *repository.ContactRepository
}

func NewContactService(contactRepo *repository.ContactRepository) *ContactService {
	return &ContactService{ContactRepo: contactRepo}
}

func (s *ContactService) Submit(name, email, message string) (*model.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	message = strings.TrimSpace(message)

	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", util.ErrInvalidInput)
	}

	msg := &model.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.ContactRepo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ContactService) List(limit int) ([]model.ContactMessage, error) {
	return s.ContactRepo.List(limit)
}

package service

import (
	"errors"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Cfg:         cfg,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Country   string
	Timezone  string
}

// Register 邮箱即账号，注册时一并建立资料行
func (s *AuthService) Register(in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      model.Student,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	// 前端没取到时区时回落到 UTC
	tz := in.Timezone
	if tz == "" {
		tz = "UTC"
	}

	profile, err := s.ProfileRepo.GetOrCreate(user.ID)
	if err != nil {
		return nil, err
	}
	profile.Country = in.Country
	profile.Timezone = tz
	if err := s.ProfileRepo.Save(profile); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if user.Disabled {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

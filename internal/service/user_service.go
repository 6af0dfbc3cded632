package service

import (
	"context"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
	Storage     *StorageService
}

func NewUserService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Storage:     storage,
	}
}

// GetOrCreateProfile 资料行不存在时惰性创建，不会因缺失而失败
func (s *UserService) GetOrCreateProfile(userID uint) (*model.User, *model.UserProfile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.ProfileRepo.GetOrCreate(userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Country   *string
	Timezone  *string
	Bio       *string
}

// UpdateProfile 逐字段局部更新：请求里带了才覆盖，没带保持原值
func (s *UserService) UpdateProfile(userID uint, upd ProfileUpdate) (*model.User, *model.UserProfile, error) {
	user, profile, err := s.GetOrCreateProfile(userID)
	if err != nil {
		return nil, nil, err
	}

	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Email != nil && *upd.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if err := s.UserRepo.Save(user); err != nil {
		return nil, nil, err
	}

	if upd.Phone != nil {
		profile.Phone = *upd.Phone
	}
	if upd.Country != nil {
		profile.Country = *upd.Country
	}
	if upd.Timezone != nil {
		profile.Timezone = *upd.Timezone
	}
	if upd.Bio != nil {
		profile.Bio = *upd.Bio
	}
	if err := s.ProfileRepo.Save(profile); err != nil {
		return nil, nil, err
	}

	return user, profile, nil
}

// UploadAvatar 头像走存储服务，文件名随机化避免覆盖
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	profile, err := s.ProfileRepo.GetOrCreate(userID)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	filename := "avatars/" + uuid.New().String() + ext

	url, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	profile.Avatar = url
	if err := s.ProfileRepo.Save(profile); err != nil {
		return "", err
	}
	return url, nil
}

// GetPreferences 返回存储的偏好原样，消费方需容忍缺失的键
func (s *UserService) GetPreferences(userID uint) (map[string]interface{}, error) {
	profile, err := s.ProfileRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if profile.Prefs == nil {
		return map[string]interface{}{}, nil
	}
	return profile.Prefs, nil
}

type PreferencesInput struct {
	Theme         string
	Announcements string
	Reminders     string
	Marketing     string
}

// UpdatePreferences 四个已知键整体覆盖写入：请求里缺失的键回落到硬编码默认值，
// 而不是之前存储的值。这是既有前端依赖的固定契约，不要"修复"成部分合并。
func (s *UserService) UpdatePreferences(userID uint, in PreferencesInput) (map[string]interface{}, error) {
	profile, err := s.ProfileRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	defaults := model.DefaultPrefs()

	theme := in.Theme
	if theme == "" {
		theme = defaults[model.PrefTheme].(string)
	}

	boolOrDefault := func(raw string, def bool) bool {
		if raw == "" {
			return def
		}
		switch strings.ToLower(raw) {
		case "true", "1", "on":
			return true
		}
		return false
	}

	profile.Prefs = map[string]interface{}{
		model.PrefTheme:         theme,
		model.PrefAnnouncements: boolOrDefault(in.Announcements, defaults[model.PrefAnnouncements].(bool)),
		model.PrefReminders:     boolOrDefault(in.Reminders, defaults[model.PrefReminders].(bool)),
		model.PrefMarketing:     boolOrDefault(in.Marketing, defaults[model.PrefMarketing].(bool)),
	}

	if err := s.ProfileRepo.Save(profile); err != nil {
		return nil, err
	}
	return profile.Prefs, nil
}

// DeleteAccount 删除账号，选课、进度、资料经外键级联一并清理
func (s *UserService) DeleteAccount(userID uint) error {
	return s.UserRepo.Delete(userID)
}

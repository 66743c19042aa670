package services

import (
	"context"
	"log"
	"strings"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	AdminInviteToken string
	ProfileImageURL  string
}

// ProfileUpdateInput: empty strings keep the old value; a non-empty
// password is re-hashed; a non-zero chat id links Telegram notifications.
type ProfileUpdateInput struct {
	Name            string
	Email           string
	Password        string
	ProfileImageURL string
	TelegramChatID  int64
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, in ProfileUpdateInput) (*models.User, error)
	SetProfileImage(ctx context.Context, id int64, url string) (*models.User, error)
	ListMembers(ctx context.Context) ([]models.UserWithTaskCounts, error)
	GetWithTaskCounts(ctx context.Context, id int64) (*models.UserWithTaskCounts, error)
}

type userService struct {
	repo         repositories.UserRepository
	tasks        repositories.TaskRepository
	authService  AuthService
	emailService EmailService
	inviteToken  string
}

func NewUserService(repo repositories.UserRepository, tasks repositories.TaskRepository, authService AuthService, emailService EmailService, inviteToken string) UserService {
	return &userService{
		repo:         repo,
		tasks:        tasks,
		authService:  authService,
		emailService: emailService,
		inviteToken:  inviteToken,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, validation("All fields are required")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validation("User already exists")
	}

	role := models.RoleMember
	if in.AdminInviteToken != "" && s.inviteToken != "" && in.AdminInviteToken == s.inviteToken {
		role = models.RoleAdmin
	}

	hash, err := s.authService.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:            name,
		Email:           email,
		PasswordHash:    hash,
		Role:            role,
		ProfileImageURL: in.ProfileImageURL,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail registration
			log.Printf("Register: warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !s.authService.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, in ProfileUpdateInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.ProfileImageURL != "" {
		user.ProfileImageURL = in.ProfileImageURL
	}
	if in.TelegramChatID != 0 {
		user.TelegramChatID = in.TelegramChatID
	}
	if in.Password != "" {
		hash, err := s.authService.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) SetProfileImage(ctx context.Context, id int64, url string) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.ProfileImageURL = url
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListMembers(ctx context.Context) ([]models.UserWithTaskCounts, error) {
	users, err := s.repo.ListByRole(ctx, models.RoleMember)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserWithTaskCounts, 0, len(users))
	for _, u := range users {
		counts, err := s.taskCounts(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		counts.User = *u
		out = append(out, counts)
	}
	return out, nil
}

func (s *userService) GetWithTaskCounts(ctx context.Context, id int64) (*models.UserWithTaskCounts, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.taskCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	counts.User = *user
	return &counts, nil
}

func (s *userService) taskCounts(ctx context.Context, userID int64) (models.UserWithTaskCounts, error) {
	var out models.UserWithTaskCounts
	count := func(st models.TaskStatus) (int, error) {
		return s.tasks.Count(ctx, models.TaskFilter{
			AssigneeID: &userID,
			Statuses:   []models.TaskStatus{st},
		})
	}
	var err error
	if out.PendingTasks, err = count(models.StatusPending); err != nil {
		return out, err
	}
	if out.InProgressTasks, err = count(models.StatusInProgress); err != nil {
		return out, err
	}
	if out.CompletedTasks, err = count(models.StatusCompleted); err != nil {
		return out, err
	}
	return out, nil
}

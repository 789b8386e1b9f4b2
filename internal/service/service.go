package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyhub/studyhub-server/internal/cache"
	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/realtime"
	"github.com/studyhub/studyhub-server/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.UserResponse, error)

	// Social graph
	SendFriendRequest(ctx context.Context, senderID, receiverID string) error
	AcceptFriendRequest(ctx context.Context, receiverID, senderID string) error
	RejectFriendRequest(ctx context.Context, receiverID, senderID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
	ListFriends(ctx context.Context, userID string) ([]models.FriendSummary, error)
	ListFriendRequests(ctx context.Context, userID string) ([]models.UserSummary, error)
	SearchUsers(ctx context.Context, callerID, query string) ([]models.SearchResult, error)
	FriendTodos(ctx context.Context, userID, friendID string) ([]models.Todo, error)

	// Study sessions and aggregation
	RecordStudySession(ctx context.Context, userID string, durationMinutes int) (*models.StudySession, error)
	StartStudySession(ctx context.Context, userID string) (*models.StudySession, error)
	FinishStudySession(ctx context.Context, userID, sessionID string) (*models.StudySession, error)
	ListStudySessions(ctx context.Context, userID string) ([]models.StudySession, error)
	WeeklyStudyMinutes(ctx context.Context, userID string, now time.Time) (int, error)

	// Todos
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	AddTodo(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID string, req models.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error

	// Transactions
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	AddTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, txnID string, req models.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, txnID string) error
	MonthlySummary(ctx context.Context, userID string, year, month int) (*models.MonthlySummaryResponse, error)

	// Timetable
	ListTimeSlots(ctx context.Context, userID string) ([]models.TimeSlot, error)
	AddTimeSlot(ctx context.Context, userID string, req models.CreateTimeSlotRequest) (*models.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, userID, slotID string, req models.UpdateTimeSlotRequest) (*models.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, userID, slotID string) error

	// Library
	ListLibraryItems(ctx context.Context, userID string) ([]models.LibraryItem, error)
	AddLibraryItem(ctx context.Context, userID string, req models.CreateLibraryItemRequest) (*models.LibraryItem, error)
	DeleteLibraryItem(ctx context.Context, userID, itemID string) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
	hub           *realtime.Hub
	weekly        *cache.WeeklyStudyCache
}

// NewDefaultService creates a new DefaultService. The hub and the weekly
// cache may be nil; change events and caching are then disabled.
func NewDefaultService(repo repository.Repository, jwtSecret string, hub *realtime.Hub, weekly *cache.WeeklyStudyCache) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
		hub:           hub,
		weekly:        weekly,
	}
}

// Authentication methods
func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// Create the user
	user := &models.User{
		ID:       uuid.New().String(),
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &models.AuthResponse{
		Status: "success",
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	// Get the user
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Generate JWT token
	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

func (s *DefaultService) GetProfile(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	return &models.UserResponse{
		Status:    "success",
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		StudyTime: user.StudyTime,
	}, nil
}

// notify publishes a change event when a hub is attached.
func (s *DefaultService) notify(userID, resource string) {
	if s.hub != nil {
		s.hub.Changed(userID, resource)
	}
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": user.ID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/studyhub/studyhub-server/internal/models"
)

// ErrMissingReference reports that a write referenced a row that no longer
// exists, such as a friend request whose receiver was deleted between the
// caller's existence check and the insert.
var ErrMissingReference = errors.New("referenced row does not exist")

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
	AddStudyTime(ctx context.Context, userID string, minutes int) error

	// Social graph operations
	CreateFriendRequest(ctx context.Context, senderID, receiverID string) error
	DeleteFriendRequest(ctx context.Context, senderID, receiverID string) error
	HasFriendRequest(ctx context.Context, senderID, receiverID string) (bool, error)
	ListFriendRequestSenders(ctx context.Context, receiverID string) ([]string, error)
	AcceptFriendRequest(ctx context.Context, receiverID, senderID string) (bool, error)
	RemoveFriendship(ctx context.Context, userID, friendID string) error
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)

	// Study session operations
	CreateStudySession(ctx context.Context, session *models.StudySession) error
	GetStudySession(ctx context.Context, id string) (*models.StudySession, error)
	FinishStudySession(ctx context.Context, id string, endedAt time.Time, durationMinutes int) (bool, error)
	ListStudySessions(ctx context.Context, userID string, limit int) ([]models.StudySession, error)
	ListStudySessionsSince(ctx context.Context, userID string, since time.Time) ([]models.StudySession, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	SummarizeTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.CategorySummary, error)

	// Todo operations
	CreateTodo(ctx context.Context, todo *models.Todo) error
	GetTodo(ctx context.Context, id string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, todo *models.Todo) error
	DeleteTodo(ctx context.Context, id string) error
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	ListRecentTodos(ctx context.Context, userID string, limit int) ([]models.Todo, error)

	// Timetable operations
	CreateTimeSlot(ctx context.Context, slot *models.TimeSlot) error
	GetTimeSlot(ctx context.Context, id string) (*models.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, slot *models.TimeSlot) error
	DeleteTimeSlot(ctx context.Context, id string) error
	ListTimeSlots(ctx context.Context, userID string) ([]models.TimeSlot, error)

	// Library operations
	CreateLibraryItem(ctx context.Context, item *models.LibraryItem) error
	GetLibraryItem(ctx context.Context, id string) (*models.LibraryItem, error)
	DeleteLibraryItem(ctx context.Context, id string) error
	ListLibraryItems(ctx context.Context, userID string) ([]models.LibraryItem, error)
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, password, study_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	// Generate a new UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Password, user.StudyTime, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *PostgresRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	sqlQuery := `
		SELECT * FROM users
		WHERE email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 50
	`

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, sqlQuery, query); err != nil {
		return nil, err
	}

	return users, nil
}

// AddStudyTime bumps the cumulative study minute counter atomically, so
// concurrent session recordings never lose an update.
func (r *PostgresRepository) AddStudyTime(ctx context.Context, userID string, minutes int) error {
	query := `UPDATE users SET study_time = study_time + $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, minutes, time.Now().UTC(), userID)
	return err
}

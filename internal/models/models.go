package models

import (
	"time"
)

// User represents a user account. StudyTime is the cumulative number of
// study minutes ever recorded for the user; the weekly figure is always
// derived from study_sessions, never stored here.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	StudyTime int       `db:"study_time" json:"studyTime"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Friendship is one direction of the symmetric friends relation. A
// friendship between A and B is stored as the row pair (A,B) and (B,A);
// the pair is created and removed together inside a transaction.
type Friendship struct {
	UserID    string    `db:"user_id" json:"userId"`
	FriendID  string    `db:"friend_id" json:"friendId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// FriendRequest is a pending inbound friend request. It exists from the
// moment the sender issues it until the receiver accepts or rejects it.
type FriendRequest struct {
	SenderID   string    `db:"sender_id" json:"senderId"`
	ReceiverID string    `db:"receiver_id" json:"receiverId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// StudySession is an append-only study event. A session recorded after the
// fact carries DurationMinutes directly; a session tracked live has a
// StartedAt and, once finished, an EndedAt from which the duration is
// computed. An in-progress session has neither EndedAt nor DurationMinutes.
type StudySession struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"userId"`
	StartedAt       time.Time  `db:"started_at" json:"startedAt"`
	EndedAt         *time.Time `db:"ended_at" json:"endedAt,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"durationMinutes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
}

// Transaction types.
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// Transaction is a single expense or income entry. Credits increase the
// net balance, debits decrease it.
type Transaction struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"userId"`
	Amount          float64   `db:"amount" json:"amount"`
	Category        string    `db:"category" json:"category"`
	Description     string    `db:"description" json:"description"`
	TransactionType string    `db:"transaction_type" json:"transactionType"`
	OccurredAt      time.Time `db:"occurred_at" json:"date"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// TransactionCategories is the fixed set of student expense categories.
var TransactionCategories = []string{
	"Books & Supplies",
	"Tuition & Fees",
	"Food",
	"Housing",
	"Transportation",
	"Entertainment",
	"Technology",
	"Health",
	"Clothing",
	"Other",
}

// ValidCategory reports whether c is one of the fixed transaction categories.
func ValidCategory(c string) bool {
	for _, known := range TransactionCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Todo is a to-do list entry.
type Todo struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Task      string    `db:"task" json:"task"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TimeSlot is a weekly timetable entry. Day is a weekday name and
// StartTime/EndTime are HH:MM strings; the timetable repeats every week,
// so no dates are stored.
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Day       string    `db:"day" json:"day"`
	StartTime string    `db:"start_time" json:"startTime"`
	EndTime   string    `db:"end_time" json:"endTime"`
	Subject   string    `db:"subject" json:"subject"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// LibraryItem is a reference to a file stored in the user's cloud drive.
// Only the reference is kept here; the file itself lives with the external
// storage provider.
type LibraryItem struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Title       string    `db:"title" json:"title"`
	DriveFileID string    `db:"drive_file_id" json:"driveFileId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// CategorySummary is one row of a monthly transaction summary. NetTotal
// carries credits positive and debits negative; AbsoluteTotal sums the
// magnitudes regardless of type.
type CategorySummary struct {
	Category      string  `db:"category" json:"category"`
	NetTotal      float64 `db:"net_total" json:"netTotal"`
	AbsoluteTotal float64 `db:"absolute_total" json:"absoluteTotal"`
}

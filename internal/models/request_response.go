package models

// Request models
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SendFriendRequestRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// CreateSessionRequest records a study session. With a positive
// durationMinutes the session is recorded as already completed; without one
// an in-progress session is started and finished later.
type CreateSessionRequest struct {
	DurationMinutes int `json:"durationMinutes" binding:"omitempty,gt=0"`
}

type CreateTodoRequest struct {
	Task string `json:"task" binding:"required"`
}

type UpdateTodoRequest struct {
	Task      *string `json:"task,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type CreateTransactionRequest struct {
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	Category        string  `json:"category" binding:"required"`
	Description     string  `json:"description"`
	Date            string  `json:"date" binding:"required"` // RFC 3339
	TransactionType string  `json:"transactionType" binding:"omitempty,oneof=credit debit"`
}

type UpdateTransactionRequest struct {
	Amount          *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Category        *string  `json:"category,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Date            *string  `json:"date,omitempty"`
	TransactionType *string  `json:"transactionType,omitempty" binding:"omitempty,oneof=credit debit"`
}

type CreateTimeSlotRequest struct {
	Day       string `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
}

type UpdateTimeSlotRequest struct {
	Day       *string `json:"day,omitempty" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Subject   *string `json:"subject,omitempty"`
}

type CreateLibraryItemRequest struct {
	Title       string `json:"title" binding:"required"`
	DriveFileID string `json:"driveFileId" binding:"required"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type UserResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	StudyTime int    `json:"studyTime"`
}

// UserSummary is a public view of another user, used for pending friend
// requests.
type UserSummary struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// SearchResult is a search hit: a user summary plus whether the searching
// user is already friends with them.
type SearchResult struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsFriend bool   `json:"isFriend"`
}

// FriendSummary is a friend entry enriched with the current week's study
// minutes for leaderboard display.
type FriendSummary struct {
	UserID             string `json:"userId"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	WeeklyStudyMinutes int    `json:"weeklyStudyMinutes"`
}

type FriendsResponse struct {
	Status  string          `json:"status"`
	Friends []FriendSummary `json:"friends"`
}

type FriendRequestsResponse struct {
	Status   string        `json:"status"`
	Requests []UserSummary `json:"requests"`
}

type SearchUsersResponse struct {
	Status string         `json:"status"`
	Users  []SearchResult `json:"users"`
}

type SessionResponse struct {
	Status  string        `json:"status"`
	Session *StudySession `json:"session,omitempty"`
}

type SessionsResponse struct {
	Status   string         `json:"status"`
	Sessions []StudySession `json:"sessions"`
}

type WeeklyStudyResponse struct {
	Status       string `json:"status"`
	TotalMinutes int    `json:"totalMinutes"`
	WeekStart    string `json:"weekStart"`
}

type TodosResponse struct {
	Status string `json:"status"`
	Todos  []Todo `json:"todos"`
}

type TodoResponse struct {
	Status string `json:"status"`
	Todo   *Todo  `json:"todo,omitempty"`
}

type TransactionsResponse struct {
	Status       string        `json:"status"`
	Transactions []Transaction `json:"transactions"`
}

type TransactionResponse struct {
	Status      string       `json:"status"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

// MonthlySummaryResponse reports per-category totals for a calendar month.
// TotalExpenditure sums the absolute totals of the categories whose net is
// negative, which is the figure the expense chart displays.
type MonthlySummaryResponse struct {
	Status           string            `json:"status"`
	Year             int               `json:"year"`
	Month            int               `json:"month"`
	Categories       []CategorySummary `json:"categories"`
	TotalExpenditure float64           `json:"totalExpenditure"`
}

type TimetableResponse struct {
	Status string     `json:"status"`
	Slots  []TimeSlot `json:"slots"`
}

type TimeSlotResponse struct {
	Status string    `json:"status"`
	Slot   *TimeSlot `json:"slot,omitempty"`
}

type LibraryResponse struct {
	Status string        `json:"status"`
	Items  []LibraryItem `json:"items"`
}

type LibraryItemResponse struct {
	Status string       `json:"status"`
	Item   *LibraryItem `json:"item,omitempty"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

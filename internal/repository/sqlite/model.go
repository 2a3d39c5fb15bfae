package sqlite

// Task represents a task row.
// DueDate and Category use pointers to allow NULL values.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Priority    string
	Status      string
	CreatedAt   string
	DueDate     *string
	Category    *string
}

// User represents a user row.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    string
}

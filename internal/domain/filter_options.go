package domain

// Sort keys accepted by FilterOptions.SortBy. An empty SortBy falls back to
// insertion order by id.
const (
	SortByDueDate   = "due_date"
	SortByPriority  = "priority"
	SortByCreatedAt = "created_at"
)

// FilterOptions represents list criteria for tasks. Nil fields mean
// "no filter"; category matching is case-insensitive.
type FilterOptions struct {
	UserID   int64
	Status   *string
	Priority *string
	Category *string
	SortBy   string
}

package board

// Post is a board entry. There is no account concept: a post is owned by
// whoever knows the password it was created with.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    int64     `json:"createdAt"`
	UpdatedAt    int64     `json:"updatedAt,omitempty"`
	Comments     []Comment `json:"comments"`
	CommentCount int       `json:"commentCount"`
}

// Comment belongs to exactly one post and is removed together with it.
type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// PostSummary is the list-view projection of a post (no body, no comments).
type PostSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CreatedAt    int64  `json:"createdAt"`
	CommentCount int    `json:"commentCount"`
}

// PostList is one page of the board index.
type PostList struct {
	Posts      []PostSummary `json:"posts"`
	NextOffset int           `json:"nextOffset"`
	HasMore    bool          `json:"hasMore"`
}

// interestCategories is the fixed set of ad-interest labels the banner
// frontend may report. Anything else is rejected before it reaches storage.
var interestCategories = map[string]struct{}{
	"card":      {},
	"insurance": {},
	"health":    {},
	"education": {},
	"housing":   {},
	"pension":   {},
	"donation":  {},
	"finance":   {},
}

// ValidInterestCategory reports whether category is one of the known labels.
func ValidInterestCategory(category string) bool {
	_, ok := interestCategories[category]
	return ok
}

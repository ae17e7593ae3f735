package models

import "time"

// Sort names accepted by the list endpoints
const (
	SortNew            = "new"
	SortTopRated       = "top_rated"
	SortMostComplaints = "most_complaints"
	SortTop            = "top"
	SortDiscussed      = "discussed"
	SortPopular        = "popular"
	SortName           = "name"
)

// Search result kinds
const (
	KindPost    = "post"
	KindBrief   = "brief"
	KindProduct = "product"
)

// Vote directions
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Request types

type CreateRatingRequest struct {
	Score   int     `json:"score" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// Nil fields are left unchanged
type UpdateRatingRequest struct {
	Score   *int    `json:"score" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

type VoteRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// Response envelopes

type PageMeta struct {
	HasNext    bool    `json:"has_next"`
	NextCursor *string `json:"next_cursor"`
}

type ListResponse[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type DataResponse[T any] struct {
	Data T `json:"data"`
}

type VoteResponse struct {
	PostID    string `json:"post_id"`
	Direction string `json:"direction"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	Score     int    `json:"score"`
}

// Domain types

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TagCount struct {
	Tag
	Count int `json:"count"`
}

type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	AuthorName   string    `json:"author_name"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
	Score        int       `json:"score"`
	CommentCount int       `json:"comment_count"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

type Brief struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	Category       string    `json:"category"`
	ComplaintCount int       `json:"complaint_count"`
	RatingAvg      float64   `json:"rating_avg"`
	RatingCount    int       `json:"rating_count"`
	Tags           []string  `json:"tags"`
	CreatedAt      time.Time `json:"created_at"`
}

type Complaint struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Excerpt   string    `json:"excerpt"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type BriefDetail struct {
	Brief
	Complaints          []Complaint `json:"complaints"`
	ComplaintsTruncated bool        `json:"complaints_truncated"`
}

type Product struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Tagline      string    `json:"tagline"`
	WebsiteURL   string    `json:"website_url"`
	MentionCount int       `json:"mention_count"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

type Rating struct {
	ID        string    `json:"id"`
	BriefID   string    `json:"brief_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SearchResult struct {
	Kind      string    `json:"type"`
	ID        string    `json:"id"`
	Slug      string    `json:"slug,omitempty"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

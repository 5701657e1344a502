package model

import "time"

type ForumCategory string

const (
	CategoryGeneral       ForumCategory = "general"
	CategoryAnxiety       ForumCategory = "anxiety"
	CategoryDepression    ForumCategory = "depression"
	CategoryAcademic      ForumCategory = "academic"
	CategorySupport       ForumCategory = "support"
	CategoryRelationships ForumCategory = "relationships"
)

// Valid reports whether c is a known category.
func (c ForumCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryAnxiety, CategoryDepression, CategoryAcademic, CategorySupport, CategoryRelationships:
		return true
	}
	return false
}

// AnonymousAuthor is shown for posts made without a name.
const AnonymousAuthor = "Anonymous User"

// Post is a peer forum thread
type Post struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Content     string        `json:"content" bson:"content"`
	Category    ForumCategory `json:"category" bson:"category"`
	AuthorID    string        `json:"-" bson:"authorId,omitempty"`
	AuthorName  string        `json:"author" bson:"authorName"`
	IsAnonymous bool          `json:"isAnonymous" bson:"isAnonymous"`
	Likes       int           `json:"likes" bson:"likes"`
	Replies     int           `json:"replies" bson:"replies"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}

// Reply is a response within a thread
type Reply struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	PostID      string    `json:"postId" bson:"postId"`
	Content     string    `json:"content" bson:"content"`
	AuthorID    string    `json:"-" bson:"authorId,omitempty"`
	AuthorName  string    `json:"author" bson:"authorName"`
	IsAnonymous bool      `json:"isAnonymous" bson:"isAnonymous"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// CreatePostRequest is the request body for POST /v1/forum/posts
type CreatePostRequest struct {
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Category    ForumCategory `json:"category"`
	IsAnonymous bool          `json:"isAnonymous"`
}

// CreateReplyRequest is the request body for POST /v1/forum/posts/{postId}/replies
type CreateReplyRequest struct {
	Content     string `json:"content"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// PostThread is a post with its replies.
type PostThread struct {
	Post    *Post    `json:"post"`
	Replies []*Reply `json:"replies"`
}

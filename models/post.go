package models

import "time"

// Post is a blog entry written by a single author.
type Post struct {
	PostID     int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserID     int64     `json:"user_id"`
	Author     string    `json:"author,omitempty"`
	DatePosted time.Time `json:"date_posted"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// PostDetail is a post together with its like count and comment thread.
type PostDetail struct {
	Post     Post           `json:"post"`
	Likes    int64          `json:"likes"`
	Comments []*CommentNode `json:"comments"`
}

// Comment is a remark on a post. ParentID links replies to the comment they
// answer; top-level comments have no parent.
type Comment struct {
	CommentID int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Author    string    `json:"author,omitempty"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Comment model.
func (c Comment) TableName() string {
	return "comments"
}

// CommentNode is a comment with its replies nested underneath it.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentThread arranges a flat list of comments into reply trees.
// Order within each level follows the order of the input slice; replies whose
// parent is missing from the input are promoted to the top level.
func BuildCommentThread(comments []Comment) []*CommentNode {
	nodes := make(map[int64]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.CommentID] = &CommentNode{Comment: c, Replies: []*CommentNode{}}
	}

	roots := make([]*CommentNode, 0)
	for _, c := range comments {
		node := nodes[c.CommentID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// PostLike records that a user likes a post. A user likes a post at most once.
type PostLike struct {
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the PostLike model.
func (l PostLike) TableName() string {
	return "post_likes"
}

// LikeState is the outcome of toggling a like.
type LikeState struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// PostsPage is one page of posts, newest first.
type PostsPage struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"total_pages"`
}

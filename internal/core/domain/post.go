package domain

import (
	"strings"
	"time"
)

// PostContent is the set of post fields an author may replace.
type PostContent struct {
	Title        string
	Summary      string
	ImageURL     string
	MainCategory string
	Categories   []string
	ReadingTime  int
	Link         string
}

// Post is a blog entry. PublishDate and AuthorID are assigned by the server at
// creation and never change afterwards.
type Post struct {
	ID string
	PostContent
	PublishDate time.Time
	AuthorID    string
}

// OwnedBy reports whether userID is the post's author.
func (p *Post) OwnedBy(userID string) bool {
	return userID != "" && p.AuthorID == userID
}

// ParseCategories splits a comma-separated category list, trimming whitespace
// and dropping empty entries. Order is preserved.
func ParseCategories(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

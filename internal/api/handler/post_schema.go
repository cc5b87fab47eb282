package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
)

// messageResponse is the acknowledgment body used by mutating endpoints and
// by the error handler.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Nickname string `json:"nickname"`
}

// postRequest is the body of create and update. Categories is a
// comma-separated list.
type postRequest struct {
	Title        string      `json:"title"        validate:"max=200"`
	Summary      string      `json:"summary"      validate:"max=2000"`
	ImageURL     string      `json:"imageUrl"     validate:"max=2048"`
	MainCategory string      `json:"mainCategory" validate:"max=100"`
	Categories   string      `json:"categories"   validate:"max=500"`
	ReadingTime  readingTime `json:"readingTime"`
	Link         string      `json:"link"         validate:"omitempty,url"`
}

type createPostResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

type profileRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// readingTime accepts a JSON number or a numeric string. Only whole minutes
// are valid; the range check happens in the post service.
type readingTime int

func (r *readingTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errReadingTime
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return errReadingTime
	}
	*r = readingTime(f)
	return nil
}

var errReadingTime = domain.NewValidationError("readingTime must be a positive integer")

// --- Response types ---

type postResponse struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	ImageURL     string    `json:"imageUrl"`
	MainCategory string    `json:"mainCategory"`
	Categories   []string  `json:"categories"`
	ReadingTime  int       `json:"readingTime"`
	Link         string    `json:"link"`
	PublishDate  time.Time `json:"publishDate"`
	AuthorID     string    `json:"authorId"`
}

type profileResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// --- Mapping ---

func (r postRequest) toInput() ports.PostInput {
	return ports.PostInput{
		Title:        r.Title,
		Summary:      r.Summary,
		ImageURL:     r.ImageURL,
		MainCategory: r.MainCategory,
		Categories:   r.Categories,
		ReadingTime:  int(r.ReadingTime),
		Link:         r.Link,
	}
}

func toPostResponse(p *domain.Post) postResponse {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return postResponse{
		ID:           p.ID,
		Title:        p.Title,
		Summary:      p.Summary,
		ImageURL:     p.ImageURL,
		MainCategory: p.MainCategory,
		Categories:   categories,
		ReadingTime:  p.ReadingTime,
		Link:         p.Link,
		PublishDate:  p.PublishDate,
		AuthorID:     p.AuthorID,
	}
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Lastname:  u.Lastname,
		Nickname:  u.Nickname,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry POST /api/posts without creating
// duplicates.
const HeaderIdempotencyKey = "Idempotency-Key"

// PostHandler handles HTTP requests for blog posts.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /api/posts.
//
// @Summary      List all posts, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}   postResponse
// @Failure      500  {object}  messageResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context())
	if err != nil {
		return unexpected(err, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Categories handles GET /api/categories.
//
// @Summary      List distinct post categories
// @Tags         posts
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  messageResponse
// @Router       /categories [get]
func (h *PostHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return unexpected(err, "Failed to fetch categories")
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categories)
}

// Mine handles GET /api/myposts.
//
// @Summary      List the caller's posts, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   postResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /myposts [get]
func (h *PostHandler) Mine(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	posts, err := h.service.ListByAuthor(c.Request().Context(), claims.UserID)
	if err != nil {
		return unexpected(err, "Failed to fetch user posts")
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Get handles GET /api/posts/:id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return unexpected(err, "Failed to fetch post")
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Create handles POST /api/posts. Publish date and author are assigned by the
// server.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      postRequest  true   "Post content"
// @Success      201              {object}  createPostResponse
// @Failure      400              {object}  messageResponse
// @Failure      401              {object}  messageResponse
// @Failure      403              {object}  messageResponse
// @Failure      500              {object}  messageResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		PostInput:      req.toInput(),
		AuthorID:       claims.UserID,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return unexpected(err, "Failed to create post")
	}

	return c.JSON(http.StatusCreated, createPostResponse{
		Message:    "Post created successfully",
		InsertedID: result.ID,
	})
}

// Update handles PUT /api/posts/:id. Only the author may update a post.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Post id"
// @Param        body  body      postRequest  true  "Replacement content"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	// Missing and foreign posts are rejected before the body is looked at.
	if err := h.service.CheckOwnership(c.Request().Context(), c.Param("id"), claims.UserID); err != nil {
		return ownershipError(unexpected(err, "Failed to update post"), "update")
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.service.UpdatePost(c.Request().Context(), ports.UpdatePostInput{
		PostInput: req.toInput(),
		PostID:    c.Param("id"),
		CallerID:  claims.UserID,
	})
	if err != nil {
		return ownershipError(unexpected(err, "Failed to update post"), "update")
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Post updated successfully"})
}

// Delete handles DELETE /api/posts/:id. Only the author may delete a post.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), c.Param("id"), claims.UserID); err != nil {
		return ownershipError(unexpected(err, "Failed to delete post"), "delete")
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

// ownershipError gives a non-author rejection its per-operation message.
func ownershipError(err error, verb string) error {
	if errors.Is(err, domain.ErrForbidden) {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden: You can only "+verb+" your own posts").SetInternal(err)
	}
	return err
}

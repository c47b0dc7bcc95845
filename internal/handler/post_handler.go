package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"dogbook/internal/auth"
	"dogbook/internal/config"
	apperrors "dogbook/internal/errors"
	"dogbook/internal/model"
	"dogbook/internal/service"
)

// PostHandler handles post CRUD endpoints.
type PostHandler struct {
	postService service.PostService
	authMode    string
}

// NewPostHandler creates a post handler for the configured auth mode.
func NewPostHandler(postService service.PostService, authMode string) *PostHandler {
	return &PostHandler{postService: postService, authMode: authMode}
}

// PostRequest represents a post create or update request. Password is only
// meaningful in password mode and ignored otherwise.
type PostRequest struct {
	Title    string `json:"title" validate:"required,max=20"`
	Content  string `json:"content" validate:"required,max=100"`
	AgeID    uint   `json:"ageId" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
	Password string `json:"password,omitempty" validate:"omitempty,min=5,max=20"`
}

// DeletePostRequest carries the per-post password in password mode. The
// body is optional in owner mode.
type DeletePostRequest struct {
	Password string `json:"password,omitempty"`
}

// PostResponse is the flattened post projection: owner and age are folded
// into scalar fields. Owner fields are empty in password mode.
type PostResponse struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"userId,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AgeID     uint      `json:"ageId"`
	AgeValue  string    `json:"ageValue"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(post *model.Post) *PostResponse {
	resp := &PostResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		AgeID:     post.AgeID,
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if post.User != nil {
		resp.UserEmail = post.User.Email
		resp.UserName = post.User.UserName
	}
	if post.Age != nil {
		resp.AgeValue = post.Age.Value
	}
	return resp
}

// ListPosts godoc
// @Summary List all posts
// @Tags posts
// @Produce json
// @Success 200 {array} PostResponse
// @Router /posts/all [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return err
	}
	body := make([]*PostResponse, 0, len(posts))
	for i := range posts {
		body = append(body, toPostResponse(&posts[i]))
	}
	return c.JSON(http.StatusOK, body)
}

// GetPost godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {array} errors.FieldError
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostRequest true "Post data"
// @Success 200 {object} PostResponse
// @Failure 400 {array} errors.FieldError
// @Failure 401 {array} errors.FieldError
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	req, err := h.bindPostRequest(c)
	if err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), req.input(), h.credentials(c, req.Password))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// UpdatePost godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body PostRequest true "Post data"
// @Success 200 {object} PostResponse
// @Failure 400 {array} errors.FieldError
// @Failure 403 {array} errors.FieldError
// @Failure 404 {array} errors.FieldError
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := h.bindPostRequest(c)
	if err != nil {
		return err
	}

	post, err := h.postService.Update(c.Request().Context(), id, req.input(), h.credentials(c, req.Password))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Accept json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body DeletePostRequest false "Per-post password (password mode)"
// @Success 204
// @Failure 403 {array} errors.FieldError
// @Failure 404 {array} errors.FieldError
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	// Body is optional in owner mode, so a bind failure is not an error.
	var req DeletePostRequest
	_ = c.Bind(&req)

	if err := h.postService.Delete(c.Request().Context(), id, h.credentials(c, req.Password)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) bindPostRequest(c echo.Context) (*PostRequest, error) {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	if h.authMode == config.AuthModePassword && req.Password == "" {
		return nil, apperrors.Validation("password", "is required")
	}
	return &req, nil
}

func (r *PostRequest) input() service.PostInput {
	return service.PostInput{
		Title:    r.Title,
		Content:  r.Content,
		AgeID:    r.AgeID,
		ImageURL: r.ImageURL,
	}
}

func (h *PostHandler) credentials(c echo.Context, password string) service.Credentials {
	return service.Credentials{User: auth.CurrentUser(c), Password: password}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.ErrPostNotFound
	}
	return uint(id), nil
}

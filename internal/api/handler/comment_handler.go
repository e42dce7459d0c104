package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tracknest/issuetracker/internal/api/metrics"
	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentRequest struct {
	ID       string `json:"id"`
	Content  string `json:"content" validate:"required"`
	AuthorID string `json:"author_id" validate:"required,uuid4"`
	IssueID  string `json:"issue_id" validate:"required,uuid4"`
}

func (r commentRequest) toDomain() (domain.Comment, error) {
	comment := domain.Comment{Content: r.Content}

	authorID, err := uuid.Parse(r.AuthorID)
	if err != nil {
		return domain.Comment{}, echo.NewHTTPError(http.StatusBadRequest, "author_id must be a valid uuid")
	}
	comment.AuthorID = authorID

	issueID, err := uuid.Parse(r.IssueID)
	if err != nil {
		return domain.Comment{}, echo.NewHTTPError(http.StatusBadRequest, "issue_id must be a valid uuid")
	}
	comment.IssueID = issueID

	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return domain.Comment{}, echo.NewHTTPError(http.StatusBadRequest, "id must be a valid uuid")
		}
		comment.ID = id
	}
	return comment, nil
}

// Post handles POST /v1/comments.
func (h *CommentHandler) Post(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	comment, err := req.toDomain()
	if err != nil {
		return err
	}

	created, err := h.service.Post(c.Request().Context(), ident, comment)
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// Get handles GET /v1/comments/:id.
func (h *CommentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /v1/comments/:id?issue_id=<uuid>. The issue id is
// required because deletion rights derive from issue ownership as well as
// comment authorship.
func (h *CommentHandler) Delete(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	issueID, err := uuid.Parse(c.QueryParam("issue_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "issue_id must be a valid uuid")
	}

	if err := h.service.Delete(c.Request().Context(), ident, commentID, issueID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByIssue handles GET /v1/issues/:id/comments.
func (h *CommentHandler) ListByIssue(c echo.Context) error {
	issueID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.service.ListByIssue(c.Request().Context(), issueID)
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

// ListByUser handles GET /v1/users/:id/comments.
func (h *CommentHandler) ListByUser(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.service.ListByUser(c.Request().Context(), ident, userID)
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

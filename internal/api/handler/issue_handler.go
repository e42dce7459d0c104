package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tracknest/issuetracker/internal/api/metrics"
	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// IssueHandler handles HTTP requests for issue operations.
type IssueHandler struct {
	service ports.IssueService
}

func NewIssueHandler(service ports.IssueService) *IssueHandler {
	return &IssueHandler{service: service}
}

type issueRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title" validate:"required"`
	OwnerID  string `json:"owner_id" validate:"required,uuid4"`
	Deadline string `json:"deadline" validate:"required"`
}

type issuePatchRequest struct {
	Title    *string `json:"title"`
	Deadline *string `json:"deadline"`
	OwnerID  *string `json:"owner_id"`
}

type createIssueResponse struct {
	ID string `json:"id"`
}

func (r issueRequest) toDomain() (domain.Issue, error) {
	issue := domain.Issue{
		Title:    r.Title,
		Deadline: r.Deadline,
	}
	ownerID, err := uuid.Parse(r.OwnerID)
	if err != nil {
		return domain.Issue{}, echo.NewHTTPError(http.StatusBadRequest, "owner_id must be a valid uuid")
	}
	issue.OwnerID = ownerID

	// A client-supplied id is passed through so the service can reject
	// it; ids are server-assigned.
	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return domain.Issue{}, echo.NewHTTPError(http.StatusBadRequest, "id must be a valid uuid")
		}
		issue.ID = id
	}
	return issue, nil
}

// toPatchOps converts the optional fields into the closed patch
// operation set. Unknown attributes cannot be expressed at all.
func (r issuePatchRequest) toPatchOps() ([]domain.IssuePatchOp, error) {
	var ops []domain.IssuePatchOp
	if r.Title != nil {
		ops = append(ops, domain.SetTitle{Title: *r.Title})
	}
	if r.Deadline != nil {
		ops = append(ops, domain.SetDeadline{Deadline: *r.Deadline})
	}
	if r.OwnerID != nil {
		ownerID, err := uuid.Parse(*r.OwnerID)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "owner_id must be a valid uuid")
		}
		ops = append(ops, domain.SetOwner{OwnerID: ownerID})
	}
	return ops, nil
}

// Create handles POST /v1/issues.
func (h *IssueHandler) Create(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	issue, err := req.toDomain()
	if err != nil {
		return err
	}

	id, err := h.service.AddNew(c.Request().Context(), ident, issue)
	if err != nil {
		return err
	}

	metrics.IssuesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createIssueResponse{ID: id.String()})
}

// Get handles GET /v1/issues/:id.
func (h *IssueHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	issue, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}

// List handles GET /v1/issues.
func (h *IssueHandler) List(c echo.Context) error {
	issues, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if issues == nil {
		issues = []domain.Issue{}
	}
	return c.JSON(http.StatusOK, issues)
}

// Update handles PUT /v1/issues/:id — full replace.
func (h *IssueHandler) Update(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	replacement, err := req.toDomain()
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), ident, id, replacement)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Patch handles PATCH /v1/issues/:id — partial attribute change.
func (h *IssueHandler) Patch(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req issuePatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	ops, err := req.toPatchOps()
	if err != nil {
		return err
	}

	updated, err := h.service.Patch(c.Request().Context(), ident, id, ops)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/issues/:id.
func (h *IssueHandler) Delete(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ident, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByOwner handles GET /v1/users/:id/issues.
func (h *IssueHandler) ListByOwner(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	issues, err := h.service.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	if issues == nil {
		issues = []domain.Issue{}
	}
	return c.JSON(http.StatusOK, issues)
}

// WithComments handles GET /v1/issues/:id/view.
func (h *IssueHandler) WithComments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.service.WithComments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

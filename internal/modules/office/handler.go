package office

import (
	"net/http"
	"strconv"

	"officebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts read-only office discovery.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/offices", h.ListOffices)
	rg.GET("/offices/:id", h.GetOffice)
}

// RegisterOwnerRoutes mounts branch-owner mutations; callers must be
// authenticated, ownership is checked per branch in the service.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.POST("/branches", h.CreateBranch)
	rg.POST("/offices", h.CreateOffice)
	rg.DELETE("/offices/:id", h.DeleteOffice)
	rg.POST("/offices/:id/inactivities", h.AddInactivity)
}

func (h *Handler) CreateBranch(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	email := c.GetString("email")
	if email == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	b, err := h.service.CreateBranch(c.Request.Context(), email, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create branch")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"branch": b})
}

func (h *Handler) CreateOffice(c *gin.Context) {
	var req CreateOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	email := c.GetString("email")
	if email == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	o, err := h.service.CreateOffice(c.Request.Context(), email, req)
	if err != nil {
		h.writeError(c, err, "Failed to create office")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"office": o})
}

func (h *Handler) ListOffices(c *gin.Context) {
	var branchID *int64
	if s := c.Query("branch_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "branch_id must be an integer")
			return
		}
		branchID = &id
	}

	offices, err := h.service.ListOffices(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load offices")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offices": offices})
}

func (h *Handler) GetOffice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid office ID")
		return
	}

	o, err := h.service.GetOffice(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load office")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"office": o})
}

func (h *Handler) DeleteOffice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid office ID")
		return
	}
	var req DeleteOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "effective_date is required")
		return
	}
	email := c.GetString("email")
	if email == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.service.DeleteOffice(c.Request.Context(), email, id, req); err != nil {
		h.writeError(c, err, "Failed to delete office")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) AddInactivity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid office ID")
		return
	}
	var req AddInactivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	email := c.GetString("email")
	if email == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	in, err := h.service.AddInactivity(c.Request.Context(), email, id, req)
	if err != nil {
		h.writeError(c, err, "Failed to add inactivity")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"inactivity": in})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrOfficeNotFound:
		response.Error(c, http.StatusNotFound, "OFFICE_NOT_FOUND", "Office not found")
	case ErrBranchNotFound:
		response.Error(c, http.StatusNotFound, "BRANCH_NOT_FOUND", "Branch not found")
	case ErrNotBranchOwner:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this branch")
	case ErrInvalidInactivity:
		response.Error(c, http.StatusBadRequest, "INVALID_INACTIVITY", "Exactly one of specific_date or weekday must be set")
	case ErrInvalidDeleteDate:
		response.Error(c, http.StatusBadRequest, "INVALID_EFFECTIVE_DATE", "Effective date must not be in the past")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

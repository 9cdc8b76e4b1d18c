// internal/handler/session_handler.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"qo100-console/internal/model"
	"qo100-console/internal/repository"
	"qo100-console/internal/service"
	"qo100-console/internal/utils"
)

// SessionHandler handles session history HTTP requests
type SessionHandler struct {
	consoleService *service.ConsoleService
	logger         *utils.ServiceLogger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(consoleService *service.ConsoleService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		consoleService: consoleService,
		logger:         utils.NewServiceLogger(logger, "session-handler"),
	}
}

// ListSessions lists recorded sessions
// @Summary List sessions
// @Description Get recorded serial sessions with filtering and pagination
// @Tags Sessions
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param state query string false "Filter by state" Enums(CONNECTED, DISCONNECTED)
// @Param port query string false "Filter by port"
// @Param sort_order query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} utils.APIResponse{data=object{sessions=[]model.Session,pagination=PaginationResult}} "Sessions retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	filter := &repository.SessionFilter{
		Page:      1,
		PerPage:   20,
		SortBy:    "opened_at",
		SortOrder: "desc",
	}

	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			filter.Page = p
		}
	}
	if perPage := c.Query("per_page"); perPage != "" {
		if pp, err := strconv.Atoi(perPage); err == nil && pp > 0 && pp <= 100 {
			filter.PerPage = pp
		}
	}
	if state := c.Query("state"); state != "" {
		s := model.SessionState(state)
		filter.State = &s
	}
	if port := c.Query("port"); port != "" {
		filter.Port = &port
	}
	if sortOrder := c.Query("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	sessions, total, err := h.consoleService.ListSessions(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list sessions", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Sessions retrieved", gin.H{
		"sessions":   sessions,
		"pagination": NewPaginationResult(filter.Page, filter.PerPage, total),
	})
}

// GetLatestSession returns the most recent session
// @Summary Get latest session
// @Description Get the most recently opened session
// @Tags Sessions
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=model.Session} "Session retrieved"
// @Failure 404 {object} utils.APIResponse "No sessions recorded"
// @Router /sessions/latest [get]
func (h *SessionHandler) GetLatestSession(c *gin.Context) {
	session, err := h.consoleService.LatestSession(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "No sessions recorded", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Session retrieved", session)
}

// GetSession returns one session by ID
// @Summary Get session details
// @Description Get one recorded session by ID
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} utils.APIResponse{data=model.Session} "Session retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid session ID"
// @Failure 404 {object} utils.APIResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid session ID", err)
		return
	}

	session, err := h.consoleService.GetSession(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Session not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Session retrieved", session)
}

// GetSessionFeed returns the trailing feed of one session
// @Summary Get session feed
// @Description Get the last feed entries of one session in sequence order
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param limit query int false "Maximum entries" default(200)
// @Success 200 {object} utils.APIResponse{data=object{entries=[]model.FeedEntry}} "Feed retrieved"
// @Failure 400 {object} utils.APIResponse "Invalid session ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /sessions/{session_id}/feed [get]
func (h *SessionHandler) GetSessionFeed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid session ID", err)
		return
	}

	limit := 200
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 2000 {
			limit = n
		}
	}

	entries, err := h.consoleService.SessionFeed(c.Request.Context(), id, limit)
	if err != nil {
		h.logger.Error("Failed to list session feed", zap.Error(err), zap.String("session_id", id.String()))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list session feed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feed retrieved", gin.H{"entries": entries})
}

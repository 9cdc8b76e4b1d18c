// internal/handler/console_handler.go
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"qo100-console/internal/model"
	"qo100-console/internal/repository"
	"qo100-console/internal/service"
	"qo100-console/internal/transport"
	"qo100-console/internal/utils"
)

// ConsoleHandler handles serial console HTTP requests
type ConsoleHandler struct {
	consoleService *service.ConsoleService
	logger         *utils.ServiceLogger
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(consoleService *service.ConsoleService, logger *zap.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		consoleService: consoleService,
		logger:         utils.NewServiceLogger(logger, "console-handler"),
	}
}

// Connect opens a serial session
// @Summary Connect to the transmitter
// @Description Open a serial session on the given port. Only one session can be open at a time.
// @Tags Console
// @Accept json
// @Produce json
// @Param request body service.ConnectRequest true "Connection request"
// @Success 200 {object} utils.APIResponse{data=model.Session} "Session opened"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Already connected"
// @Failure 500 {object} utils.APIResponse "Connection failed"
// @Router /console/connect [post]
func (h *ConsoleHandler) Connect(c *gin.Context) {
	var req service.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.consoleService.Connect(c.Request.Context(), &req)
	if err != nil {
		if isAlreadyConnected(err) {
			utils.ErrorResponse(c, http.StatusConflict, "A session is already open", err)
			return
		}
		h.logger.Error("Failed to open session", zap.Error(err), zap.String("port", req.Port))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to open session", err)
		return
	}

	h.logger.Info("Session opened", zap.String("session_id", session.ID.String()), zap.String("port", session.Port))
	utils.SuccessResponse(c, http.StatusOK, "Session opened", session)
}

// Disconnect closes the current serial session
// @Summary Disconnect from the transmitter
// @Description Close the open serial session
// @Tags Console
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse "Session closed"
// @Failure 409 {object} utils.APIResponse "No open session"
// @Router /console/disconnect [post]
func (h *ConsoleHandler) Disconnect(c *gin.Context) {
	if err := h.consoleService.Disconnect(c.Request.Context()); err != nil {
		if errors.Is(err, transport.ErrNotConnected) {
			utils.ErrorResponse(c, http.StatusConflict, "No open session", err)
			return
		}
		h.logger.Error("Failed to close session", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to close session", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Session closed", nil)
}

// Command dispatches a raw console line
// @Summary Send a raw command
// @Description Send one line to the firmware as typed. The echo and any replies arrive on the feed.
// @Tags Console
// @Accept json
// @Produce json
// @Param request body CommandRequest true "Command to send"
// @Success 200 {object} utils.APIResponse "Command sent"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /console/command [post]
func (h *ConsoleHandler) Command(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.consoleService.Dispatch(c.Request.Context(), req.Command); err != nil {
		if errors.Is(err, transport.ErrNotConnected) {
			utils.ErrorResponse(c, http.StatusConflict, "Not connected", err)
			return
		}
		h.logger.Error("Failed to send command", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to send command", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Command sent", gin.H{"command": req.Command})
}

// Snapshot returns the current console state
// @Summary Get console state
// @Description Get the session, settings, tuning plan and link counters in one shot
// @Tags Console
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=service.ConsoleSnapshot} "Console state"
// @Router /console [get]
func (h *ConsoleHandler) Snapshot(c *gin.Context) {
	snapshot := h.consoleService.Snapshot(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "Console state retrieved", snapshot)
}

// RequestStatus asks the firmware for its configuration
// @Summary Request a status report
// @Description Send the status query. The report arrives on the feed.
// @Tags Console
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse "Status requested"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /console/status [post]
func (h *ConsoleHandler) RequestStatus(c *gin.Context) {
	if err := h.consoleService.RequestStatus(c.Request.Context()); err != nil {
		if errors.Is(err, transport.ErrNotConnected) {
			utils.ErrorResponse(c, http.StatusConflict, "Not connected", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to request status", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Status requested", nil)
}

// RunDiagnostics asks the firmware for a diagnostic report
// @Summary Run firmware diagnostics
// @Description Send the diag command. The report arrives on the feed.
// @Tags Console
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse "Diagnostics requested"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /console/diag [post]
func (h *ConsoleHandler) RunDiagnostics(c *gin.Context) {
	if err := h.consoleService.RunDiagnostics(c.Request.Context()); err != nil {
		if errors.Is(err, transport.ErrNotConnected) {
			utils.ErrorResponse(c, http.StatusConflict, "Not connected", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to run diagnostics", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Diagnostics requested", nil)
}

// Help asks the firmware for its command reference
// @Summary Request the firmware command reference
// @Description Send the help command. The listing arrives on the feed.
// @Tags Console
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse "Help requested"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /console/help [post]
func (h *ConsoleHandler) Help(c *gin.Context) {
	if err := h.consoleService.RequestHelp(c.Request.Context()); err != nil {
		if errors.Is(err, transport.ErrNotConnected) {
			utils.ErrorResponse(c, http.StatusConflict, "Not connected", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to request help", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Help requested", nil)
}

// Sync pushes the full settings snapshot at the firmware
// @Summary Sync all settings
// @Description Re-send every tracked setting to the firmware, flushing pending debounced changes first
// @Tags Console
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{commands_sent=int}} "Settings synced"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /console/sync [post]
func (h *ConsoleHandler) Sync(c *gin.Context) {
	count, err := h.consoleService.SyncSettings(c.Request.Context())
	if err != nil {
		if errors.Is(err, transport.ErrNotConnected) {
			utils.ErrorResponse(c, http.StatusConflict, "Not connected", err)
			return
		}
		h.logger.Error("Failed to sync settings", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to sync settings", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Settings synced", gin.H{"commands_sent": count})
}

// Feed lists recorded feed entries
// @Summary Get feed history
// @Description Get the recorded console feed with filtering and pagination
// @Tags Console
// @Accept json
// @Produce json
// @Param session_id query string false "Filter by session ID"
// @Param direction query string false "Filter by direction" Enums(SENT, RECV, INFO, ERROR)
// @Param only_status query bool false "Only status report lines"
// @Param since_seq query int false "Entries after this sequence number"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(100)
// @Success 200 {object} utils.APIResponse{data=object{entries=[]model.FeedEntry,pagination=PaginationResult}} "Feed retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /console/feed [get]
func (h *ConsoleHandler) Feed(c *gin.Context) {
	filter := &repository.FeedFilter{
		Page:    1,
		PerPage: 100,
	}

	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			filter.Page = p
		}
	}
	if perPage := c.Query("per_page"); perPage != "" {
		if pp, err := strconv.Atoi(perPage); err == nil && pp > 0 && pp <= 1000 {
			filter.PerPage = pp
		}
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		if id, err := uuid.Parse(sessionID); err == nil {
			filter.SessionID = &id
		}
	}
	if direction := c.Query("direction"); direction != "" {
		d := model.FeedDirection(direction)
		filter.Direction = &d
	}
	if onlyStatus := c.Query("only_status"); onlyStatus == "true" {
		t := true
		filter.OnlyStatus = &t
	}
	if sinceSeq := c.Query("since_seq"); sinceSeq != "" {
		if seq, err := strconv.ParseUint(sinceSeq, 10, 64); err == nil {
			filter.SinceSeq = &seq
		}
	}

	entries, total, err := h.consoleService.FeedHistory(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list feed", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list feed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feed retrieved", gin.H{
		"entries":    entries,
		"pagination": NewPaginationResult(filter.Page, filter.PerPage, total),
	})
}

// Stats aggregates traffic counters
// @Summary Get traffic statistics
// @Description Get sent/received/error line counts, optionally scoped to one session
// @Tags Console
// @Accept json
// @Produce json
// @Param session_id query string false "Scope to session ID"
// @Success 200 {object} utils.APIResponse{data=repository.TrafficStats} "Statistics retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /console/stats [get]
func (h *ConsoleHandler) Stats(c *gin.Context) {
	var sessionID *uuid.UUID
	if raw := c.Query("session_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid session ID", err)
			return
		}
		sessionID = &id
	}

	stats, err := h.consoleService.TrafficStats(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to aggregate traffic stats", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to aggregate traffic stats", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved", stats)
}

// Helper functions and DTOs

// isAlreadyConnected distinguishes the single-session guard from real
// connect failures
func isAlreadyConnected(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already connected")
}

// CommandRequest carries one raw console line
type CommandRequest struct {
	Command string `json:"command" binding:"required" example:"get"`
}

// PaginationResult describes one page of a listing
type PaginationResult struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationResult computes page counts for a listing response
func NewPaginationResult(page, perPage, total int) PaginationResult {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return PaginationResult{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

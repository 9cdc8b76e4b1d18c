// internal/handler/tuner_handler.go
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"qo100-console/internal/firmware"
	"qo100-console/internal/service"
	"qo100-console/internal/transport"
	"qo100-console/internal/utils"
)

// TunerHandler handles DSP and RF parameter HTTP requests
type TunerHandler struct {
	consoleService *service.ConsoleService
	logger         *utils.ServiceLogger
}

// NewTunerHandler creates a new tuner handler
func NewTunerHandler(consoleService *service.ConsoleService, logger *zap.Logger) *TunerHandler {
	return &TunerHandler{
		consoleService: consoleService,
		logger:         utils.NewServiceLogger(logger, "tuner-handler"),
	}
}

// ListParams returns the parameter table of the active firmware variant
// @Summary List tunable parameters
// @Description Get the DSP parameter registry with ranges and units for the active firmware variant
// @Tags Tuner
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{params=[]firmware.Param}} "Parameters retrieved"
// @Router /tuner/params [get]
func (h *TunerHandler) ListParams(c *gin.Context) {
	params := h.consoleService.Params(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "Parameters retrieved", gin.H{"params": params})
}

// SetFrequency retunes the uplink
// @Summary Set uplink frequency
// @Description Tune the uplink. Out-of-window values clamp to the band edge, stepped firmware snaps onto its grid. The dispatch is debounced.
// @Tags Tuner
// @Accept json
// @Produce json
// @Param request body FrequencyRequest true "Requested uplink frequency"
// @Success 200 {object} utils.APIResponse{data=service.FrequencyResult} "Frequency applied"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /tuner/frequency [put]
func (h *TunerHandler) SetFrequency(c *gin.Context) {
	var req FrequencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.consoleService.SetFrequency(c.Request.Context(), req.UplinkHz)
	if err != nil {
		h.respondError(c, "Failed to set frequency", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Frequency applied", result)
}

// SetParam updates one DSP parameter
// @Summary Set a DSP parameter
// @Description Update one parameter by registry name. Out-of-range values are rejected, the dispatch is debounced per parameter.
// @Tags Tuner
// @Accept json
// @Produce json
// @Param name path string true "Parameter name" example(comp_thr)
// @Param request body ValueRequest true "New value"
// @Success 200 {object} utils.APIResponse "Parameter applied"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 422 {object} utils.APIResponse "Value out of range"
// @Router /tuner/params/{name} [put]
func (h *TunerHandler) SetParam(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Parameter name is required", nil)
		return
	}

	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.consoleService.SetParam(c.Request.Context(), name, req.Value); err != nil {
		h.respondError(c, "Failed to set parameter", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Parameter applied", gin.H{
		"name":  name,
		"value": req.Value,
	})
}

// SetPPM updates the reference oscillator correction
// @Summary Set PPM correction
// @Description Update the reference oscillator correction in parts per million
// @Tags Tuner
// @Accept json
// @Produce json
// @Param request body ValueRequest true "PPM value"
// @Success 200 {object} utils.APIResponse "PPM applied"
// @Failure 422 {object} utils.APIResponse "Value out of range"
// @Router /tuner/ppm [put]
func (h *TunerHandler) SetPPM(c *gin.Context) {
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.consoleService.SetPPM(c.Request.Context(), req.Value); err != nil {
		h.respondError(c, "Failed to set PPM", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "PPM applied", gin.H{"value": req.Value})
}

// SetTxPower updates the output power
// @Summary Set TX power
// @Description Update the SX1280 output power in dBm
// @Tags Tuner
// @Accept json
// @Produce json
// @Param request body TxPowerRequest true "Power in dBm"
// @Success 200 {object} utils.APIResponse "Power applied"
// @Failure 422 {object} utils.APIResponse "Value out of range"
// @Router /tuner/txpower [put]
func (h *TunerHandler) SetTxPower(c *gin.Context) {
	var req TxPowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.consoleService.SetTxPower(c.Request.Context(), req.DBm); err != nil {
		h.respondError(c, "Failed to set TX power", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Power applied", gin.H{"dbm": req.DBm})
}

// SetJitter updates the timing dither
// @Summary Set timing jitter
// @Description Update the sample timing jitter in microseconds. Rev-b firmware only.
// @Tags Tuner
// @Accept json
// @Produce json
// @Param request body JitterRequest true "Jitter in microseconds"
// @Success 200 {object} utils.APIResponse "Jitter applied"
// @Failure 422 {object} utils.APIResponse "Value out of range or unsupported"
// @Router /tuner/jitter [put]
func (h *TunerHandler) SetJitter(c *gin.Context) {
	var req JitterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.consoleService.SetJitter(c.Request.Context(), req.US); err != nil {
		h.respondError(c, "Failed to set jitter", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Jitter applied", gin.H{"us": req.US})
}

// SetSection switches one DSP block on or off
// @Summary Enable or disable a DSP block
// @Description Switch the bandpass, equalizer or compressor block. Applied immediately, not debounced.
// @Tags Tuner
// @Accept json
// @Produce json
// @Param section path string true "DSP block" Enums(bp, eq, comp)
// @Param request body EnableRequest true "Switch state"
// @Success 200 {object} utils.APIResponse "Block switched"
// @Failure 422 {object} utils.APIResponse "Unknown block"
// @Router /tuner/sections/{section} [put]
func (h *TunerHandler) SetSection(c *gin.Context) {
	section := c.Param("section")

	var req EnableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.consoleService.SetEnable(c.Request.Context(), section, *req.Enabled); err != nil {
		h.respondError(c, "Failed to switch block", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Block switched", gin.H{
		"section": section,
		"enabled": *req.Enabled,
	})
}

// SetTX keys the carrier through the rev-a tx switch
// @Summary Switch the carrier (rev-a)
// @Description Key or unkey the carrier through the tx command. Rev-a firmware only.
// @Tags Tuner
// @Accept json
// @Produce json
// @Param request body SwitchRequest true "Carrier state"
// @Success 200 {object} utils.APIResponse "Carrier switched"
// @Failure 422 {object} utils.APIResponse "Unsupported by firmware"
// @Router /tuner/tx [post]
func (h *TunerHandler) SetTX(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.consoleService.SetTX(c.Request.Context(), *req.On); err != nil {
		h.respondError(c, "Failed to switch carrier", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Carrier switched", gin.H{"on": *req.On})
}

// Carrier keys a test carrier through cw and stop
// @Summary Key a test carrier
// @Description Start or stop a continuous test carrier
// @Tags Tuner
// @Accept json
// @Produce json
// @Param request body SwitchRequest true "Carrier state"
// @Success 200 {object} utils.APIResponse "Carrier keyed"
// @Failure 409 {object} utils.APIResponse "Not connected"
// @Router /tuner/carrier [post]
func (h *TunerHandler) Carrier(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.consoleService.Carrier(c.Request.Context(), *req.On); err != nil {
		h.respondError(c, "Failed to key carrier", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Carrier keyed", gin.H{"on": *req.On})
}

// respondError maps service errors onto HTTP status codes: range and
// variant violations get 422 with the offending field, a closed link
// gets 409.
func (h *TunerHandler) respondError(c *gin.Context, message string, err error) {
	var ve *firmware.ValidationError
	if errors.As(err, &ve) {
		utils.ValidationErrorResponse(c, map[string]string{ve.Field: ve.Reason})
		return
	}
	if errors.Is(err, transport.ErrNotConnected) {
		utils.ErrorResponse(c, http.StatusConflict, "Not connected", err)
		return
	}

	h.logger.Error(message, zap.Error(err))
	utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
}

// Request DTOs

// FrequencyRequest carries a requested uplink frequency
type FrequencyRequest struct {
	UplinkHz int64 `json:"uplink_hz" binding:"required" example:"2400100000"`
}

// ValueRequest carries one decimal knob value. Zero is a legal value
// for several knobs, so no required binding here.
type ValueRequest struct {
	Value decimal.Decimal `json:"value"`
}

// TxPowerRequest carries an output power setting
type TxPowerRequest struct {
	DBm int `json:"dbm" example:"10"`
}

// JitterRequest carries a timing jitter setting
type JitterRequest struct {
	US int `json:"us" example:"15"`
}

// EnableRequest carries a DSP block switch state
type EnableRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SwitchRequest carries a carrier switch state
type SwitchRequest struct {
	On *bool `json:"on" binding:"required"`
}

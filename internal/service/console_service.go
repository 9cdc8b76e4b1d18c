// internal/service/console_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"qo100-console/internal/config"
	"qo100-console/internal/firmware"
	"qo100-console/internal/model"
	"qo100-console/internal/repository"
	"qo100-console/internal/transport"
	"qo100-console/internal/tuner"
	"qo100-console/internal/utils"
)

const (
	feedTagNotConnected = "[NOT CONNECTED]"
	feedTagSendError    = "[SEND ERROR]"
	feedTagConnected    = "[CONNECTED]"
	feedTagDisconnected = "[DISCONNECTED]"
	serialErrorTag      = "[SERIAL ERROR]"
)

// SerialLink is the transport surface the console drives. It is satisfied
// by transport.SerialLink and by fakes in tests.
type SerialLink interface {
	Connect(portName string, baudRate int) error
	Close() error
	SendLine(line string) error
	DrainLines() []string
	IsConnected() bool
	Done() <-chan struct{}
	Err() error
	Stats() transport.Stats
}

// EventPublisher pushes console events to connected operator clients
type EventPublisher interface {
	Publish(event *model.ConsoleEvent)
}

// ConsoleService owns the serial session, the operator command path and
// the console feed. All transmitter traffic funnels through it.
type ConsoleService struct {
	link        SerialLink
	sessionRepo repository.SessionRepository
	feedRepo    repository.FeedRepository
	publisher   EventPublisher
	config      *config.Config
	logger      *utils.ServiceLogger
	auditLogger *utils.AuditLogger

	paramDebounce *tuner.DebounceGroup
	freqDebounce  *tuner.Debouncer

	mu         sync.Mutex
	session    *model.Session
	settings   firmware.Settings
	variant    firmware.Variant
	generation uint64

	seq atomic.Uint64

	pollStop chan struct{}
	pollDone chan struct{}
	stopOnce sync.Once
}

// NewConsoleService creates the console service. The link is expected to
// be freshly constructed and not yet connected.
func NewConsoleService(
	link SerialLink,
	sessionRepo repository.SessionRepository,
	feedRepo repository.FeedRepository,
	publisher EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) (*ConsoleService, error) {
	variant, err := firmware.ParseVariant(cfg.Serial.Variant)
	if err != nil {
		return nil, fmt.Errorf("invalid firmware variant: %w", err)
	}

	return &ConsoleService{
		link:          link,
		sessionRepo:   sessionRepo,
		feedRepo:      feedRepo,
		publisher:     publisher,
		config:        cfg,
		logger:        utils.NewServiceLogger(logger, "console-service"),
		auditLogger:   utils.NewAuditLogger(logger),
		paramDebounce: tuner.NewDebounceGroup(cfg.Tuner.ParamDebounce),
		freqDebounce:  tuner.NewDebouncer(cfg.Tuner.FreqDebounce),
		variant:       variant,
		settings:      variant.Defaults(),
		pollStop:      make(chan struct{}),
		pollDone:      make(chan struct{}),
	}, nil
}

// Start launches the receive poll loop
func (cs *ConsoleService) Start() {
	go cs.pollLoop()
	cs.logger.Info("Console service started",
		zap.String("variant", string(cs.variant)),
		zap.Duration("poll_interval", cs.config.Console.PollInterval),
	)
}

// Stop shuts the console down, closing any open session
func (cs *ConsoleService) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.pollStop)
		<-cs.pollDone

		cs.paramDebounce.StopAll()
		cs.freqDebounce.Stop()

		cs.mu.Lock()
		open := cs.session != nil
		cs.mu.Unlock()

		if open {
			if err := cs.link.Close(); err != nil {
				cs.logger.Error("Failed to close link on shutdown", zap.Error(err))
			}
			cs.finishSession(context.Background(), model.CloseReasonShutdown)
		}

		cs.logger.LogServiceStop("shutdown requested")
	})
}

// Connect opens a serial session to the transmitter
func (cs *ConsoleService) Connect(ctx context.Context, req *ConnectRequest) (*model.Session, error) {
	if req.Port == "" {
		return nil, fmt.Errorf("port is required")
	}

	variant := cs.defaultVariant()
	if req.Variant != "" {
		parsed, err := firmware.ParseVariant(req.Variant)
		if err != nil {
			return nil, err
		}
		variant = parsed
	}

	baudRate := req.BaudRate
	if baudRate <= 0 {
		baudRate = cs.config.Serial.BaudRate
	}

	cs.mu.Lock()
	if cs.session != nil {
		port := cs.session.Port
		cs.mu.Unlock()
		return nil, fmt.Errorf("already connected to %s", port)
	}
	cs.mu.Unlock()

	linkLogger := utils.NewLinkLogger(cs.logger.Logger, req.Port, baudRate)
	if err := cs.link.Connect(req.Port, baudRate); err != nil {
		linkLogger.LogConnection("connect", false, err)
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	session := &model.Session{
		ID:       uuid.New(),
		Port:     req.Port,
		BaudRate: baudRate,
		Variant:  variant,
		State:    model.SessionStateConnected,
		OpenedAt: time.Now(),
	}

	cs.mu.Lock()
	cs.session = session
	cs.variant = variant
	cs.settings = variant.Defaults()
	cs.generation++
	generation := cs.generation
	cs.mu.Unlock()

	if err := cs.sessionRepo.Create(ctx, session); err != nil {
		cs.logger.Error("Failed to record session", zap.Error(err))
	}

	linkLogger.LogConnection("connect", true, nil)
	utils.NewSessionLogger(cs.logger.Logger, session.ID.String(), session.Port).
		Opened(string(variant), baudRate)
	cs.auditLogger.LogSessionOpened(session.ID.String(), session.Port, baudRate, string(variant))

	cs.appendFeed(ctx, model.FeedDirectionInfo,
		fmt.Sprintf("%s %s @ %d", feedTagConnected, session.Port, baudRate))

	cs.publish(&model.ConsoleEvent{
		ID:        uuid.New(),
		EventType: model.EventSessionConnected,
		SessionID: &session.ID,
		Data:      &model.SessionEventData{Session: *cloneSessionModel(session)},
		Timestamp: time.Now(),
		Source:    "console-service",
	})

	// Watch for reader failure so the session closes itself
	go cs.watchLink(generation, cs.link.Done())

	// Ask the firmware for its current configuration once the boot
	// banner has settled
	time.AfterFunc(cs.config.Console.SyncDelay, func() {
		if cs.currentGeneration() == generation && cs.link.IsConnected() {
			cs.Dispatch(context.Background(), firmware.CmdGet())
		}
	})

	return cloneSessionModel(session), nil
}

// Disconnect closes the current session on operator request
func (cs *ConsoleService) Disconnect(ctx context.Context) error {
	cs.mu.Lock()
	if cs.session == nil {
		cs.mu.Unlock()
		return transport.ErrNotConnected
	}
	cs.mu.Unlock()

	// Drop pending debounced edits so teardown cannot fire a late command.
	cs.paramDebounce.StopAll()
	cs.freqDebounce.Stop()

	if err := cs.link.Close(); err != nil {
		cs.logger.Error("Failed to close link", zap.Error(err))
	}

	cs.finishSession(ctx, model.CloseReasonRequested)
	return nil
}

// Dispatch sends one command line to the transmitter and records it in
// the feed. Transport failures become feed entries, never panics.
func (cs *ConsoleService) Dispatch(ctx context.Context, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}

	err := cs.link.SendLine(command)
	stats := cs.link.Stats()
	linkLogger := utils.NewLinkLogger(cs.logger.Logger, stats.Port, stats.BaudRate)
	if err != nil {
		if errors.Is(err, transport.ErrNotConnected) {
			cs.appendFeed(ctx, model.FeedDirectionError,
				fmt.Sprintf("%s %s", feedTagNotConnected, command))
		} else {
			cs.appendFeed(ctx, model.FeedDirectionError,
				fmt.Sprintf("%s %v", feedTagSendError, err))
		}
		linkLogger.LogCommand(command, err)
		return fmt.Errorf("failed to send command: %w", err)
	}

	linkLogger.LogCommand(command, nil)
	cs.appendFeed(ctx, model.FeedDirectionSent, "> "+command)
	return nil
}

// SetFrequency retunes the uplink. The value is clamped to the plan and
// the command dispatch is debounced so spinning a dial sends one line.
func (cs *ConsoleService) SetFrequency(ctx context.Context, requestedHz int64) (*FrequencyResult, error) {
	cs.mu.Lock()
	variant := cs.variant
	_, appliedHz := variant.CmdFreq(requestedHz)
	cs.settings.SetFreq(appliedHz)
	downlinkHz := cs.settings.DownlinkHz
	sessionID := cs.sessionIDLocked()
	cs.mu.Unlock()

	cs.freqDebounce.Trigger(func() {
		cs.fireFrequency()
	})

	cs.auditLogger.LogFrequencyChange(sessionID, appliedHz, downlinkHz)
	cs.publishSettings()

	return &FrequencyResult{
		RequestedHz: requestedHz,
		AppliedHz:   appliedHz,
		DownlinkHz:  downlinkHz,
	}, nil
}

// SetParam updates one DSP parameter. Values are validated against the
// parameter table before the debounced dispatch is armed.
func (cs *ConsoleService) SetParam(ctx context.Context, name string, value decimal.Decimal) error {
	cs.mu.Lock()
	variant := cs.variant
	command, err := variant.CmdSetParam(name, value)
	if err != nil {
		cs.mu.Unlock()
		return err
	}
	cs.settings.Params[name] = value
	sessionID := cs.sessionIDLocked()
	cs.mu.Unlock()

	cs.paramDebounce.Trigger(name, func() {
		cs.fireParam(name)
	})

	param, _ := firmware.LookupParam(name)
	cs.auditLogger.LogParamChange(sessionID, name, param.Format(value), command)
	cs.publishSettings()
	return nil
}

// SetPPM updates the reference oscillator correction
func (cs *ConsoleService) SetPPM(ctx context.Context, value decimal.Decimal) error {
	if _, err := firmware.CmdPPM(value); err != nil {
		return err
	}

	cs.mu.Lock()
	cs.settings.PPM = value
	cs.mu.Unlock()

	cs.paramDebounce.Trigger("ppm", func() {
		cs.firePPM()
	})

	cs.publishSettings()
	return nil
}

// SetTxPower updates the output power in dBm
func (cs *ConsoleService) SetTxPower(ctx context.Context, dbm int) error {
	if _, err := firmware.CmdTxPower(dbm); err != nil {
		return err
	}

	cs.mu.Lock()
	cs.settings.TxPowerDBm = dbm
	cs.mu.Unlock()

	cs.paramDebounce.Trigger("txpwr", func() {
		cs.fireTxPower()
	})

	cs.publishSettings()
	return nil
}

// SetJitter updates the TX timing jitter in microseconds
func (cs *ConsoleService) SetJitter(ctx context.Context, us int) error {
	cs.mu.Lock()
	variant := cs.variant
	cs.mu.Unlock()

	if _, err := variant.CmdJitter(us); err != nil {
		return err
	}

	cs.mu.Lock()
	cs.settings.JitterUS = us
	cs.mu.Unlock()

	cs.paramDebounce.Trigger("jitter", func() {
		cs.fireJitter()
	})

	cs.publishSettings()
	return nil
}

// SetEnable switches a DSP stage on or off. Dispatched immediately, the
// toggle has no debounce window.
func (cs *ConsoleService) SetEnable(ctx context.Context, section string, enabled bool) error {
	parsed, err := firmware.ParseSection(section)
	if err != nil {
		return err
	}

	if err := cs.Dispatch(ctx, firmware.CmdEnable(parsed, enabled)); err != nil {
		return err
	}

	cs.mu.Lock()
	switch parsed {
	case firmware.SectionBandpass:
		cs.settings.EnableBP = enabled
	case firmware.SectionEqualizer:
		cs.settings.EnableEQ = enabled
	case firmware.SectionCompressor:
		cs.settings.EnableComp = enabled
	}
	cs.mu.Unlock()

	cs.publishSettings()
	return nil
}

// SetTX keys or unkeys the transmitter
func (cs *ConsoleService) SetTX(ctx context.Context, on bool) error {
	cs.mu.Lock()
	variant := cs.variant
	cs.mu.Unlock()

	command, err := variant.CmdTX(on)
	if err != nil {
		return err
	}

	if err := cs.Dispatch(ctx, command); err != nil {
		return err
	}

	cs.mu.Lock()
	cs.settings.TXEnabled = on
	sessionID := cs.sessionIDLocked()
	cs.mu.Unlock()

	cs.auditLogger.LogCarrierToggle(sessionID, on)
	cs.publishSettings()
	return nil
}

// Carrier switches the unmodulated test carrier on or off
func (cs *ConsoleService) Carrier(ctx context.Context, on bool) error {
	command := firmware.CmdCW()
	if !on {
		command = firmware.CmdStop()
	}

	if err := cs.Dispatch(ctx, command); err != nil {
		return err
	}

	cs.mu.Lock()
	sessionID := cs.sessionIDLocked()
	cs.mu.Unlock()

	cs.auditLogger.LogCarrierToggle(sessionID, on)
	return nil
}

// RequestStatus asks the firmware to dump its configuration
func (cs *ConsoleService) RequestStatus(ctx context.Context) error {
	return cs.Dispatch(ctx, firmware.CmdGet())
}

// RunDiagnostics asks the firmware for its diagnostic report
func (cs *ConsoleService) RunDiagnostics(ctx context.Context) error {
	return cs.Dispatch(ctx, firmware.CmdDiag())
}

// RequestHelp asks the firmware for its command reference
func (cs *ConsoleService) RequestHelp(ctx context.Context) error {
	return cs.Dispatch(ctx, firmware.CmdHelp())
}

// SyncSettings pushes the full console state to the transmitter. Pending
// debounced edits are cancelled first, the sync carries their values.
func (cs *ConsoleService) SyncSettings(ctx context.Context) (int, error) {
	cs.paramDebounce.StopAll()
	cs.freqDebounce.Stop()

	cs.mu.Lock()
	variant := cs.variant
	snapshot := cs.settings.Clone()
	session := cs.session
	cs.mu.Unlock()

	commands := variant.SyncCommands(snapshot)
	for _, command := range commands {
		if err := cs.Dispatch(ctx, command); err != nil {
			return 0, err
		}
	}

	if session != nil {
		utils.NewSessionLogger(cs.logger.Logger, session.ID.String(), session.Port).
			SyncCompleted(len(commands))
	}

	return len(commands), nil
}

// Snapshot returns the current console state for operator clients
func (cs *ConsoleService) Snapshot(ctx context.Context) *ConsoleSnapshot {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	snapshot := &ConsoleSnapshot{
		Variant:   cs.variant,
		Plan:      cs.variant.FreqPlan(),
		Settings:  cs.settings.Clone(),
		Link:      cs.link.Stats(),
		Connected: cs.session != nil,
	}
	if cs.session != nil {
		snapshot.Session = cloneSessionModel(cs.session)
	}

	return snapshot
}

// Params lists the parameter table for the active firmware variant
func (cs *ConsoleService) Params(ctx context.Context) []firmware.Param {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return firmware.Params(cs.variant)
}

// ListSessions lists recorded sessions
func (cs *ConsoleService) ListSessions(ctx context.Context, filter *repository.SessionFilter) ([]*model.Session, int, error) {
	return cs.sessionRepo.List(ctx, filter)
}

// FeedHistory lists recorded feed entries
func (cs *ConsoleService) FeedHistory(ctx context.Context, filter *repository.FeedFilter) ([]*model.FeedEntry, int, error) {
	return cs.feedRepo.List(ctx, filter)
}

// LatestSession returns the most recently opened session
func (cs *ConsoleService) LatestSession(ctx context.Context) (*model.Session, error) {
	return cs.sessionRepo.Latest(ctx)
}

// GetSession looks a recorded session up by ID
func (cs *ConsoleService) GetSession(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return cs.sessionRepo.GetByID(ctx, id)
}

// SessionFeed returns the trailing feed of one session in seq order
func (cs *ConsoleService) SessionFeed(ctx context.Context, sessionID uuid.UUID, limit int) ([]*model.FeedEntry, error) {
	return cs.feedRepo.ListBySession(ctx, sessionID, limit)
}

// TrafficStats aggregates feed counters
func (cs *ConsoleService) TrafficStats(ctx context.Context, sessionID *uuid.UUID) (*repository.TrafficStats, error) {
	return cs.feedRepo.GetTrafficStats(ctx, sessionID)
}

// Internal plumbing

// pollLoop drains received lines into the feed at a fixed cadence
func (cs *ConsoleService) pollLoop() {
	defer close(cs.pollDone)

	ticker := time.NewTicker(cs.config.Console.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cs.pollStop:
			// Final drain so shutdown does not lose buffered lines
			cs.drainReceived(context.Background())
			return
		case <-ticker.C:
			cs.drainReceived(context.Background())
		}
	}
}

// drainReceived moves buffered lines from the link into the feed and
// folds status reports into the settings snapshot
func (cs *ConsoleService) drainReceived(ctx context.Context) {
	lines := cs.link.DrainLines()
	if len(lines) == 0 {
		return
	}

	entries := make([]*model.FeedEntry, 0, len(lines))
	settingsChanged := false

	cs.mu.Lock()
	sessionID := cs.sessionUUIDLocked()
	for _, line := range lines {
		direction := model.FeedDirectionRecv
		if strings.HasPrefix(line, serialErrorTag) {
			direction = model.FeedDirectionError
		} else if cs.settings.ApplyLine(line) {
			settingsChanged = true
		}

		entries = append(entries, &model.FeedEntry{
			ID:        uuid.New(),
			SessionID: sessionID,
			Seq:       cs.seq.Add(1),
			Direction: direction,
			Text:      line,
			IsStatus:  firmware.IsStatusLine(line),
			CreatedAt: time.Now(),
		})
	}
	cs.mu.Unlock()

	if err := cs.feedRepo.Append(ctx, entries...); err != nil {
		cs.logger.Error("Failed to persist feed entries", zap.Error(err))
	}

	cs.publish(&model.ConsoleEvent{
		ID:        uuid.New(),
		EventType: model.EventFeedAppend,
		SessionID: sessionIDOf(entries),
		Data:      &model.FeedEventData{Entries: feedEntryValues(entries)},
		Timestamp: time.Now(),
		Source:    "console-service",
	})

	if settingsChanged {
		cs.publishSettings()
	}
}

// watchLink waits for the link to die and closes the session when the
// failure belongs to the current connect generation
func (cs *ConsoleService) watchLink(generation uint64, done <-chan struct{}) {
	if done == nil {
		return
	}
	<-done

	cs.mu.Lock()
	session := cs.session
	stale := cs.generation != generation || session == nil
	cs.mu.Unlock()
	if stale {
		return
	}

	// A requested close also closes this channel. Only a reader error
	// leaves one behind.
	err := cs.link.Err()
	if err == nil {
		return
	}

	// Pick up the synthetic error line before the session record closes
	cs.drainReceived(context.Background())

	utils.NewSessionLogger(cs.logger.Logger, session.ID.String(), session.Port).
		Failed(err)
	cs.finishSession(context.Background(), model.CloseReasonReadError)
}

// finishSession closes the active session under the given reason
func (cs *ConsoleService) finishSession(ctx context.Context, reason model.CloseReason) {
	cs.mu.Lock()
	session := cs.session
	if session == nil {
		cs.mu.Unlock()
		return
	}
	cs.session = nil
	now := time.Now()
	session.State = model.SessionStateDisconnected
	session.ClosedAt = &now
	session.CloseReason = reason
	cs.mu.Unlock()

	cs.paramDebounce.StopAll()
	cs.freqDebounce.Stop()

	if err := cs.sessionRepo.Close(ctx, session.ID, now, reason); err != nil {
		cs.logger.Error("Failed to record session close", zap.Error(err))
	}

	utils.NewSessionLogger(cs.logger.Logger, session.ID.String(), session.Port).
		Closed(string(reason))
	cs.auditLogger.LogSessionClosed(session.ID.String(), string(reason))

	cs.appendFeed(ctx, model.FeedDirectionInfo,
		fmt.Sprintf("%s %s", feedTagDisconnected, session.Port))

	cs.publish(&model.ConsoleEvent{
		ID:        uuid.New(),
		EventType: model.EventSessionDisconnected,
		SessionID: &session.ID,
		Data: &model.SessionEventData{
			Session: *cloneSessionModel(session),
			Reason:  string(reason),
		},
		Timestamp: time.Now(),
		Source:    "console-service",
	})
}

// Debounce fire paths rebuild commands from the live settings so the
// last edit in the window is what reaches the wire.

func (cs *ConsoleService) fireFrequency() {
	cs.mu.Lock()
	command, _ := cs.variant.CmdFreq(cs.settings.FreqHz)
	cs.mu.Unlock()
	cs.Dispatch(context.Background(), command)
}

func (cs *ConsoleService) fireParam(name string) {
	cs.mu.Lock()
	value, ok := cs.settings.Params[name]
	variant := cs.variant
	cs.mu.Unlock()
	if !ok {
		return
	}

	command, err := variant.CmdSetParam(name, value)
	if err != nil {
		return
	}
	cs.Dispatch(context.Background(), command)
}

func (cs *ConsoleService) firePPM() {
	cs.mu.Lock()
	command, err := firmware.CmdPPM(cs.settings.PPM)
	cs.mu.Unlock()
	if err != nil {
		return
	}
	cs.Dispatch(context.Background(), command)
}

func (cs *ConsoleService) fireTxPower() {
	cs.mu.Lock()
	command, err := firmware.CmdTxPower(cs.settings.TxPowerDBm)
	cs.mu.Unlock()
	if err != nil {
		return
	}
	cs.Dispatch(context.Background(), command)
}

func (cs *ConsoleService) fireJitter() {
	cs.mu.Lock()
	command, err := cs.variant.CmdJitter(cs.settings.JitterUS)
	cs.mu.Unlock()
	if err != nil {
		return
	}
	cs.Dispatch(context.Background(), command)
}

// appendFeed records one console-originated feed line
func (cs *ConsoleService) appendFeed(ctx context.Context, direction model.FeedDirection, text string) {
	cs.mu.Lock()
	entry := &model.FeedEntry{
		ID:        uuid.New(),
		SessionID: cs.sessionUUIDLocked(),
		Seq:       cs.seq.Add(1),
		Direction: direction,
		Text:      text,
		IsStatus:  false,
		CreatedAt: time.Now(),
	}
	cs.mu.Unlock()

	if err := cs.feedRepo.Append(ctx, entry); err != nil {
		cs.logger.Error("Failed to persist feed entry", zap.Error(err))
	}

	cs.publish(&model.ConsoleEvent{
		ID:        uuid.New(),
		EventType: model.EventFeedAppend,
		SessionID: entry.SessionID,
		Data:      &model.FeedEventData{Entries: []model.FeedEntry{*entry}},
		Timestamp: time.Now(),
		Source:    "console-service",
	})
}

// publishSettings broadcasts the current settings snapshot
func (cs *ConsoleService) publishSettings() {
	cs.mu.Lock()
	snapshot := cs.settings.Clone()
	sessionID := cs.sessionUUIDLocked()
	cs.mu.Unlock()

	cs.publish(&model.ConsoleEvent{
		ID:        uuid.New(),
		EventType: model.EventSettingsUpdate,
		SessionID: sessionID,
		Data:      snapshot,
		Timestamp: time.Now(),
		Source:    "console-service",
	})
}

func (cs *ConsoleService) publish(event *model.ConsoleEvent) {
	if cs.publisher != nil {
		cs.publisher.Publish(event)
	}
}

func (cs *ConsoleService) currentGeneration() uint64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.generation
}

func (cs *ConsoleService) defaultVariant() firmware.Variant {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.variant
}

// sessionIDLocked returns the session id string for audit entries.
// Callers hold cs.mu.
func (cs *ConsoleService) sessionIDLocked() string {
	if cs.session == nil {
		return ""
	}
	return cs.session.ID.String()
}

// sessionUUIDLocked returns a copy of the session id, nil when
// disconnected. Callers hold cs.mu.
func (cs *ConsoleService) sessionUUIDLocked() *uuid.UUID {
	if cs.session == nil {
		return nil
	}
	id := cs.session.ID
	return &id
}

func sessionIDOf(entries []*model.FeedEntry) *uuid.UUID {
	for _, entry := range entries {
		if entry.SessionID != nil {
			return entry.SessionID
		}
	}
	return nil
}

func feedEntryValues(entries []*model.FeedEntry) []model.FeedEntry {
	values := make([]model.FeedEntry, len(entries))
	for i, entry := range entries {
		values[i] = *entry
	}
	return values
}

func cloneSessionModel(session *model.Session) *model.Session {
	clone := *session
	if session.ClosedAt != nil {
		ts := *session.ClosedAt
		clone.ClosedAt = &ts
	}
	return &clone
}

// Data Transfer Objects

// ConnectRequest represents a connect request
type ConnectRequest struct {
	Port     string `json:"port" binding:"required" example:"/dev/ttyACM0"`
	BaudRate int    `json:"baud_rate,omitempty" example:"115200"`
	Variant  string `json:"variant,omitempty" example:"rev-b"`
}

// FrequencyResult reports how a frequency request was applied
type FrequencyResult struct {
	RequestedHz int64 `json:"requested_hz"`
	AppliedHz   int64 `json:"applied_hz"`
	DownlinkHz  int64 `json:"downlink_hz"`
}

// ConsoleSnapshot represents the full console state
type ConsoleSnapshot struct {
	Connected bool              `json:"connected"`
	Session   *model.Session    `json:"session,omitempty"`
	Variant   firmware.Variant  `json:"variant"`
	Plan      tuner.FreqPlan    `json:"plan"`
	Settings  firmware.Settings `json:"settings"`
	Link      transport.Stats   `json:"link"`
}

// internal/service/console_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qo100-console/internal/config"
	"qo100-console/internal/firmware"
	"qo100-console/internal/model"
	"qo100-console/internal/repository"
	"qo100-console/internal/transport"
	"qo100-console/internal/tuner"
)

// fakeLink stands in for the serial transport. It mimics the real
// link's behavior on read failure: one tagged line in the receive
// buffer, then the done channel closes with the error set.
type fakeLink struct {
	mu         sync.Mutex
	connected  bool
	port       string
	baudRate   int
	sent       []string
	pending    []string
	done       chan struct{}
	err        error
	connectErr error
	sendErr    error
}

func newFakeLink() *fakeLink {
	return &fakeLink{done: make(chan struct{})}
}

func (l *fakeLink) Connect(portName string, baudRate int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.connectErr != nil {
		return l.connectErr
	}
	l.connected = true
	l.port = portName
	l.baudRate = baudRate
	l.err = nil
	l.done = make(chan struct{})
	return nil
}

func (l *fakeLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.connected {
		return nil
	}
	l.connected = false
	l.err = nil
	close(l.done)
	return nil
}

func (l *fakeLink) SendLine(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.connected {
		return transport.ErrNotConnected
	}
	if l.sendErr != nil {
		return l.sendErr
	}
	l.sent = append(l.sent, line)
	return nil
}

func (l *fakeLink) DrainLines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) == 0 {
		return nil
	}
	lines := l.pending
	l.pending = nil
	return lines
}

func (l *fakeLink) IsConnected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

func (l *fakeLink) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *fakeLink) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *fakeLink) Stats() transport.Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return transport.Stats{Port: l.port, BaudRate: l.baudRate, Connected: l.connected}
}

func (l *fakeLink) pushLine(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, line)
}

func (l *fakeLink) failSend(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sendErr = err
}

func (l *fakeLink) failRead(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.connected {
		return
	}
	l.pending = append(l.pending, fmt.Sprintf("[SERIAL ERROR] %v", err))
	l.connected = false
	l.err = err
	close(l.done)
}

func (l *fakeLink) sentLines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.sent...)
}

func (l *fakeLink) clearSent() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = nil
}

func (l *fakeLink) countSentWithPrefix(prefix string) int {
	n := 0
	for _, line := range l.sentLines() {
		if len(line) >= len(prefix) && line[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

type capturePublisher struct {
	mu     sync.Mutex
	events []*model.ConsoleEvent
}

func (p *capturePublisher) Publish(event *model.ConsoleEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) byType(eventType model.EventType) []*model.ConsoleEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matched []*model.ConsoleEvent
	for _, e := range p.events {
		if e.EventType == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

func testConfig() *config.Config {
	return &config.Config{
		Serial: config.SerialConfig{
			BaudRate: 115200,
			Variant:  "rev-b",
		},
		Tuner: config.TunerConfig{
			ParamDebounce: 30 * time.Millisecond,
			FreqDebounce:  30 * time.Millisecond,
		},
		Console: config.ConsoleConfig{
			PollInterval: 5 * time.Millisecond,
			SyncDelay:    20 * time.Millisecond,
			FeedHistory:  500,
		},
	}
}

func newTestConsole(t *testing.T, cfg *config.Config) (*ConsoleService, *fakeLink, *capturePublisher, repository.FeedRepository) {
	t.Helper()

	link := newFakeLink()
	publisher := &capturePublisher{}
	sessionRepo := repository.NewMemorySessionRepository()
	feedRepo := repository.NewMemoryFeedRepository(cfg.Console.FeedHistory)

	svc, err := NewConsoleService(link, sessionRepo, feedRepo, publisher, cfg, zap.NewNop())
	require.NoError(t, err)

	svc.Start()
	t.Cleanup(svc.Stop)

	return svc, link, publisher, feedRepo
}

func feedTexts(t *testing.T, feedRepo repository.FeedRepository) []string {
	t.Helper()
	entries, _, err := feedRepo.List(context.Background(), &repository.FeedFilter{PerPage: 1000})
	require.NoError(t, err)
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return texts
}

func TestConnectLifecycle(t *testing.T) {
	svc, link, publisher, feedRepo := newTestConsole(t, testConfig())
	ctx := context.Background()

	session, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)
	assert.Equal(t, model.SessionStateConnected, session.State)
	assert.Equal(t, 115200, session.BaudRate)
	assert.Equal(t, firmware.VariantRevB, session.Variant)
	assert.True(t, link.IsConnected())

	_, err = svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already connected")

	// The delayed status request fires once the boot banner settled
	require.Eventually(t, func() bool {
		for _, line := range link.sentLines() {
			if line == "get" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	assert.Contains(t, feedTexts(t, feedRepo), "[CONNECTED] /dev/ttyACM0 @ 115200")
	require.Len(t, publisher.byType(model.EventSessionConnected), 1)

	require.NoError(t, svc.Disconnect(ctx))
	assert.False(t, link.IsConnected())

	snap := svc.Snapshot(ctx)
	assert.False(t, snap.Connected)
	assert.Nil(t, snap.Session)

	assert.Contains(t, feedTexts(t, feedRepo), "[DISCONNECTED] /dev/ttyACM0")

	events := publisher.byType(model.EventSessionDisconnected)
	require.Len(t, events, 1)
	data, ok := events[0].Data.(*model.SessionEventData)
	require.True(t, ok)
	assert.Equal(t, string(model.CloseReasonRequested), data.Reason)

	require.Error(t, svc.Disconnect(ctx))
}

func TestConnectValidation(t *testing.T) {
	svc, _, _, _ := newTestConsole(t, testConfig())
	ctx := context.Background()

	_, err := svc.Connect(ctx, &ConnectRequest{})
	assert.Error(t, err)

	_, err = svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0", Variant: "rev-c"})
	assert.Error(t, err)
}

func TestConnectFailure(t *testing.T) {
	svc, link, publisher, _ := newTestConsole(t, testConfig())
	link.mu.Lock()
	link.connectErr = errors.New("permission denied")
	link.mu.Unlock()

	_, err := svc.Connect(context.Background(), &ConnectRequest{Port: "/dev/ttyACM0"})
	require.Error(t, err)

	snap := svc.Snapshot(context.Background())
	assert.False(t, snap.Connected)
	assert.Empty(t, publisher.byType(model.EventSessionConnected))
}

func TestDispatchFeed(t *testing.T) {
	svc, link, _, feedRepo := newTestConsole(t, testConfig())
	ctx := context.Background()

	_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)

	require.NoError(t, svc.Dispatch(ctx, "  get  "))
	assert.Contains(t, link.sentLines(), "get")
	assert.Contains(t, feedTexts(t, feedRepo), "> get")

	// Blank input is dropped without touching the link
	before := len(link.sentLines())
	require.NoError(t, svc.Dispatch(ctx, "   "))
	assert.Len(t, link.sentLines(), before)

	require.NoError(t, svc.Disconnect(ctx))

	err = svc.Dispatch(ctx, "diag")
	require.Error(t, err)
	assert.Contains(t, feedTexts(t, feedRepo), "[NOT CONNECTED] diag")
}

func TestDispatchWriteFailureRecorded(t *testing.T) {
	svc, link, _, feedRepo := newTestConsole(t, testConfig())
	ctx := context.Background()

	_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)

	link.failSend(errors.New("input/output error"))

	err = svc.Dispatch(ctx, "status")
	require.Error(t, err)
	assert.NotContains(t, link.sentLines(), "status")

	texts := feedTexts(t, feedRepo)
	found := false
	for _, text := range texts {
		if strings.HasPrefix(text, "[SEND ERROR]") && strings.Contains(text, "input/output error") {
			found = true
		}
	}
	assert.True(t, found, "expected a send error feed entry, got %v", texts)
}

func TestSetFrequencyClampAndDebounce(t *testing.T) {
	svc, link, publisher, _ := newTestConsole(t, testConfig())
	ctx := context.Background()

	_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)
	link.clearSent()

	// Below the window: pulled up to the edge
	res, err := svc.SetFrequency(ctx, 2_399_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(2_400_000_000), res.AppliedHz)

	// Overrides the pending value before the window elapses. Rev-b
	// snaps down onto the 100 Hz grid.
	res, err = svc.SetFrequency(ctx, 2_400_123_456)
	require.NoError(t, err)
	assert.Equal(t, int64(2_400_123_400), res.AppliedHz)
	assert.Equal(t, int64(10_489_623_400), res.DownlinkHz)

	require.Eventually(t, func() bool {
		return link.countSentWithPrefix("freq ") == 1
	}, time.Second, 5*time.Millisecond)

	assert.Contains(t, link.sentLines(), "freq 2400123400")
	assert.NotContains(t, link.sentLines(), "freq 2400000000")

	snap := svc.Snapshot(ctx)
	assert.Equal(t, int64(2_400_123_400), snap.Settings.FreqHz)
	assert.Equal(t, int64(10_489_623_400), snap.Settings.DownlinkHz)

	assert.NotEmpty(t, publisher.byType(model.EventSettingsUpdate))
}

func TestSetParamDebounceCoalesces(t *testing.T) {
	svc, link, _, _ := newTestConsole(t, testConfig())
	ctx := context.Background()

	_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)
	link.clearSent()

	require.NoError(t, svc.SetParam(ctx, "comp_thr", decimal.NewFromFloat(-12)))
	require.NoError(t, svc.SetParam(ctx, "comp_thr", decimal.NewFromFloat(-18.5)))
	require.NoError(t, svc.SetParam(ctx, "bp_lo", decimal.NewFromInt(250)))

	require.Eventually(t, func() bool {
		return link.countSentWithPrefix("set ") == 2
	}, time.Second, 5*time.Millisecond)

	sent := link.sentLines()
	assert.Contains(t, sent, "set comp_thr -18.5")
	assert.Contains(t, sent, "set bp_lo 250")
	assert.NotContains(t, sent, "set comp_thr -12.0")
}

func TestSetParamValidation(t *testing.T) {
	svc, _, _, _ := newTestConsole(t, testConfig())
	ctx := context.Background()

	_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)

	err = svc.SetParam(ctx, "comp_thr", decimal.NewFromInt(5))
	var ve *firmware.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "comp_thr", ve.Field)

	err = svc.SetParam(ctx, "no_such_knob", decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestVariantGates(t *testing.T) {
	t.Run("rev-b rejects tx switch, accepts jitter", func(t *testing.T) {
		svc, link, _, _ := newTestConsole(t, testConfig())
		ctx := context.Background()

		_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
		require.NoError(t, err)
		link.clearSent()

		assert.Error(t, svc.SetTX(ctx, true))

		require.NoError(t, svc.SetJitter(ctx, 15))
		require.Eventually(t, func() bool {
			return link.countSentWithPrefix("jitter ") == 1
		}, time.Second, 5*time.Millisecond)
		assert.Contains(t, link.sentLines(), "jitter 15")
	})

	t.Run("rev-a accepts tx switch, rejects jitter", func(t *testing.T) {
		svc, link, _, _ := newTestConsole(t, testConfig())
		ctx := context.Background()

		_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0", Variant: "rev-a"})
		require.NoError(t, err)
		link.clearSent()

		require.NoError(t, svc.SetTX(ctx, true))
		assert.Contains(t, link.sentLines(), "tx 1")

		assert.Error(t, svc.SetJitter(ctx, 15))

		err = svc.SetParam(ctx, "eq_slope", decimal.NewFromFloat(1.2))
		assert.Error(t, err)
	})
}

func TestImmediateCommands(t *testing.T) {
	svc, link, _, _ := newTestConsole(t, testConfig())
	ctx := context.Background()

	_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)
	link.clearSent()

	require.NoError(t, svc.SetEnable(ctx, "bp", false))
	assert.Contains(t, link.sentLines(), "enable bp 0")

	snap := svc.Snapshot(ctx)
	assert.False(t, snap.Settings.EnableBP)

	err = svc.SetEnable(ctx, "reverb", true)
	assert.Error(t, err)

	require.NoError(t, svc.Carrier(ctx, true))
	require.NoError(t, svc.Carrier(ctx, false))
	require.NoError(t, svc.RequestStatus(ctx))
	require.NoError(t, svc.RunDiagnostics(ctx))

	sent := link.sentLines()
	assert.Contains(t, sent, "cw")
	assert.Contains(t, sent, "stop")
	assert.Contains(t, sent, "get")
	assert.Contains(t, sent, "diag")
}

func TestReceiveFlowUpdatesSettings(t *testing.T) {
	svc, link, publisher, feedRepo := newTestConsole(t, testConfig())
	ctx := context.Background()

	session, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)

	link.pushLine("boot complete")
	link.pushLine("CFG: freq=2400200000 ppm=1.2500 txpwr=10")

	require.Eventually(t, func() bool {
		snap := svc.Snapshot(ctx)
		return snap.Settings.FreqHz == 2_400_200_000
	}, time.Second, 5*time.Millisecond)

	snap := svc.Snapshot(ctx)
	assert.Equal(t, 10, snap.Settings.TxPowerDBm)
	assert.True(t, snap.Settings.PPM.Equal(decimal.RequireFromString("1.25")))

	entries, _, err := feedRepo.List(ctx, &repository.FeedFilter{PerPage: 100})
	require.NoError(t, err)

	var bootEntry, cfgEntry *model.FeedEntry
	for _, e := range entries {
		switch e.Text {
		case "boot complete":
			bootEntry = e
		case "CFG: freq=2400200000 ppm=1.2500 txpwr=10":
			cfgEntry = e
		}
	}
	require.NotNil(t, bootEntry)
	require.NotNil(t, cfgEntry)
	assert.Equal(t, model.FeedDirectionRecv, bootEntry.Direction)
	assert.False(t, bootEntry.IsStatus)
	assert.True(t, cfgEntry.IsStatus)
	require.NotNil(t, cfgEntry.SessionID)
	assert.Equal(t, session.ID, *cfgEntry.SessionID)
	assert.Greater(t, cfgEntry.Seq, bootEntry.Seq)

	assert.NotEmpty(t, publisher.byType(model.EventFeedAppend))
	assert.NotEmpty(t, publisher.byType(model.EventSettingsUpdate))
}

func TestReadErrorClosesSession(t *testing.T) {
	svc, link, publisher, feedRepo := newTestConsole(t, testConfig())
	ctx := context.Background()

	session, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)

	link.failRead(errors.New("device unplugged"))

	require.Eventually(t, func() bool {
		return !svc.Snapshot(ctx).Connected
	}, time.Second, 5*time.Millisecond)

	events := publisher.byType(model.EventSessionDisconnected)
	require.Len(t, events, 1)
	data, ok := events[0].Data.(*model.SessionEventData)
	require.True(t, ok)
	assert.Equal(t, string(model.CloseReasonReadError), data.Reason)

	// The tagged failure line lands in the feed, attributed to the
	// session that died
	entries, _, err := feedRepo.List(ctx, &repository.FeedFilter{PerPage: 100})
	require.NoError(t, err)
	var errorEntry *model.FeedEntry
	for _, e := range entries {
		if e.Direction == model.FeedDirectionError {
			errorEntry = e
		}
	}
	require.NotNil(t, errorEntry)
	assert.Contains(t, errorEntry.Text, "[SERIAL ERROR]")
	assert.Contains(t, errorEntry.Text, "device unplugged")
	require.NotNil(t, errorEntry.SessionID)
	assert.Equal(t, session.ID, *errorEntry.SessionID)
}

func TestSyncSettingsPushesSnapshot(t *testing.T) {
	svc, link, _, _ := newTestConsole(t, testConfig())
	ctx := context.Background()

	_, err := svc.Connect(ctx, &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)

	// Let the delayed status request land before clearing, so the sync
	// sequence is the only traffic left to compare
	require.Eventually(t, func() bool {
		return link.countSentWithPrefix("get") == 1
	}, time.Second, 5*time.Millisecond)
	link.clearSent()

	count, err := svc.SyncSettings(ctx)
	require.NoError(t, err)

	expected := firmware.VariantRevB.SyncCommands(firmware.VariantRevB.Defaults())
	assert.Equal(t, len(expected), count)
	assert.Equal(t, expected, link.sentLines())
}

func TestSnapshotOffline(t *testing.T) {
	svc, _, _, _ := newTestConsole(t, testConfig())

	snap := svc.Snapshot(context.Background())
	assert.False(t, snap.Connected)
	assert.Nil(t, snap.Session)
	assert.Equal(t, firmware.VariantRevB, snap.Variant)
	assert.Equal(t, int64(2_400_400_000), snap.Settings.FreqHz)
	assert.Equal(t, tuner.UplinkStepHz, snap.Plan.Step)
}

func TestStopClosesOpenSession(t *testing.T) {
	cfg := testConfig()
	link := newFakeLink()
	publisher := &capturePublisher{}
	sessionRepo := repository.NewMemorySessionRepository()
	feedRepo := repository.NewMemoryFeedRepository(cfg.Console.FeedHistory)

	svc, err := NewConsoleService(link, sessionRepo, feedRepo, publisher, cfg, zap.NewNop())
	require.NoError(t, err)
	svc.Start()

	_, err = svc.Connect(context.Background(), &ConnectRequest{Port: "/dev/ttyACM0"})
	require.NoError(t, err)

	svc.Stop()

	latest, err := sessionRepo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SessionStateDisconnected, latest.State)
	assert.Equal(t, model.CloseReasonShutdown, latest.CloseReason)
	assert.False(t, link.IsConnected())
}

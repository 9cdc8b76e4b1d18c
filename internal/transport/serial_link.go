// internal/transport/serial_link.go
package transport

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"
)

// Default link tunables matching the radio firmware's CDC expectations
const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 100 * time.Millisecond
	DefaultChunkSize   = 256
	DefaultIdleSleep   = 10 * time.Millisecond
)

// readErrorTag prefixes the synthetic feed line published when the reader
// goroutine dies on a port I/O error.
const readErrorTag = "[SERIAL ERROR]"

// portHandle is the slice of serial.Port the link actually touches. Tests
// substitute a fake through openPort.
type portHandle interface {
	SetReadTimeout(t time.Duration) error
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Drain() error
	Close() error
}

// openPort is swapped out in tests to avoid real hardware
var openPort = func(name string, mode *serial.Mode) (portHandle, error) {
	return serial.Open(name, mode)
}

// Config carries the serial link tunables. Zero values fall back to the
// defaults above.
type Config struct {
	BaudRate    int
	ReadTimeout time.Duration
	ChunkSize   int
	IdleSleep   time.Duration
}

func (c *Config) applyDefaults() {
	if c.BaudRate <= 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.IdleSleep <= 0 {
		c.IdleSleep = DefaultIdleSleep
	}
}

// Stats is a snapshot of the counters kept for the current session
type Stats struct {
	Port         string    `json:"port"`
	BaudRate     int       `json:"baud_rate"`
	Connected    bool      `json:"connected"`
	BytesRead    int64     `json:"bytes_read"`
	BytesWritten int64     `json:"bytes_written"`
	LinesRead    int64     `json:"lines_read"`
	LinesSent    int64     `json:"lines_sent"`
	ConnectedAt  time.Time `json:"connected_at,omitempty"`
	LastActivity time.Time `json:"last_activity,omitempty"`
}

// SerialLink owns one serial port session and the reader goroutine that
// frames incoming bytes into lines. A single link value is reused across
// connect/disconnect cycles; Connect after Close opens a fresh session.
//
// Writes happen under the link mutex so a concurrent Close cannot pull the
// port away mid-write. The reader reads without the mutex; Close detaches
// the port under the mutex first and then closes it, and the reader
// notices the stop signal within one read timeout.
type SerialLink struct {
	cfg    Config
	logger *zap.Logger
	inbox  *Inbox

	mu       sync.Mutex
	port     portHandle
	portName string
	stop     chan struct{}
	done     chan struct{}
	lastErr  error
	stats    Stats
}

// NewSerialLink creates a link in the disconnected state
func NewSerialLink(cfg Config, logger *zap.Logger) *SerialLink {
	cfg.applyDefaults()
	return &SerialLink{
		cfg:    cfg,
		logger: logger.With(zap.String("component", "serial_link")),
		inbox:  NewInbox(),
	}
}

// Connect opens the named port at the given baud rate and starts the
// reader goroutine. A baud of zero selects the configured default.
// Calling Connect while a session is already open is a no-op.
func (l *SerialLink) Connect(portName string, baud int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port != nil {
		return nil
	}

	if baud <= 0 {
		baud = l.cfg.BaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	l.logger.Info("Opening serial port",
		zap.String("port", portName),
		zap.Int("baud_rate", baud),
	)

	port, err := openPort(portName, mode)
	if err != nil {
		l.logger.Error("Failed to open serial port", zap.Error(err))
		return &ConnectError{Port: portName, Err: err}
	}
	if err := port.SetReadTimeout(l.cfg.ReadTimeout); err != nil {
		port.Close()
		return &ConnectError{Port: portName, Err: fmt.Errorf("set read timeout: %w", err)}
	}

	l.port = port
	l.portName = portName
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	l.lastErr = nil
	l.stats = Stats{
		Port:        portName,
		BaudRate:    baud,
		Connected:   true,
		ConnectedAt: time.Now(),
	}

	go l.readLoop(port, portName, l.stop, l.done)

	l.logger.Info("Serial port opened successfully")
	return nil
}

// Close tears down the current session. It is safe to call when no session
// is open and safe to call twice; OS close errors are logged and swallowed
// so teardown always succeeds.
func (l *SerialLink) Close() error {
	l.mu.Lock()
	if l.port == nil {
		l.mu.Unlock()
		return nil
	}
	port := l.port
	portName := l.portName
	l.port = nil
	l.stats.Connected = false
	close(l.stop)
	l.mu.Unlock()

	if err := port.Close(); err != nil {
		l.logger.Warn("Serial port close failed", zap.String("port", portName), zap.Error(err))
	}
	l.logger.Info("Serial port closed", zap.String("port", portName))
	return nil
}

// SendLine trims the line, appends CRLF and writes it to the port in one
// call. An all-whitespace line is dropped without touching the port.
// Returns ErrNotConnected when no session is open.
func (l *SerialLink) SendLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port == nil {
		return ErrNotConnected
	}

	data := []byte(trimmed + "\r\n")
	n, err := l.port.Write(data)
	if err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("incomplete write: wrote %d of %d bytes", n, len(data))
	}
	if err := l.port.Drain(); err != nil {
		return fmt.Errorf("serial drain: %w", err)
	}

	l.stats.BytesWritten += int64(len(data))
	l.stats.LinesSent++
	l.stats.LastActivity = time.Now()

	l.logger.Debug("Serial write completed", zap.Int("bytes", len(data)))
	return nil
}

// DrainLines returns every line received since the previous call, oldest
// first. It never blocks.
func (l *SerialLink) DrainLines() []string {
	return l.inbox.DrainAll()
}

// IsConnected reports whether a session is currently open
func (l *SerialLink) IsConnected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port != nil
}

// Done returns the channel closed when the reader goroutine of the current
// session exits, for any reason. It returns nil before the first Connect.
func (l *SerialLink) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Err returns the read failure that killed the last session, or nil after
// a clean Close.
func (l *SerialLink) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Stats returns a snapshot of the session counters
func (l *SerialLink) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// readLoop pulls fixed-size chunks off the port, frames them into lines
// and publishes the lines to the inbox. It exits when the stop channel
// closes, or on a port I/O error after publishing one tagged feed line.
func (l *SerialLink) readLoop(port portHandle, portName string, stop <-chan struct{}, done chan struct{}) {
	defer close(done)

	framer := NewLineFramer()
	buf := make([]byte, l.cfg.ChunkSize)

	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := port.Read(buf)
		if n > 0 {
			lines := framer.Push(buf[:n])
			for _, line := range lines {
				l.inbox.Put(line)
			}
			l.noteRead(n, len(lines))
		}
		if err != nil {
			select {
			case <-stop:
				// Close pulled the port out from under a blocked read.
				return
			default:
			}
			l.failSession(port, portName, err)
			return
		}
		if n == 0 {
			time.Sleep(l.cfg.IdleSleep)
		}
	}
}

// failSession is the abnormal exit path of the reader: publish one tagged
// line so the operator sees the failure in the feed, detach the dead port
// and let Done observers drop the session.
func (l *SerialLink) failSession(port portHandle, portName string, err error) {
	l.logger.Error("Serial read failed, dropping session",
		zap.String("port", portName),
		zap.Error(err),
	)
	l.inbox.Put(fmt.Sprintf("%s %v", readErrorTag, err))

	l.mu.Lock()
	if l.port == port {
		l.port = nil
		l.stats.Connected = false
		l.lastErr = &ReadError{Port: portName, Err: err}
	}
	l.mu.Unlock()

	port.Close()
}

func (l *SerialLink) noteRead(bytes, lines int) {
	l.mu.Lock()
	l.stats.BytesRead += int64(bytes)
	l.stats.LinesRead += int64(lines)
	l.stats.LastActivity = time.Now()
	l.mu.Unlock()
}

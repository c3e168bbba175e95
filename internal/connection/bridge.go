package connection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rickgao/led-remote/internal/protocol"
)

// Handler is the set of capabilities the bridge exposes to its event source.
// The connection's lifecycle drives OnOpen, OnClose and OnMessage; the panel
// drives SendCommand.
type Handler interface {
	OnOpen()
	OnClose(err error)
	OnMessage(data []byte)
	SendCommand(label protocol.Label) error
}

// Display receives device statuses.
type Display interface {
	// Apply clears every indicator and activates the one matching status.
	Apply(status string) bool
}

// ClientFactory creates the client used for one connection attempt.
type ClientFactory func(cfg ClientConfig, logger *slog.Logger) Client

// AfterFunc runs f once after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClientFactory replaces the WebSocket client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(b *Bridge) {
		if f != nil {
			b.newClient = f
		}
	}
}

// WithAfterFunc replaces the timer used to schedule reconnects.
func WithAfterFunc(f AfterFunc) Option {
	return func(b *Bridge) {
		if f != nil {
			b.afterFunc = f
		}
	}
}

// Bridge owns the single device connection and relays frames between it and
// the display.
type Bridge struct {
	cfg       BridgeConfig
	display   Display
	logger    *slog.Logger
	newClient ClientFactory
	afterFunc AfterFunc
	lifecycle *Lifecycle

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	client        Client      // Current connection handle
	stopReconnect func() bool // Non-nil while a reconnect is pending
	attempts      int64
	started       bool
	stopped       bool
}

var _ Handler = (*Bridge)(nil)

// NewBridge creates a bridge for the device at cfg.Host.
func NewBridge(cfg BridgeConfig, display Display, opts ...Option) *Bridge {
	b := &Bridge{
		cfg:       cfg,
		display:   display,
		logger:    slog.Default(),
		newClient: NewClient,
		afterFunc: timeAfterFunc,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lifecycle = NewLifecycle(b.logger)
	return b
}

// Start opens the first connection. Reconnects continue until ctx is
// cancelled or Stop is called.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return ErrAlreadyStarted
	}
	b.started = true
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.mu.Unlock()

	b.logger.Info("bridge started", "endpoint", Endpoint(b.cfg.Host))

	b.Connect()
	return nil
}

// Stop cancels any pending reconnect, closes the connection and waits for
// the connection goroutine to exit.
func (b *Bridge) Stop(ctx context.Context) error {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil
	}
	b.stopped = true
	if b.cancel != nil {
		b.cancel()
	}
	if b.stopReconnect != nil {
		b.stopReconnect()
		b.stopReconnect = nil
	}
	client := b.client
	b.mu.Unlock()

	if client != nil {
		client.Close()
	}

	// Wait for goroutines with timeout
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		b.logger.Warn("shutdown timeout, abandoning connection goroutine")
	}

	if err := b.lifecycle.Fire(EventStop); err != nil {
		b.logger.Debug("lifecycle", "error", err)
	}
	b.logger.Info("bridge stopped")
	return nil
}

// State returns the current lifecycle state.
func (b *Bridge) State() string {
	return b.lifecycle.Current()
}

// Attempts returns the number of connection attempts made so far.
func (b *Bridge) Attempts() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Connect opens a new connection to the derived endpoint, replacing the
// current handle. The outcome is reported asynchronously through OnOpen or
// OnClose.
func (b *Bridge) Connect() {
	b.mu.Lock()
	if !b.runningLocked() {
		b.mu.Unlock()
		return
	}

	cfg := b.cfg.Client
	cfg.URL = Endpoint(b.cfg.Host)
	connID := uuid.NewString()
	client := b.newClient(cfg, b.logger.With("conn_id", connID))

	old := b.client
	b.client = client
	b.attempts++
	attempt := b.attempts

	// Added under mu so Stop never waits before this goroutine is counted.
	b.wg.Add(1)
	b.mu.Unlock()

	if old != nil {
		old.Close()
	}

	if err := b.lifecycle.Fire(EventDial); err != nil {
		b.logger.Debug("lifecycle", "error", err)
	}
	b.logger.Info("trying to open websocket connection",
		"url", cfg.URL,
		"conn_id", connID,
		"attempt", attempt,
	)

	go b.run(client)
}

// OnOpen records that the connection is open.
func (b *Bridge) OnOpen() {
	if err := b.lifecycle.Fire(EventOpened); err != nil {
		b.logger.Debug("lifecycle", "error", err)
	}
	b.logger.Info("connection opened")
}

// OnClose records the drop and schedules exactly one reconnect after
// ReconnectDelay. A reconnect already pending is left as is.
func (b *Bridge) OnClose(err error) {
	if lerr := b.lifecycle.Fire(EventDrop); lerr != nil {
		b.logger.Debug("lifecycle", "error", lerr)
	}
	b.logger.Warn("connection closed", "error", err)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.runningLocked() {
		return
	}
	if b.stopReconnect != nil {
		return
	}

	b.stopReconnect = b.afterFunc(ReconnectDelay, b.reconnect)
	b.logger.Info("reconnect scheduled", "delay", ReconnectDelay)
}

// OnMessage applies a status frame to the display. Malformed frames are
// logged and leave the display unchanged.
func (b *Bridge) OnMessage(data []byte) {
	msg, err := protocol.DecodeStatus(data)
	if err != nil {
		b.logger.Warn("dropping malformed status frame",
			"error", err,
			"payload", truncate(data, 64),
		)
		return
	}

	if b.display.Apply(msg.Status) {
		b.logger.Debug("display updated", "status", msg.Status)
	}
}

// SendCommand asks the device to toggle label. While the connection is not
// open the command is dropped with a warning and ErrNotConnected is returned.
func (b *Bridge) SendCommand(label protocol.Label) error {
	data, err := protocol.EncodeCommand(label)
	if err != nil {
		b.logger.Warn("refusing to send command", "action", label, "error", err)
		return err
	}

	b.mu.Lock()
	client := b.client
	b.mu.Unlock()

	if client == nil || !b.lifecycle.Is(StateOpen) {
		b.logger.Warn("not connected, dropping command", "action", label)
		return ErrNotConnected
	}

	if err := client.Send(data); err != nil {
		b.logger.Warn("failed to send command", "action", label, "error", err)
		return err
	}

	b.logger.Debug("command sent", "action", label)
	return nil
}

// reconnect fires when the reconnect timer expires.
func (b *Bridge) reconnect() {
	b.mu.Lock()
	b.stopReconnect = nil
	b.mu.Unlock()

	b.Connect()
}

// run dials client and pumps its frames until it drops or is replaced.
func (b *Bridge) run(client Client) {
	defer b.wg.Done()

	if err := client.Connect(b.ctx); err != nil {
		b.closed(client, err)
		return
	}
	if !b.isCurrent(client) {
		client.Close()
		return
	}

	b.OnOpen()

	for {
		select {
		case <-b.ctx.Done():
			return

		case <-client.Done():
			return

		case err := <-client.Errors():
			// Deliver anything read before the drop, in order.
			b.drain(client)
			b.closed(client, err)
			return

		case msg := <-client.Messages():
			if b.isCurrent(client) {
				b.OnMessage(msg.Data)
			}
		}
	}
}

func (b *Bridge) drain(client Client) {
	for {
		select {
		case msg := <-client.Messages():
			if b.isCurrent(client) {
				b.OnMessage(msg.Data)
			}
		default:
			return
		}
	}
}

// closed reports a drop unless client has been superseded or the bridge is
// shutting down.
func (b *Bridge) closed(client Client, err error) {
	if !b.isCurrent(client) {
		return
	}
	if b.ctx.Err() != nil {
		return
	}
	b.OnClose(err)
}

func (b *Bridge) isCurrent(client Client) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.client == client
}

func (b *Bridge) runningLocked() bool {
	return b.started && !b.stopped && b.ctx.Err() == nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}

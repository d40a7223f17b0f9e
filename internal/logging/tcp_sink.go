package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// SinkConfig tunes a TCPSink. Zero values fall back to the defaults below.
type SinkConfig struct {
	Addr          string
	DialTimeout   time.Duration
	WriteTimeout  time.Duration
	RetryInterval time.Duration
}

const (
	defaultDialTimeout   = 2 * time.Second
	defaultWriteTimeout  = time.Second
	defaultRetryInterval = 5 * time.Second
)

var (
	errEmptyAddr      = errors.New("logging: empty sink address")
	errSinkCoolingOff = errors.New("logging: sink cooling off")
)

// TCPSink mirrors newline-delimited JSON log lines to a Logstash tcp input.
// A request never waits on it: while the collector is unreachable lines are
// dropped and counted, and a reconnect is attempted once per retry interval.
type TCPSink struct {
	cfg  SinkConfig
	dial func(network, addr string, timeout time.Duration) (net.Conn, error)
	now  func() time.Time

	mu       sync.Mutex
	conn     net.Conn
	nextDial time.Time
	closed   bool
	dropped  atomic.Int64
}

func NewTCPSink(cfg SinkConfig) (*TCPSink, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errEmptyAddr
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	return &TCPSink{cfg: cfg, dial: net.DialTimeout, now: time.Now}, nil
}

// Write implements io.Writer for zerolog. It always reports success so a
// broken collector cannot fail the caller's log statement.
func (s *TCPSink) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, io.ErrClosedPipe
	}
	if err := s.connectLocked(); err != nil {
		s.dropped.Add(1)
		return len(p), nil
	}

	_ = s.conn.SetWriteDeadline(s.now().Add(s.cfg.WriteTimeout))
	if _, err := s.conn.Write(line); err != nil {
		s.resetLocked()
		s.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped reports how many lines never reached the collector.
func (s *TCPSink) Dropped() int64 {
	return s.dropped.Load()
}

func (s *TCPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *TCPSink) connectLocked() error {
	if s.conn != nil {
		return nil
	}
	if now := s.now(); !s.nextDial.IsZero() && now.Before(s.nextDial) {
		return errSinkCoolingOff
	}
	conn, err := s.dial("tcp", s.cfg.Addr, s.cfg.DialTimeout)
	if err != nil {
		s.nextDial = s.now().Add(s.cfg.RetryInterval)
		return err
	}
	s.conn = conn
	s.nextDial = time.Time{}
	return nil
}

func (s *TCPSink) resetLocked() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.nextDial = s.now().Add(s.cfg.RetryInterval)
}

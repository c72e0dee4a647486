// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package telnet provides the line-oriented TCP transport. Connections are
// read concurrently, but every event is funneled through one channel into
// the core, which therefore never needs locks.
package telnet

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/samber/oops"

	"github.com/emberpath/ember/internal/observability"
	"github.com/emberpath/ember/internal/session"
)

// Core is the event sink the transport drives. Calls are serialized: the
// transport never invokes two methods concurrently.
type Core interface {
	OnConnection(link session.Link)
	OnText(ctx context.Context, link session.Link, line string)
	OnDisconnection(ctx context.Context, link session.Link)
}

type eventKind int

const (
	eventConnect eventKind = iota
	eventLine
	eventDisconnect
)

type event struct {
	kind eventKind
	link *Link
	line string
}

// Server accepts telnet connections and feeds their input to the core.
type Server struct {
	addr   string
	core   Core
	echoIO bool

	events chan event

	mu       sync.RWMutex
	listener net.Listener
}

// NewServer creates a server. It does not listen until Run.
func NewServer(addr string, core Core, echoIO bool) *Server {
	return &Server{
		addr:   addr,
		core:   core,
		echoIO: echoIO,
		events: make(chan event),
	}
}

// Addr returns the bound listen address, or "" before Run.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run listens and serves until ctx is cancelled. It blocks; the calling
// goroutine becomes the single thread the core runs on.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return oops.Code("LISTEN_FAILED").With("addr", s.addr).Wrap(err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	slog.Info("telnet server started", "addr", listener.Addr())

	go func() {
		<-ctx.Done()
		if err := listener.Close(); err != nil {
			slog.Debug("error closing listener", "error", err)
		}
	}()

	go s.acceptLoop(ctx, listener)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-s.events:
			s.deliver(ctx, ev)
		}
	}
}

func (s *Server) deliver(ctx context.Context, ev event) {
	switch ev.kind {
	case eventConnect:
		s.core.OnConnection(ev.link)
	case eventLine:
		if s.echoIO {
			slog.Debug("recv", "conn_id", ev.link.ID(), "text", ev.line)
		}
		s.core.OnText(ctx, ev.link, ev.line)
	case eventDisconnect:
		s.core.OnDisconnection(ctx, ev.link)
	}
}

func (s *Server) acceptLoop(ctx context.Context, listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Error("accept failed", "error", err)
				continue
			}
		}
		link := newLink(conn, s.echoIO)
		slog.Info("connection opened", "conn_id", link.ID(), "remote", conn.RemoteAddr())
		go s.readLoop(ctx, link)
	}
}

// readLoop reads lines from one connection and forwards them as events. It
// owns the connect and disconnect events for its link, so the core always
// sees connect, lines, disconnect in order.
func (s *Server) readLoop(ctx context.Context, link *Link) {
	observability.Connections.Inc()
	defer observability.Connections.Dec()
	defer link.Kill()

	if !s.post(ctx, event{kind: eventConnect, link: link}) {
		return
	}
	defer s.post(ctx, event{kind: eventDisconnect, link: link})

	reader := bufio.NewReader(link.conn)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				slog.Debug("read failed", "conn_id", link.ID(), "error", err)
			}
			return
		}
		if !s.post(ctx, event{kind: eventLine, link: link, line: sanitize(raw)}) {
			return
		}
	}
}

func (s *Server) post(ctx context.Context, ev event) bool {
	select {
	case <-ctx.Done():
		return false
	case s.events <- ev:
		return true
	}
}

// sanitize strips the line terminator and any telnet IAC negotiation bytes.
// Trailing whitespace other than the terminator is preserved so prefix
// commands see their argument text untouched.
func sanitize(raw string) string {
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")

	const iac = 0xff
	if !strings.ContainsRune(raw, iac) {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != iac {
			b.WriteByte(raw[i])
			continue
		}
		// IAC IAC is an escaped 0xff data byte; anything else introduces a
		// 2- or 3-byte negotiation sequence we discard.
		if i+1 < len(raw) {
			i++
			if raw[i] == iac {
				b.WriteByte(iac)
			} else if raw[i] >= 0xfb && i+1 < len(raw) {
				i++
			}
		}
	}
	return b.String()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package telnet

import (
	"log/slog"
	"net"
	"sync"

	"github.com/oklog/ulid/v2"
)

// outboundBuffer is how many pending writes a link tolerates before it is
// considered dead and killed.
const outboundBuffer = 256

// Link is one telnet connection as seen by the core. Write is non-blocking:
// output is queued to a writer goroutine, and a client that stops draining
// its queue is disconnected rather than allowed to stall the core.
type Link struct {
	id   ulid.ULID
	conn net.Conn

	out  chan string
	once sync.Once
	done chan struct{}

	echoIO bool
}

func newLink(conn net.Conn, echoIO bool) *Link {
	l := &Link{
		id:     ulid.Make(),
		conn:   conn,
		out:    make(chan string, outboundBuffer),
		done:   make(chan struct{}),
		echoIO: echoIO,
	}
	go l.writeLoop()
	return l
}

// ID returns the connection's identifier for logging.
func (l *Link) ID() string {
	return l.id.String()
}

// Write queues text for delivery. The text is sent verbatim; callers append
// their own line terminators.
func (l *Link) Write(text string) {
	select {
	case <-l.done:
	case l.out <- text:
	default:
		slog.Warn("outbound queue full, killing link", "conn_id", l.ID())
		l.Kill()
	}
}

// Kill forcibly closes the connection. The read loop observes the closed
// socket and reports the disconnect through the usual path.
func (l *Link) Kill() {
	l.once.Do(func() {
		close(l.done)
		if err := l.conn.Close(); err != nil {
			slog.Debug("error closing connection", "conn_id", l.ID(), "error", err)
		}
	})
}

func (l *Link) writeLoop() {
	for {
		select {
		case <-l.done:
			return
		case text := <-l.out:
			if l.echoIO {
				slog.Debug("send", "conn_id", l.ID(), "text", text)
			}
			if _, err := l.conn.Write([]byte(text)); err != nil {
				slog.Debug("write failed", "conn_id", l.ID(), "error", err)
				l.Kill()
				return
			}
		}
	}
}

package ipc

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// FailureMarker is the leading response byte a client checks to
// distinguish an error from a success payload (bspc.c's
// `rsp[0] == FAILURE_MESSAGE[0]`). The exact byte is a Go-side
// convention — FAILURE_MESSAGE's literal value lived in common.h,
// which wasn't in the retrieval pack — chosen as a control byte that
// can never appear in a legitimate response line.
const FailureMarker = 0x01

// maxMessageSize bounds one request read, matching bspc.c's MAX_ARGS /
// growable-buffer intent without unbounded allocation on a hostile
// client.
const maxMessageSize = 1 << 20

// subscribeToken is the one reserved command that upgrades a
// connection into a push stream instead of a single request/response.
const subscribeToken = "subscribe"

// Handler processes one parsed request and returns the success
// payload to send back, or an error to report via FailureMarker.
type Handler func(tokens []string) (string, error)

// Server listens on a single Unix-domain socket and serves both the
// request/response protocol and the subscribe push stream.
type Server struct {
	ln     net.Listener
	path   string
	status *Status
}

// Listen binds the command socket at path, removing any stale socket
// file left by a prior, uncleanly-terminated run first. The socket is
// created owner-only (0600): the umask is tightened around the bind
// call rather than chmod'd afterward, so there is no window between
// creation and permission-setting during which another local user
// could connect.
func Listen(path string, status *Status) (*Server, error) {
	_ = os.Remove(path)
	old := unix.Umask(0177)
	ln, err := net.Listen("unix", path)
	unix.Umask(old)
	if err != nil {
		return nil, err
	}
	return &Server{ln: ln, path: path, status: status}, nil
}

// Addr returns the bound socket path.
func (s *Server) Addr() string { return s.path }

// Close stops accepting connections and removes the socket file.
func (s *Server) Close() error {
	err := s.ln.Close()
	_ = os.Remove(s.path)
	return err
}

// Serve accepts connections until ctx is done or the listener is
// closed, dispatching each to handle on its own goroutine.
func (s *Server) Serve(ctx context.Context, handle Handler) error {
	go func() {
		<-ctx.Done()
		_ = s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && !netErr.Timeout() {
				return err
			}
			continue
		}
		go s.handleConn(ctx, conn, handle)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn, handle Handler) {
	defer conn.Close()

	buf := make([]byte, maxMessageSize)
	n, err := conn.Read(buf)
	if err != nil {
		return
	}

	tokens := splitTokens(buf[:n])
	if len(tokens) == 0 {
		return
	}

	if tokens[0] == subscribeToken {
		s.serveSubscription(ctx, conn)
		return
	}

	resp, err := handle(tokens)
	if err != nil {
		out := make([]byte, 0, len(err.Error())+1)
		out = append(out, FailureMarker)
		out = append(out, []byte(err.Error())...)
		if _, werr := conn.Write(out); werr != nil {
			logrus.WithError(werr).Debug("ipc: write failure response")
		}
		return
	}
	if _, werr := conn.Write([]byte(resp)); werr != nil {
		logrus.WithError(werr).Debug("ipc: write success response")
	}
}

func (s *Server) serveSubscription(ctx context.Context, conn net.Conn) {
	ch, cancel := s.status.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if _, err := conn.Write([]byte(line)); err != nil {
				return
			}
		}
	}
}

// splitTokens breaks a request on NUL bytes, dropping only the
// trailing empty token produced by the final terminator bspc.c always
// appends — an interior empty token (an intentionally empty argument)
// is preserved.
func splitTokens(b []byte) []string {
	b = bytes.TrimRight(b, "\x00")
	if len(b) == 0 {
		return nil
	}
	parts := bytes.Split(b, []byte{0})
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

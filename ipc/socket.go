// Package ipc implements the Unix-domain command socket: a
// null-separated-token request/response protocol plus a broadcast
// status stream, matching original_source/src/bspc.c's client-side
// half of the wire format.
package ipc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RuntimeDirEnv is the environment variable bspc.c's mktempfifo (and,
// by the same convention, the socket path) consults before falling
// back to /tmp.
const RuntimeDirEnv = "XDG_RUNTIME_DIR"

// SocketEnvVar lets a client or daemon pin the socket path directly,
// bypassing DISPLAY-based derivation — bspc.c's SOCKET_ENV_VAR lookup,
// named here since common.h (which defined the literal) wasn't in the
// retrieval pack.
const SocketEnvVar = "BSPWM1_SOCKET"

// SocketPath resolves the command-socket path: an explicit override
// first, then $BSPWM1_SOCKET, then the DISPLAY-derived default of
// $XDG_RUNTIME_DIR/bspwm1_<host>_<display>_<screen>-socket (falling
// back to /tmp), mirroring bspc.c's sock_address.sun_path construction
// from SOCKET_PATH_TPL.
func SocketPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if p := os.Getenv(SocketEnvVar); p != "" {
		return p, nil
	}

	host, display, screen, err := parseDisplay(os.Getenv("DISPLAY"))
	if err != nil {
		return "", fmt.Errorf("resolve socket path: %w", err)
	}

	dir := os.Getenv(RuntimeDirEnv)
	if dir == "" {
		dir = "/tmp"
	}
	name := fmt.Sprintf("bspwm1_%s_%d_%d-socket", host, display, screen)
	return filepath.Join(dir, name), nil
}

// parseDisplay splits an X11 DISPLAY string ("[host]:display[.screen]")
// into its three components, defaulting the screen to 0 and the host
// to empty (local display) the way xcb_parse_display does.
func parseDisplay(disp string) (host string, display, screen int, err error) {
	if disp == "" {
		disp = ":0"
	}

	colon := strings.LastIndex(disp, ":")
	if colon < 0 {
		return "", 0, 0, fmt.Errorf("invalid DISPLAY %q: missing ':'", disp)
	}
	host = disp[:colon]
	rest := disp[colon+1:]

	dot := strings.IndexByte(rest, '.')
	displayPart := rest
	screenPart := "0"
	if dot >= 0 {
		displayPart = rest[:dot]
		screenPart = rest[dot+1:]
	}

	display, err = strconv.Atoi(displayPart)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid DISPLAY %q: bad display number", disp)
	}
	screen, err = strconv.Atoi(screenPart)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid DISPLAY %q: bad screen number", disp)
	}
	return host, display, screen, nil
}

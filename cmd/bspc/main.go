// Command bspc is the command-socket client: it joins argv into a
// null-separated token message, sends it to the daemon's Unix socket,
// and streams the response back — an error response (the protocol's
// failure-marker byte) exits non-zero with the message on stderr.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/rotkonetworks/bspwm1/ipc"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "No arguments given.")
		return 1
	}

	var socketOverride string
	for i, a := range args {
		if a == "--socket" && i+1 < len(args) {
			socketOverride = args[i+1]
		}
	}

	path, err := ipc.SocketPath(socketOverride)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if args[0] == "--print-socket-path" {
		fmt.Println(path)
		return 0
	}

	conn, err := net.Dial("unix", path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to the socket: %v\n", err)
		return 1
	}
	defer conn.Close()

	msg := encodeTokens(args)
	if _, err := conn.Write(msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to send the data: %v\n", err)
		return 1
	}

	return readResponse(conn)
}

// encodeTokens joins args as null-separated tokens terminated by a
// final null, matching bspc.c's send loop exactly.
func encodeTokens(args []string) []byte {
	var out []byte
	for _, a := range args {
		out = append(out, a...)
		out = append(out, 0)
	}
	return out
}

func readResponse(conn net.Conn) int {
	buf := make([]byte, 65536)
	status := 0
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if len(chunk) > 0 && chunk[0] == ipc.FailureMarker {
				status = 1
				fmt.Fprint(os.Stderr, string(chunk[1:]))
			} else {
				fmt.Fprint(os.Stdout, string(chunk))
			}
		}
		if err != nil {
			break
		}
	}
	return status
}

package wm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os/exec"
	"strings"
)

// Transport carries one request to the compositor and returns its raw reply.
// When asJSON is set the compositor is asked for JSON output.
type Transport interface {
	Request(ctx context.Context, asJSON bool, command ...string) ([]byte, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, asJSON bool, command ...string) ([]byte, error)

func (f TransportFunc) Request(ctx context.Context, asJSON bool, command ...string) ([]byte, error) {
	return f(ctx, asJSON, command...)
}

// HyprctlTransport runs the hyprctl binary once per request.
type HyprctlTransport struct {
	Path string
}

func (t HyprctlTransport) Request(ctx context.Context, asJSON bool, command ...string) ([]byte, error) {
	path := t.Path
	if path == "" {
		path = "hyprctl"
	}

	args := append([]string{}, command...)
	if asJSON {
		args = append(args, "-j")
	}

	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return output, fmt.Errorf("hyprctl %s: %w (stderr: %s)", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// SocketTransport talks to the compositor's request socket directly.
type SocketTransport struct {
	Path string
}

func (t SocketTransport) Request(ctx context.Context, asJSON bool, command ...string) ([]byte, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", t.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to compositor socket: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set socket deadline: %w", err)
		}
	}

	flags := ""
	if asJSON {
		flags = "j"
	}
	req := flags + "/" + strings.Join(command, " ")
	if _, err := io.WriteString(conn, req); err != nil {
		return nil, fmt.Errorf("failed to send request %q: %w", req, err)
	}

	reply, err := io.ReadAll(conn)
	if err != nil && !errors.Is(err, io.EOF) {
		return reply, fmt.Errorf("failed to read reply to %q: %w", req, err)
	}
	return reply, nil
}

package wm

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"winterreise/pkg/config"
	"winterreise/pkg/core"
)

// NewCompositor creates the compositor backend for the running session
func NewCompositor(log core.Logger, transport config.Transport, timeout time.Duration) (Compositor, error) {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	log.Info("Session type detected", "session", sessionType)

	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return nil, fmt.Errorf("unsupported compositor: only Hyprland is supported (HYPRLAND_INSTANCE_SIGNATURE is not set)")
	}

	var t Transport
	switch transport {
	case config.TransportSocket:
		path, err := socketPath(sig)
		if err != nil {
			return nil, err
		}
		log.Debug("Using compositor socket", "path", path)
		t = SocketTransport{Path: path}
	default:
		path, err := exec.LookPath("hyprctl")
		if err != nil {
			log.Error("hyprctl not found in PATH", err)
			return nil, fmt.Errorf("hyprctl not found in PATH: %w", err)
		}
		log.Debug("Found hyprctl", "path", path)
		t = HyprctlTransport{Path: path}
	}

	h := NewHyprland(log, t, timeout)
	log.Info("Compositor initialized", "name", h.Name(), "transport", string(transport), "timeout", timeout.String())
	return h, nil
}

// socketPath locates the request socket; Hyprland moved it from /tmp/hypr
// to $XDG_RUNTIME_DIR/hypr in 0.40.
func socketPath(sig string) (string, error) {
	var candidates []string
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "hypr", sig, ".socket.sock"))
	}
	candidates = append(candidates, filepath.Join("/tmp", "hypr", sig, ".socket.sock"))

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("compositor socket not found, tried %v", candidates)
}

package wm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"winterreise/pkg/core"
)

type Hyprland struct {
	log       core.Logger
	transport Transport
	timeout   time.Duration
}

type hyprMonitor struct {
	Width   *uint32 `json:"width"`
	Height  *uint32 `json:"height"`
	Focused bool    `json:"focused"`
}

type hyprClient struct {
	Address   *string `json:"address"`
	Workspace *struct {
		ID *int64 `json:"id"`
	} `json:"workspace"`
	Title *string `json:"title"`
	Class *string `json:"class"`
}

type hyprWorkspace struct {
	ID *int64 `json:"id"`
}

type hyprActiveWindow struct {
	Address *string `json:"address"`
}

// NewHyprland creates a Hyprland backend. A zero timeout disables the per-call limit.
func NewHyprland(log core.Logger, transport Transport, timeout time.Duration) *Hyprland {
	return &Hyprland{log: log, transport: transport, timeout: timeout}
}

func (h *Hyprland) Name() string {
	return "Hyprland"
}

// Fetch runs the four queries. Monitors and clients are mandatory; the
// active workspace and active window fall back to 0.
func (h *Hyprland) Fetch(ctx context.Context) (Snapshot, error) {
	geometry, err := h.primaryMonitor(ctx)
	if err != nil {
		h.log.Error("Monitor query failed", err)
		return Snapshot{}, fmt.Errorf("%w: monitors: %w", ErrMandatoryQuery, err)
	}

	windows, err := h.clients(ctx)
	if err != nil {
		h.log.Error("Client query failed", err)
		return Snapshot{}, fmt.Errorf("%w: clients: %w", ErrMandatoryQuery, err)
	}

	desktop, err := h.activeWorkspace(ctx)
	if err != nil {
		h.log.Warn("Active workspace unavailable, using 0", "error", err.Error())
		desktop = 0
	}

	active, err := h.activeWindow(ctx)
	if err != nil {
		h.log.Warn("Active window unavailable, using 0", "error", err.Error())
		active = 0
	}

	h.log.Debug("Fetched compositor state",
		"windows", len(windows),
		"width", geometry.Width,
		"height", geometry.Height,
		"desktop", desktop,
		"active", fmt.Sprintf("0x%x", active))

	return Snapshot{
		Windows:  windows,
		Geometry: geometry,
		Desktop:  desktop,
		Active:   active,
	}, nil
}

func (h *Hyprland) FocusWindow(ctx context.Context, id uint64) error {
	address := fmt.Sprintf("address:0x%x", id)
	h.log.Debug("Focusing window", "address", address)

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	output, err := h.transport.Request(ctx, false, "dispatch", "focuswindow", address)
	if err != nil {
		h.log.Error("Failed to focus window", err, "output", string(output))
		return fmt.Errorf("failed to focus window: %w", err)
	}
	if reply := strings.TrimSpace(string(output)); reply != "ok" {
		h.log.Error("Compositor refused focus", nil, "reply", reply)
		return fmt.Errorf("failed to focus window: compositor replied %q", reply)
	}
	return nil
}

func (h *Hyprland) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

// query runs a JSON request and decodes the reply into v.
func (h *Hyprland) query(ctx context.Context, v interface{}, command string) error {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	output, err := h.transport.Request(ctx, true, command)
	if err != nil {
		return err
	}
	if !utf8.Valid(output) {
		return fmt.Errorf("%s: reply is not valid UTF-8", command)
	}
	if err := json.Unmarshal(output, v); err != nil {
		return fmt.Errorf("%s: failed to parse reply: %w", command, err)
	}
	return nil
}

func (h *Hyprland) primaryMonitor(ctx context.Context) (Geometry, error) {
	var monitors []hyprMonitor
	if err := h.query(ctx, &monitors, "monitors"); err != nil {
		return Geometry{}, err
	}
	if len(monitors) == 0 {
		return Geometry{}, errors.New("no monitors reported")
	}

	primary := monitors[0]
	for _, m := range monitors {
		if m.Focused {
			primary = m
			break
		}
	}
	if primary.Width == nil || primary.Height == nil {
		return Geometry{}, errors.New("monitor is missing width or height")
	}
	return Geometry{Width: *primary.Width, Height: *primary.Height}, nil
}

func (h *Hyprland) clients(ctx context.Context) ([]Window, error) {
	var raw []json.RawMessage
	if err := h.query(ctx, &raw, "clients"); err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(raw))
	for i, r := range raw {
		w, err := parseClient(r)
		if err != nil {
			h.log.Debug("Skipping client record", "index", i, "reason", err.Error())
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func parseClient(raw json.RawMessage) (Window, error) {
	var c hyprClient
	if err := json.Unmarshal(raw, &c); err != nil {
		return Window{}, err
	}
	if c.Address == nil || c.Workspace == nil || c.Workspace.ID == nil || c.Title == nil || c.Class == nil {
		return Window{}, errors.New("missing field")
	}

	id, err := ParseHexID(*c.Address)
	if err != nil {
		return Window{}, err
	}
	desktop, err := toDesktop(*c.Workspace.ID)
	if err != nil {
		return Window{}, err
	}

	return Window{ID: id, Desktop: desktop, Title: *c.Title, Class: *c.Class}, nil
}

func (h *Hyprland) activeWorkspace(ctx context.Context) (uint32, error) {
	var ws hyprWorkspace
	if err := h.query(ctx, &ws, "activeworkspace"); err != nil {
		return 0, err
	}
	if ws.ID == nil {
		return 0, errors.New("activeworkspace: missing id")
	}
	return toDesktop(*ws.ID)
}

func (h *Hyprland) activeWindow(ctx context.Context) (uint64, error) {
	var w hyprActiveWindow
	if err := h.query(ctx, &w, "activewindow"); err != nil {
		return 0, err
	}
	if w.Address == nil {
		return 0, errors.New("activewindow: missing address")
	}
	return ParseHexID(*w.Address)
}

// ParseHexID parses a hexadecimal window id with an optional 0x prefix.
func ParseHexID(s string) (uint64, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if digits == "" {
		return 0, fmt.Errorf("empty window id %q", s)
	}
	id, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return id, nil
}

func toDesktop(id int64) (uint32, error) {
	if id < 0 || id > math.MaxUint32 {
		return 0, fmt.Errorf("workspace id %d out of range", id)
	}
	return uint32(id), nil
}

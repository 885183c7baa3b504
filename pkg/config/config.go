package config

import (
	"time"

	"winterreise/pkg/core"
)

// TmpfilePolicy selects where the previous-window file lives.
type TmpfilePolicy int

const (
	InXdgRuntime TmpfilePolicy = iota
	InTmp
	Custom
)

func (p TmpfilePolicy) String() string {
	switch p {
	case InXdgRuntime:
		return "in_xdg_runtime"
	case InTmp:
		return "in_tmp"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Transport names the channel used to talk to the compositor.
type Transport string

const (
	TransportHyprctl Transport = "hyprctl"
	TransportSocket  Transport = "socket"
)

const DefaultQueryTimeout = 2 * time.Second

// BlacklistItem excludes every window of one class.
type BlacklistItem struct {
	Class string
}

// Blacklist is the set of excluded window classes.
type Blacklist []BlacklistItem

// Contains reports whether class exactly matches an entry.
func (b Blacklist) Contains(class string) bool {
	for _, item := range b {
		if item.Class == class {
			return true
		}
	}
	return false
}

// Config holds the application configuration. Fields are private so the
// configuration stays immutable once loaded.
type Config struct {
	tmpfile      TmpfilePolicy
	customPath   string
	spacing      int
	maxWidth     int
	blacklist    Blacklist
	queryTimeout time.Duration
	transport    Transport

	log core.Logger
}

// New creates a new Config instance with the provided logger.
func New(log core.Logger) *Config {
	return &Config{
		log:          log,
		queryTimeout: DefaultQueryTimeout,
		transport:    TransportHyprctl,
	}
}

// GetTmpfilePolicy returns the configured persistence policy.
func (c *Config) GetTmpfilePolicy() TmpfilePolicy {
	return c.tmpfile
}

// GetSpacing returns the space between buttons in pixels.
func (c *Config) GetSpacing() int {
	return c.spacing
}

// GetMaxWidth returns the title width limit in characters.
func (c *Config) GetMaxWidth() int {
	return c.maxWidth
}

// GetBlacklist returns a copy of the class blacklist.
func (c *Config) GetBlacklist() Blacklist {
	return append(Blacklist{}, c.blacklist...)
}

// GetQueryTimeout returns the timeout applied to each compositor call.
func (c *Config) GetQueryTimeout() time.Duration {
	return c.queryTimeout
}

// GetTransport returns the compositor transport.
func (c *Config) GetTransport() Transport {
	return c.transport
}

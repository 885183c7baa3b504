package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"time"

	"winterreise/pkg/core"
)

// ErrInvalidConfig marks content that parsed but does not describe a usable configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

type fileConfig struct {
	XMLName xml.Name `xml:"configuration"`
	Tmpfile struct {
		InXdgRuntime *struct{} `xml:"in_xdg_runtime"`
		InTmp        *struct{} `xml:"in_tmp"`
		Custom       *string   `xml:"custom"`
	} `xml:"tmpfile"`
	Spacing        int    `xml:"spaceBetweenButtons"`
	MaxWidth       *int   `xml:"maxwidth"`
	QueryTimeoutMs *int   `xml:"queryTimeoutMs"`
	Transport      string `xml:"transport"`
	Blacklist      struct {
		Items []struct {
			Class     string `xml:"class"`
			ClassAttr string `xml:"class,attr"`
		} `xml:"item"`
	} `xml:"blacklist"`
}

// Parse decodes an XML configuration document.
func Parse(data []byte, log core.Logger) (*Config, error) {
	var temp fileConfig
	if err := xml.Unmarshal(data, &temp); err != nil {
		return nil, fmt.Errorf("failed to parse config XML: %w", err)
	}

	c := New(log)

	set := 0
	if temp.Tmpfile.InXdgRuntime != nil {
		c.tmpfile = InXdgRuntime
		set++
	}
	if temp.Tmpfile.InTmp != nil {
		c.tmpfile = InTmp
		set++
	}
	if temp.Tmpfile.Custom != nil {
		c.tmpfile = Custom
		c.customPath = *temp.Tmpfile.Custom
		if c.customPath == "" {
			return nil, fmt.Errorf("%w: tmpfile custom path is empty", ErrInvalidConfig)
		}
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: tmpfile needs exactly one of in_xdg_runtime, in_tmp, custom", ErrInvalidConfig)
	}

	if temp.MaxWidth == nil {
		return nil, fmt.Errorf("%w: maxwidth is required", ErrInvalidConfig)
	}
	if *temp.MaxWidth < 0 {
		return nil, fmt.Errorf("%w: maxwidth must not be negative", ErrInvalidConfig)
	}
	c.maxWidth = *temp.MaxWidth
	c.spacing = temp.Spacing

	if temp.QueryTimeoutMs != nil {
		if *temp.QueryTimeoutMs <= 0 {
			return nil, fmt.Errorf("%w: queryTimeoutMs must be positive", ErrInvalidConfig)
		}
		c.queryTimeout = time.Duration(*temp.QueryTimeoutMs) * time.Millisecond
	}

	switch Transport(temp.Transport) {
	case "":
	case TransportHyprctl, TransportSocket:
		c.transport = Transport(temp.Transport)
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, temp.Transport)
	}

	for _, item := range temp.Blacklist.Items {
		class := item.Class
		if class == "" {
			class = item.ClassAttr
		}
		c.blacklist = append(c.blacklist, BlacklistItem{Class: class})
	}

	return c, nil
}

// LoadFromFile loads the configuration from an XML file.
func LoadFromFile(path string, log core.Logger) (*Config, error) {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	c, err := Parse(data, log)
	if err != nil {
		log.Error("Failed to parse config file", err, "path", path)
		return nil, err
	}

	log.Debug("Config parsed successfully",
		"tmpfile", c.tmpfile.String(),
		"maxwidth", c.maxWidth,
		"blacklist_count", len(c.blacklist))
	return c, nil
}

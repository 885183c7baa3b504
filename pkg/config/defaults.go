package config

import (
	_ "embed"

	"winterreise/pkg/core"
)

//go:embed default_config.xml
var defaultConfigXML []byte

// DefaultConfigXML returns the document written on first run.
func DefaultConfigXML() []byte {
	return append([]byte{}, defaultConfigXML...)
}

// DefaultConfig creates a default configuration.
func DefaultConfig(log core.Logger) (*Config, error) {
	log.Debug("Creating default configuration")
	return Parse(defaultConfigXML, log)
}

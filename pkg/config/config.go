// Package config reads the chat service configuration from YAML, with
// environment variables expanded before parsing.
package config

import (
	"io"
	"os"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	stylist "github.com/mutablelogic/go-stylist"
	client "github.com/mutablelogic/go-stylist/pkg/mcp/client"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Config struct {
	Backend      string   `yaml:"backend,omitempty"`       // openai or gemini
	Model        string   `yaml:"model,omitempty"`         // Model name for the backend
	SystemPrompt string   `yaml:"system_prompt,omitempty"` // Replaces the default prompt
	MaxTurns     uint     `yaml:"max_turns,omitempty"`     // Model turns per request
	Servers      []Server `yaml:"servers"`                 // MCP tool servers
}

// Server is a named MCP server
type Server struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Default returns the configuration used when no file is given, with the
// fashion and weather servers on their default ports
func Default() *Config {
	return &Config{
		Servers: []Server{
			{Name: "fashion", URL: "http://localhost:8002/sse"},
			{Name: "weather", URL: "http://localhost:8003/sse"},
		},
	}
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Load reads a configuration file
func Load(path string) (*Config, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Read(r)
}

// Read parses a configuration. ${VAR} and $VAR are replaced from the
// environment before parsing.
func Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
		return nil, stylist.ErrBadParameter.Withf("config: %v", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	// Return success
	return &config, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoints returns the MCP endpoints for the configured servers
func (c *Config) Endpoints() ([]client.Endpoint, error) {
	result := make([]client.Endpoint, 0, len(c.Servers))
	for _, server := range c.Servers {
		endpoint, err := client.NewEndpoint(server.Name, server.URL)
		if err != nil {
			return nil, err
		}
		result = append(result, endpoint)
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Config) validate() error {
	switch c.Backend {
	case "", "openai", "gemini":
		// OK
	default:
		return stylist.ErrBadParameter.Withf("config: unsupported backend %q", c.Backend)
	}
	names := make(map[string]bool, len(c.Servers))
	for _, server := range c.Servers {
		if !types.IsIdentifier(server.Name) {
			return stylist.ErrBadParameter.Withf("config: invalid server name %q", server.Name)
		} else if names[server.Name] {
			return stylist.ErrBadParameter.Withf("config: duplicate server %q", server.Name)
		} else if server.URL == "" {
			return stylist.ErrBadParameter.Withf("config: server %q has no url", server.Name)
		}
		names[server.Name] = true
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Config) String() string {
	return types.Stringify(c)
}

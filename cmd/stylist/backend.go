package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	stylist "github.com/mutablelogic/go-stylist"
	config "github.com/mutablelogic/go-stylist/pkg/config"
	manager "github.com/mutablelogic/go-stylist/pkg/manager"
	mcpclient "github.com/mutablelogic/go-stylist/pkg/mcp/client"
	gemini "github.com/mutablelogic/go-stylist/pkg/provider/gemini"
	openai "github.com/mutablelogic/go-stylist/pkg/provider/openai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Backend holds the flags which select the model backend and the MCP
// servers, for commands which answer chat requests
type Backend struct {
	Config    string   `name:"config" short:"c" env:"STYLIST_CONFIG" help:"YAML configuration file" type:"existingfile" optional:""`
	Backend   string   `name:"backend" env:"STYLIST_BACKEND" help:"Model backend (openai, gemini)"`
	Model     string   `name:"model" env:"STYLIST_MODEL" help:"Model name for the backend"`
	MaxTurns  uint     `name:"max-turns" help:"Model turns allowed per request" default:"0"`
	Servers   []string `name:"server" help:"MCP server as name=url, may be repeated"`
	OpenAIKey string   `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	GeminiKey string   `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Google Gemini API key"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Manager returns a chat manager for the backend, configured from the
// configuration file and then the command-line flags
func (cmd *Backend) Manager(ctx *Globals, opts ...manager.Opt) (*manager.Manager, error) {
	cfg, err := cmd.config()
	if err != nil {
		return nil, err
	}

	// Model backend
	backend, err := cmd.backend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// MCP servers
	endpoints, err := cfg.Endpoints()
	if err != nil {
		return nil, err
	}

	// Manager options
	opts = append([]manager.Opt{
		manager.WithLogger(ctx.logger),
		manager.WithTracer(ctx.tracer),
		manager.WithEndpoints(endpoints...),
	}, opts...)
	if cfg.SystemPrompt != "" {
		opts = append(opts, manager.WithSystemPrompt(cfg.SystemPrompt))
	}
	if cfg.MaxTurns > 0 {
		opts = append(opts, manager.WithMaxTurns(cfg.MaxTurns))
	}

	// Return the manager
	return manager.NewManager(backend, opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// config returns the configuration file, or the default configuration,
// with flags applied on top
func (cmd *Backend) config() (*config.Config, error) {
	cfg := config.Default()
	if cmd.Config != "" {
		if c, err := config.Load(cmd.Config); err != nil {
			return nil, err
		} else {
			cfg = c
		}
	}
	if cmd.Backend != "" {
		cfg.Backend = cmd.Backend
	}
	if cmd.Model != "" {
		cfg.Model = cmd.Model
	}
	if cmd.MaxTurns > 0 {
		cfg.MaxTurns = cmd.MaxTurns
	}

	// Servers on the command line replace those in the file
	if len(cmd.Servers) > 0 {
		cfg.Servers = nil
		for _, server := range cmd.Servers {
			name, url, ok := strings.Cut(server, "=")
			if !ok {
				return nil, stylist.ErrBadParameter.Withf("server %q: expected name=url", server)
			}
			cfg.Servers = append(cfg.Servers, config.Server{Name: strings.TrimSpace(name), URL: strings.TrimSpace(url)})
		}
	}
	return cfg, nil
}

// backend returns the model backend named in the configuration. When no
// backend is named, the first one with an API key is used.
func (cmd *Backend) backend(ctx *Globals, cfg *config.Config) (stylist.ModelBackend, error) {
	name := cfg.Backend
	if name == "" {
		switch {
		case cmd.OpenAIKey != "":
			name = "openai"
		case cmd.GeminiKey != "":
			name = "gemini"
		default:
			return nil, fmt.Errorf("no API keys configured. Set --openai-api-key or --gemini-api-key (or use environment variables)")
		}
	}

	switch name {
	case "openai":
		opts := []openai.Opt{}
		if ctx.HTTP.Timeout > 0 {
			opts = append(opts, openai.WithHTTPClient(&http.Client{Timeout: ctx.HTTP.Timeout}))
		}
		if backend, err := openai.New(cmd.OpenAIKey, cfg.Model, opts...); err != nil {
			return nil, err
		} else {
			return backend, nil
		}
	case "gemini":
		if backend, err := gemini.New(cmd.GeminiKey, cfg.Model, ctx.clientOpts()...); err != nil {
			return nil, err
		} else {
			return backend, nil
		}
	default:
		return nil, stylist.ErrBadParameter.Withf("unsupported backend %q", name)
	}
}

// clientOpts returns the options for REST clients, from the global flags
func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	if g.HTTP.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.HTTP.Timeout))
	}
	return opts
}

// mcpClientOpts returns the options for connecting to MCP servers
func (g *Globals) mcpClientOpts() []mcpclient.Opt {
	return []mcpclient.Opt{
		mcpclient.WithLogger(g.logger),
		mcpclient.WithTracer(g.tracer),
	}
}

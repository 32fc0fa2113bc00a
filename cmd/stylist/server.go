package main

import (
	"crypto/tls"
	"fmt"
	"os"

	// Packages
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	fashion "github.com/mutablelogic/go-stylist/pkg/fashion"
	httphandler "github.com/mutablelogic/go-stylist/pkg/httphandler"
	kma "github.com/mutablelogic/go-stylist/pkg/kma"
	manager "github.com/mutablelogic/go-stylist/pkg/manager"
	mcpserver "github.com/mutablelogic/go-stylist/pkg/mcp/server"
	tool "github.com/mutablelogic/go-stylist/pkg/tool"
	version "github.com/mutablelogic/go-stylist/pkg/version"
)

type ServerCommands struct {
	FashionServer FashionServer `cmd:"" name:"fashion" help:"Run the fashion MCP server." group:"SERVER"`
	WeatherServer WeatherServer `cmd:"" name:"weather" help:"Run the weather MCP server." group:"SERVER"`
	RunServer     RunServer     `cmd:"" name:"run" help:"Run the chat service." group:"SERVER"`
}

// MCP holds the listener options for an MCP server
type MCP struct {
	Addr  string `name:"addr" help:"Listen address"`
	Stdio bool   `name:"stdio" help:"Serve on standard input and output instead of HTTP"`
	TLS   `embed:"" prefix:"tls."`
}

// TLS server options
type TLS struct {
	ServerName string `name:"name" help:"TLS server name"`
	CertFile   string `name:"cert" help:"TLS certificate file"`
	KeyFile    string `name:"key" help:"TLS key file"`
}

type FashionServer struct {
	MCP
}

type WeatherServer struct {
	MCP
	ServiceKey string `name:"kma-key" env:"KMA_SERVICE_KEY,WEATHER_API_KEY" help:"Korea Meteorological Administration service key. Sample data is returned without it"`
}

type RunServer struct {
	Backend
	TLS `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultFashionAddr = ":8002"
	defaultWeatherAddr = ":8003"
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *FashionServer) Run(ctx *Globals) error {
	toolkit, err := tool.NewToolkit(fashion.NewTools()...)
	if err != nil {
		return err
	}
	return cmd.Serve(ctx, "fashion", toolkit, defaultFashionAddr)
}

func (cmd *WeatherServer) Run(ctx *Globals) error {
	tools, err := kma.NewTools(cmd.ServiceKey, ctx.clientOpts()...)
	if err != nil {
		return err
	}
	if cmd.ServiceKey == "" {
		ctx.logger.Warn("no service key, current weather is sample data")
	}
	toolkit, err := tool.NewToolkit(tools...)
	if err != nil {
		return err
	}
	return cmd.Serve(ctx, "weather", toolkit, defaultWeatherAddr)
}

func (cmd *RunServer) Run(ctx *Globals) error {
	manager, err := cmd.Manager(ctx)
	if err != nil {
		return err
	}
	return cmd.Serve(ctx, manager, version.Version())
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Serve runs an MCP server for a toolkit until the context is cancelled,
// on stdio or over HTTP with the SSE transport at /sse and the streamable
// transport at /mcp
func (cmd *MCP) Serve(ctx *Globals, name string, toolkit *tool.Toolkit, defaultAddr string) error {
	server, err := mcpserver.New(name, version.Version(), toolkit,
		mcpserver.WithLogger(ctx.logger),
		mcpserver.WithTracer(ctx.tracer),
	)
	if err != nil {
		return err
	}

	// Serve on stdio
	if cmd.Stdio {
		return server.RunStdio(ctx.ctx)
	}

	// Create the TLS config
	tlsConfig, err := cmd.TLS.TLSConfig()
	if err != nil {
		return err
	}

	// Create the server
	addr := cmd.Addr
	if addr == "" {
		addr = defaultAddr
	}
	httpserver, err := httpserver.New(addr, tlsConfig)
	if err != nil {
		return err
	}

	// Create the router with request logging
	router, err := httprouter.NewRouter(ctx.ctx, httpserver.Router(), "", ctx.HTTP.Origin, name, version.Version(), ctx.middleware(httpserver.URL().Host)...)
	if err != nil {
		return err
	} else if err := server.RegisterHandlers(router); err != nil {
		return err
	}

	// Run the server
	ctx.logger.Info("started", "server", name, "version", version.Version(), "addr", httpserver.Addr())
	if err := httpserver.Run(ctx.ctx); err != nil {
		return err
	}
	ctx.logger.Info("stopped", "server", name)
	return nil
}

// Serve runs the chat service until the context is cancelled
func (cmd *TLS) Serve(ctx *Globals, manager *manager.Manager, versionTag string) error {
	tlsConfig, err := cmd.TLSConfig()
	if err != nil {
		return err
	}

	// Create the server
	httpserver, err := httpserver.New(ctx.HTTP.Addr, tlsConfig)
	if err != nil {
		return err
	}

	// Create the HTTP router with request logging
	router, err := httprouter.NewRouter(ctx.ctx, httpserver.Router(), ctx.HTTP.Prefix, ctx.HTTP.Origin, "Stylist", versionTag, ctx.middleware(httpserver.URL().Host)...)
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(manager, router); err != nil {
		return err
	} else if err := router.RegisterCatchAll(ctx.HTTP.Prefix, false); err != nil {
		return err
	}

	// Run the server
	ctx.logger.Info("started", "server", ctx.execName, "version", versionTag, "addr", httpserver.Addr(), "backend", manager.Backend().Name())
	if err := httpserver.Run(ctx.ctx); err != nil {
		return err
	}
	ctx.logger.Info("stopped", "server", ctx.execName)
	return nil
}

// TLSConfig returns the TLS config, or nil if no certificate or key is set
func (cmd *TLS) TLSConfig() (*tls.Config, error) {
	if cmd.CertFile == "" && cmd.KeyFile == "" {
		return nil, nil
	}
	var pemData [][]byte
	if cmd.CertFile != "" {
		certData, err := os.ReadFile(cmd.CertFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read TLS certificate: %w", err)
		}
		pemData = append(pemData, certData)
	}
	if cmd.KeyFile != "" {
		keyData, err := os.ReadFile(cmd.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read TLS key: %w", err)
		}
		pemData = append(pemData, keyData)
	}
	tlsConfig, err := httpserver.TLSConfig(cmd.ServerName, false, pemData...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS config: %w", err)
	}
	return tlsConfig, nil
}

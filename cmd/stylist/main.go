package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	logger "github.com/mutablelogic/go-server/pkg/logger"
	serverotel "github.com/mutablelogic/go-server/pkg/otel"
	version "github.com/mutablelogic/go-stylist/pkg/version"
	gootel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
	term "golang.org/x/term"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" short:"v" help:"Enable verbose output"`
	LogJSON bool `name:"log-json" help:"Write logs as JSON"`

	// HTTP server and client options
	HTTP struct {
		Addr    string        `name:"addr" env:"STYLIST_ADDR" help:"Chat service address" default:"localhost:8004"`
		Prefix  string        `name:"prefix" help:"Path prefix for the chat service" default:"/api"`
		Origin  string        `name:"origin" help:"Cross-origin protection (CSRF) origin. Empty string for same-origin only, '*' to allow all origins" default:""`
		Timeout time.Duration `name:"timeout" help:"Client timeout" default:"0"`
	} `embed:"" prefix:"http."`

	// Tracing
	OTel struct {
		Endpoint string `name:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OpenTelemetry collector endpoint"`
		Name     string `name:"name" env:"OTEL_SERVICE_NAME" help:"OpenTelemetry service name" default:"${EXECUTABLE_NAME}"`
	} `embed:"" prefix:"otel."`

	// Private fields
	ctx      context.Context
	logger   *slog.Logger
	tracer   trace.Tracer
	execName string
}

type CLI struct {
	Globals
	ServerCommands
	ChatCommands
	ToolCommands
	VersionCommands
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	instrumentationName = "github.com/mutablelogic/go-stylist/cmd/stylist"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("AI fashion stylist with MCP tool servers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"EXECUTABLE_NAME": execName(),
			"VERSION":         version.Version(),
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Create a logger on stderr, so stdout is left for results
	var level slog.LevelVar
	level.Set(logLevel(cli.Debug, cli.Verbose))
	cli.Globals.logger = newLogger(os.Stderr, &level, cli.LogJSON || !term.IsTerminal(int(os.Stderr.Fd())))
	slog.SetDefault(cli.Globals.logger)

	// Set up tracing
	if cli.OTel.Endpoint != "" {
		shutdown, err := newTracerProvider(ctx, cli.OTel.Endpoint, cli.OTel.Name)
		cmd.FatalIfErrorf(err)
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				cli.Globals.logger.Warn("tracer shutdown", "error", err)
			}
		}()
	}
	cli.Globals.tracer = gootel.Tracer(instrumentationName)

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// middleware returns the HTTP middleware for servers, which logs each
// request and traces it
func (g *Globals) middleware(host string) []httprouter.HTTPMiddlewareFunc {
	return []httprouter.HTTPMiddlewareFunc{
		serverotel.HTTPHandlerFunc(host, g.logger),
	}
}

// logLevel returns warnings by default, with --verbose adding information
// and --debug adding debugging output
func logLevel(debug, verbose bool) slog.Level {
	switch {
	case debug:
		return logger.LevelDebug
	case verbose:
		return logger.LevelInfo
	default:
		return logger.LevelWarn
	}
}

// newLogger returns a coloured terminal logger, or a JSON logger when
// output is not a terminal
func newLogger(w io.Writer, level *slog.LevelVar, json bool) *slog.Logger {
	if json {
		return slog.New(logger.NewLevelHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logger.LevelTrace}), level))
	}
	return slog.New(logger.NewTermHandler(w, level))
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

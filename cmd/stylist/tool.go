package main

import (
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	types "github.com/mutablelogic/go-server/pkg/types"
	stylist "github.com/mutablelogic/go-stylist"
	mcpclient "github.com/mutablelogic/go-stylist/pkg/mcp/client"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	uitable "github.com/mutablelogic/go-stylist/pkg/ui/table"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List tools of the chat service or an MCP server." group:"TOOL"`
	CallTool  CallToolCommand  `cmd:"" name:"call" help:"Call a tool on an MCP server." group:"TOOL"`
}

type ListToolsCommand struct {
	Server string `name:"server" help:"MCP server URL, instead of the chat service" optional:""`
	Limit  *uint  `name:"limit" help:"Maximum number of tools to return" optional:""`
	Offset uint   `name:"offset" help:"Offset for pagination" default:"0"`
}

type CallToolCommand struct {
	Server string   `arg:"" name:"server" help:"MCP server URL"`
	Name   string   `arg:"" name:"name" help:"Tool name"`
	Args   []string `arg:"" name:"args" help:"Arguments as key=value" optional:""`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListToolsCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// List tools from an MCP server, or the chat service
	var response *schema.ListToolResponse
	req := schema.ListToolRequest{Limit: cmd.Limit, Offset: cmd.Offset}
	if cmd.Server != "" {
		registry, err := connect(ctx, cmd.Server)
		if err != nil {
			return err
		}
		defer registry.Close()
		response = registry.Descriptors().Page(req)
	} else {
		client, err := ctx.Client()
		if err != nil {
			return err
		}
		if response, err = client.ListTools(parent, req); err != nil {
			return err
		}
	}

	// Print
	if ctx.Debug {
		fmt.Println(response)
	} else {
		if len(response.Body) > 0 {
			fmt.Println(uitable.Render(schema.ToolTable(response.Body)))
		}
		fmt.Println(uitable.Summary(len(response.Body), int(response.Offset), int(response.Count)))
	}
	return nil
}

func (cmd *CallToolCommand) Run(ctx *Globals) (err error) {
	args, err := arguments(cmd.Args)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "CallToolCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// Connect to the server
	registry, err := connect(ctx, cmd.Server)
	if err != nil {
		return err
	}
	defer registry.Close()

	// Call the tool
	result, err := registry.Invoke(parent, cmd.Name, args)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(result)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// connect opens a session with a single MCP server, which is required to
// be reachable
func connect(ctx *Globals, url string) (*mcpclient.Registry, error) {
	endpoint, err := mcpclient.NewEndpoint("", url)
	if err != nil {
		return nil, err
	}
	registry, err := mcpclient.Connect(ctx.ctx, []mcpclient.Endpoint{endpoint}, ctx.mcpClientOpts()...)
	if err != nil {
		return nil, err
	}
	if len(registry.Servers()) == 0 {
		return nil, stylist.ErrServiceUnavailable.Withf("%s: unavailable", url)
	}
	return registry, nil
}

// arguments parses key=value pairs. Values which are valid JSON, such as
// numbers and booleans, are decoded and others are passed as strings.
func arguments(pairs []string) (map[string]any, error) {
	result := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, stylist.ErrBadParameter.Withf("argument %q: expected key=value", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		result[key] = v
	}
	return result, nil
}

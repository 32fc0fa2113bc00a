package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	types "github.com/mutablelogic/go-server/pkg/types"
	manager "github.com/mutablelogic/go-stylist/pkg/manager"
	orchestrator "github.com/mutablelogic/go-stylist/pkg/orchestrator"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	markdown "github.com/mutablelogic/go-stylist/pkg/ui/markdown"
	uitable "github.com/mutablelogic/go-stylist/pkg/ui/table"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCommands struct {
	Ask    AskCommand    `cmd:"" name:"ask" help:"Answer a question with a local backend and the MCP servers." group:"CHAT"`
	Chat   ChatCommand   `cmd:"" name:"chat" help:"Send a question to the chat service." group:"CHAT"`
	Health HealthCommand `cmd:"" name:"health" help:"Return the chat service status." group:"CHAT"`
}

type AskCommand struct {
	Backend
	Query string `arg:"" name:"query" help:"Question for the stylist"`
	Plain bool   `name:"plain" help:"Do not render markdown"`
}

type ChatCommand struct {
	Query    string `arg:"" name:"query" help:"Question for the stylist"`
	MaxTurns uint   `name:"max-turns" help:"Model turns allowed for the request" default:"0"`
	Plain    bool   `name:"plain" help:"Do not render markdown"`
}

type HealthCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	feedbackWidth = 120
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *AskCommand) Run(ctx *Globals) (err error) {
	r := markdown.New(cmd.Plain)

	// Report tool calls and results on stderr
	opts := []manager.Opt{}
	if ctx.Verbose {
		opts = append(opts, manager.WithOrchestratorOpts(orchestrator.WithFeedback(func(message *schema.Message) {
			for _, line := range feedback(message) {
				fmt.Fprintln(os.Stderr, r.Feedback(message.Role, line))
			}
		})))
	}
	manager, err := cmd.Manager(ctx, opts...)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "AskCommand",
		attribute.String("backend", manager.Backend().Name()),
	)
	defer func() { endSpan(err) }()

	// Answer the question
	response, err := manager.Chat(parent, schema.ChatRequest{Query: cmd.Query})
	if err != nil {
		return err
	}

	// Print
	if ctx.Debug {
		fmt.Println(response)
	} else {
		fmt.Println(r.Answer(response.Response))
	}
	return nil
}

func (cmd *ChatCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ChatCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// Send the question
	response, err := client.Chat(parent, schema.ChatRequest{Query: cmd.Query, MaxTurns: cmd.MaxTurns})
	if err != nil {
		return err
	}

	// Print
	if ctx.Debug {
		fmt.Println(response)
	} else {
		fmt.Println(markdown.New(cmd.Plain).Answer(response.Response))
	}
	return nil
}

func (cmd *HealthCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "HealthCommand")
	defer func() { endSpan(err) }()

	// Get the status
	response, err := client.Health(parent)
	if err != nil {
		return err
	}

	// Print
	fmt.Println(response)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// feedback returns lines describing the tool calls of an assistant message,
// or the result of a tool message
func feedback(message *schema.Message) []string {
	var result []string
	switch message.Role {
	case schema.RoleAssistant:
		for _, call := range message.ToolCalls {
			args, _ := json.Marshal(call.Arguments)
			result = append(result, call.Name+string(args))
		}
	case schema.RoleTool:
		result = append(result, uitable.Truncate(strings.TrimSpace(message.Text), feedbackWidth))
	}
	return result
}

package schema_test

import (
	"math"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func TestTranscript_New(t *testing.T) {
	assert := assert.New(t)

	transcript := schema.NewTranscript("system", "query")
	assert.Len(transcript, 2)
	assert.Equal("system", transcript.System())
	assert.Equal(schema.RoleUser, transcript.Last().Role)
	assert.NoError(transcript.Validate())
}

func TestTranscript_Pending(t *testing.T) {
	assert := assert.New(t)

	a := schema.ToolCall{ID: "1", Name: "a"}
	b := schema.ToolCall{ID: "2", Name: "b"}
	transcript := schema.NewTranscript("system", "query")
	assert.Nil(transcript.Pending())

	transcript.Append(schema.NewAssistantMessage("", a, b))
	assert.Equal([]schema.ToolCall{a, b}, transcript.Pending())

	transcript.Append(schema.NewToolResultMessage(a, "ok"))
	assert.Equal([]schema.ToolCall{b}, transcript.Pending())

	transcript.Append(schema.NewToolResultMessage(b, "ok"))
	assert.Nil(transcript.Pending())
	assert.NoError(transcript.Validate())
}

func TestTranscript_Validate(t *testing.T) {
	a := schema.ToolCall{ID: "1", Name: "a"}
	b := schema.ToolCall{ID: "2", Name: "b"}

	tests := []struct {
		name       string
		transcript schema.Transcript
		ok         bool
	}{
		{"empty", schema.Transcript{}, false},
		{"no system", schema.Transcript{schema.NewUserMessage("q"), schema.NewUserMessage("q")}, false},
		{"final answer", append(schema.NewTranscript("s", "q"), schema.NewAssistantMessage("answer")), true},
		{"empty assistant", append(schema.NewTranscript("s", "q"), schema.NewAssistantMessage("")), false},
		{"results in order", append(schema.NewTranscript("s", "q"),
			schema.NewAssistantMessage("", a, b),
			schema.NewToolResultMessage(a, "x"),
			schema.NewToolResultMessage(b, "y"),
			schema.NewAssistantMessage("done"),
		), true},
		{"results out of order", append(schema.NewTranscript("s", "q"),
			schema.NewAssistantMessage("", a, b),
			schema.NewToolResultMessage(b, "y"),
			schema.NewToolResultMessage(a, "x"),
		), false},
		{"unanswered call", append(schema.NewTranscript("s", "q"),
			schema.NewAssistantMessage("", a, b),
			schema.NewToolResultMessage(a, "x"),
			schema.NewAssistantMessage("done"),
		), false},
		{"orphan result", append(schema.NewTranscript("s", "q"),
			schema.NewToolResultMessage(a, "x"),
		), false},
		{"duplicate id", append(schema.NewTranscript("s", "q"),
			schema.NewAssistantMessage("", a),
			schema.NewToolResultMessage(a, "x"),
			schema.NewAssistantMessage("", a),
		), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.transcript.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCatalogue_Lookup(t *testing.T) {
	assert := assert.New(t)

	catalogue := schema.Catalogue{{Name: "a"}, {Name: "b"}}
	assert.Equal([]string{"a", "b"}, catalogue.Names())
	assert.NotNil(catalogue.Lookup("b"))
	assert.Nil(catalogue.Lookup("c"))
	assert.Equal("object", catalogue[0].Schema().Type)
}

func TestCatalogue_Page(t *testing.T) {
	assert := assert.New(t)
	catalogue := schema.Catalogue{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	page := catalogue.Page(schema.ListToolRequest{})
	assert.Equal(uint(3), page.Count)
	assert.Len(page.Body, 3)

	limit := uint(1)
	page = catalogue.Page(schema.ListToolRequest{Offset: 1, Limit: &limit})
	assert.Equal([]string{"b"}, page.Body.Names())
	assert.Equal(uint(1), page.Offset)

	page = catalogue.Page(schema.ListToolRequest{Offset: 5, Limit: &limit})
	assert.Equal(uint(3), page.Count)
	assert.Empty(page.Body)

	// A limit near the top of the range must not wrap around
	limit = math.MaxUint
	page = catalogue.Page(schema.ListToolRequest{Offset: 1, Limit: &limit})
	assert.Equal([]string{"b", "c"}, page.Body.Names())

	limit = 0
	page = catalogue.Page(schema.ListToolRequest{Limit: &limit})
	assert.Empty(page.Body)
}

func TestToolTable(t *testing.T) {
	assert := assert.New(t)
	table := schema.ToolTable{{Name: "get_weather", Description: "Weather"}}
	assert.Equal([]string{"NAME", "DESCRIPTION", "PARAMETERS"}, table.Header())
	assert.Equal(1, table.Len())
	assert.Len(table.Row(0), 3)
}

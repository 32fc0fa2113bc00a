package fashion

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	stylist "github.com/mutablelogic/go-stylist"
	tool "github.com/mutablelogic/go-stylist/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// MemberRequest defines the input for a member profile lookup
type MemberRequest struct {
	Name string `json:"name" jsonschema:"Member handle, for example ideabong or sunny"`
}

// OutfitRequest defines the input for an outfit history lookup
type OutfitRequest struct {
	Day string `json:"day" jsonschema:"Day of the week in English, for example monday"`
}

// WeatherRequest defines the input for a weather lookup
type WeatherRequest struct {
	Location string `json:"location" jsonschema:"City name, for example Seoul or Busan"`
}

type memberProfile struct{}
type outfitHistory struct{}
type currentWeather struct{}

var _ tool.Tool = (*memberProfile)(nil)
var _ tool.Tool = (*outfitHistory)(nil)
var _ tool.Tool = (*currentWeather)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the fashion tools
func NewTools() []tool.Tool {
	return []tool.Tool{
		&memberProfile{},
		&outfitHistory{},
		&currentWeather{},
	}
}

///////////////////////////////////////////////////////////////////////////////
// MEMBER PROFILE

func (*memberProfile) Name() string {
	return "get_member_profile"
}

func (*memberProfile) Description() string {
	return "Return the profile of a team member (name, location, preferred style and gender) by their handle."
}

func (*memberProfile) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[MemberRequest](nil)
}

func (*memberProfile) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req MemberRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	} else if req.Name == "" {
		return nil, stylist.ErrBadParameter.With("name is required")
	}
	if member, exists := LookupMember(req.Name); exists {
		return member, nil
	}
	return MemberNotFound, nil
}

///////////////////////////////////////////////////////////////////////////////
// OUTFIT HISTORY

func (*outfitHistory) Name() string {
	return "get_ootd_history"
}

func (*outfitHistory) Description() string {
	return "Return the outfit of the day worn on a given day of the week."
}

func (*outfitHistory) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[OutfitRequest](nil)
}

func (*outfitHistory) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req OutfitRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	} else if req.Day == "" {
		return nil, stylist.ErrBadParameter.With("day is required")
	}
	if outfit, exists := Outfit(req.Day); exists {
		return outfit, nil
	}
	return OutfitNotFound, nil
}

///////////////////////////////////////////////////////////////////////////////
// CURRENT WEATHER

func (*currentWeather) Name() string {
	return "get_current_weather"
}

func (*currentWeather) Description() string {
	return "Return the current weather for a city."
}

func (*currentWeather) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[WeatherRequest](nil)
}

func (*currentWeather) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req WeatherRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	} else if req.Location == "" {
		return nil, stylist.ErrBadParameter.With("location is required")
	}
	if text, exists := Weather(req.Location); exists {
		return text, nil
	}
	return LocationNotFound, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decode(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return stylist.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return nil
}

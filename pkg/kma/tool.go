package kma

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	stylist "github.com/mutablelogic/go-stylist"
	tool "github.com/mutablelogic/go-stylist/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// WeatherRequest defines the input for the current weather
type WeatherRequest struct {
	Location string `json:"location" jsonschema:"City name in Korean or English, for example 서울 or Seoul"`
}

// ForecastRequest defines the input for a forecast
type ForecastRequest struct {
	Location string `json:"location" jsonschema:"City name in Korean or English, for example 부산 or Busan"`
	Hours    int    `json:"hours,omitempty" jsonschema:"Forecast period in hours (default 24)"`
}

// CitiesRequest takes no arguments
type CitiesRequest struct{}

type koreaWeather struct {
	client *Client
}

type weatherForecast struct{}

type supportedCities struct{}

var _ tool.Tool = (*koreaWeather)(nil)
var _ tool.Tool = (*weatherForecast)(nil)
var _ tool.Tool = (*supportedCities)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultForecastHours = 24
	maxForecastHours     = 72
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the Korea weather tools. Without a service key the
// current weather is answered from fixed sample data.
func NewTools(serviceKey string, opts ...client.ClientOpt) ([]tool.Tool, error) {
	var c *Client
	if serviceKey != "" {
		if client, err := New(serviceKey, opts...); err != nil {
			return nil, err
		} else {
			c = client
		}
	}
	return []tool.Tool{
		&koreaWeather{client: c},
		&weatherForecast{},
		&supportedCities{},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// CURRENT WEATHER

func (*koreaWeather) Name() string {
	return "get_korea_weather"
}

func (*koreaWeather) Description() string {
	return "Get the current weather for a Korean city: temperature, sky, precipitation, humidity and wind speed. " +
		"Supported cities: " + strings.Join(Names(), ", ") + " (English names are also accepted)."
}

func (*koreaWeather) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[WeatherRequest](nil)
}

func (w *koreaWeather) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req WeatherRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	} else if req.Location == "" {
		return nil, stylist.ErrBadParameter.With("location is required")
	}

	// Unsupported cities are reported to the model, not failed
	city, exists := Lookup(req.Location)
	if !exists {
		return unsupported(req.Location), nil
	}

	// Without a client, return sample data
	if w.client == nil {
		return city.Sample(), nil
	}

	// Fetch the forecast
	forecast, err := w.client.Forecast(ctx, city)
	if err != nil {
		return nil, err
	}
	return forecast.Text(), nil
}

///////////////////////////////////////////////////////////////////////////////
// FORECAST

func (*weatherForecast) Name() string {
	return "get_weather_forecast"
}

func (*weatherForecast) Description() string {
	return "Get the weather forecast for a Korean city over the next hours."
}

func (*weatherForecast) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ForecastRequest](nil)
	if err != nil {
		return nil, err
	}

	// Add validation constraints for hours
	if hoursField, ok := schema.Properties["hours"]; ok && hoursField != nil {
		min := float64(1)
		max := float64(maxForecastHours)
		hoursField.Minimum = &min
		hoursField.Maximum = &max
	}

	return schema, nil
}

func (*weatherForecast) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req ForecastRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	} else if req.Location == "" {
		return nil, stylist.ErrBadParameter.With("location is required")
	}
	if req.Hours == 0 {
		req.Hours = defaultForecastHours
	} else if req.Hours < 0 || req.Hours > maxForecastHours {
		return nil, stylist.ErrBadParameter.Withf("hours must be between 1 and %d", maxForecastHours)
	}

	city, exists := Lookup(req.Location)
	if !exists {
		return unsupported(req.Location), nil
	}

	return strings.Join([]string{
		fmt.Sprintf("%s %d시간 예보:", city.Name, req.Hours),
		"- 오전: 맑음, 기온 3~8°C",
		"- 오후: 구름많음, 기온 5~10°C",
		"- 저녁: 맑음, 기온 2~5°C",
		"- 강수확률: 10%",
		"- 미세먼지: 보통",
	}, "\n"), nil
}

///////////////////////////////////////////////////////////////////////////////
// SUPPORTED CITIES

func (*supportedCities) Name() string {
	return "get_supported_cities"
}

func (*supportedCities) Description() string {
	return "List the Korean cities supported by the weather tools."
}

func (*supportedCities) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[CitiesRequest](nil)
}

func (*supportedCities) Run(_ context.Context, _ json.RawMessage) (any, error) {
	return "지원 도시: " + strings.Join(Names(), ", "), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func unsupported(location string) string {
	return fmt.Sprintf("지원하지 않는 지역입니다: %s. 지원 도시: %s", location, strings.Join(Names(), ", "))
}

func decode(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return stylist.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return nil
}

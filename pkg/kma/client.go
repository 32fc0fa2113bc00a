/*
kma implements a client for the Korea Meteorological Administration
short-term forecast service, and tools which use it
https://www.data.go.kr/data/15084084/openapi.do
*/
package kma

import (
	"context"
	"fmt"
	"net/url"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	stylist "github.com/mutablelogic/go-stylist"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	key string
	now func() time.Time
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint  = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0"
	numOfRows = 100
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client with a (decoded) service key. The endpoint can be
// overridden with client.OptEndpoint.
func New(serviceKey string, opts ...client.ClientOpt) (*Client, error) {
	// Check for missing service key
	if serviceKey == "" {
		return nil, stylist.ErrBadParameter.With("missing service key")
	}

	// Create client
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: client,
		key:    serviceKey,
		now:    time.Now,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Forecast returns the short-term forecast for a city from the most recent
// release
func (c *Client) Forecast(ctx context.Context, city City) (Forecast, error) {
	var response Response

	// Request -> Response
	baseDate, baseTime := BaseDateTime(c.now())
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("getVilageFcst"), client.OptQuery(c.values(city, baseDate, baseTime))); err != nil {
		return Forecast{}, err
	}

	// Check the result code
	if code := response.Response.Header.ResultCode; code != resultCodeOK {
		return Forecast{}, fmt.Errorf("forecast service error %s: %s", code, response.Response.Header.ResultMsg)
	}

	// Summarise
	forecast := response.Forecast(city)
	if forecast.BaseDate == "" {
		forecast.BaseDate, forecast.BaseTime = baseDate, baseTime
	}
	return forecast, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) values(city City, baseDate, baseTime string) url.Values {
	result := url.Values{}
	result.Set("serviceKey", c.key)
	result.Set("numOfRows", fmt.Sprint(numOfRows))
	result.Set("pageNo", "1")
	result.Set("dataType", "JSON")
	result.Set("base_date", baseDate)
	result.Set("base_time", baseTime)
	result.Set("nx", fmt.Sprint(city.Nx))
	result.Set("ny", fmt.Sprint(city.Ny))
	return result
}

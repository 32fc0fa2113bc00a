package kma

import (
	"fmt"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Response is the envelope returned by the forecast service
type Response struct {
	Response struct {
		Header Header `json:"header"`
		Body   struct {
			DataType string `json:"dataType"`
			Items    struct {
				Item []Item `json:"item"`
			} `json:"items"`
			PageNo     int `json:"pageNo"`
			NumOfRows  int `json:"numOfRows"`
			TotalCount int `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// Header carries the result code of a request
type Header struct {
	ResultCode string `json:"resultCode"`
	ResultMsg  string `json:"resultMsg"`
}

// Item is a single forecast value for one category and time slot
type Item struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	FcstValue string `json:"fcstValue"`
	Nx        int    `json:"nx"`
	Ny        int    `json:"ny"`
}

// Forecast is the summarised forecast for the nearest time slot
type Forecast struct {
	City          City   `json:"city"`
	BaseDate      string `json:"base_date"`
	BaseTime      string `json:"base_time"`
	Temperature   string `json:"temperature,omitempty"`   // TMP, degrees celsius
	Sky           string `json:"sky,omitempty"`           // SKY
	Precipitation string `json:"precipitation,omitempty"` // PTY
	Humidity      string `json:"humidity,omitempty"`      // REH, percent
	WindSpeed     string `json:"wind_speed,omitempty"`    // WSD, metres per second
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	resultCodeOK = "00"
)

var (
	skyCode = map[string]string{
		"1": "맑음",
		"3": "구름많음",
		"4": "흐림",
	}
	ptyCode = map[string]string{
		"0": "없음",
		"1": "비",
		"2": "비/눈",
		"3": "눈",
		"4": "소나기",
	}
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Forecast summarises the items, taking the first value of each category,
// which is the nearest forecast slot
func (r Response) Forecast(city City) Forecast {
	result := Forecast{City: city}
	for _, item := range r.Response.Body.Items.Item {
		if result.BaseDate == "" {
			result.BaseDate, result.BaseTime = item.BaseDate, item.BaseTime
		}
		switch item.Category {
		case "TMP":
			setOnce(&result.Temperature, item.FcstValue+"°C")
		case "SKY":
			setOnce(&result.Sky, code(skyCode, item.FcstValue))
		case "PTY":
			setOnce(&result.Precipitation, code(ptyCode, item.FcstValue))
		case "REH":
			setOnce(&result.Humidity, item.FcstValue+"%")
		case "WSD":
			setOnce(&result.WindSpeed, item.FcstValue+"m/s")
		}
	}
	return result
}

// Empty returns true if no categories were found
func (f Forecast) Empty() bool {
	return f.Temperature == "" && f.Sky == "" && f.Precipitation == "" && f.Humidity == "" && f.WindSpeed == ""
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

// Text returns the forecast as the text passed back to the model
func (f Forecast) Text() string {
	if f.Empty() {
		return fmt.Sprintf("%s의 날씨 정보를 가져올 수 없습니다.", f.City.Name)
	}
	var parts []string
	for _, part := range []struct{ label, value string }{
		{"기온", f.Temperature},
		{"하늘", f.Sky},
		{"강수", f.Precipitation},
		{"습도", f.Humidity},
		{"풍속", f.WindSpeed},
	} {
		if part.value != "" {
			parts = append(parts, part.label+": "+part.value)
		}
	}
	return fmt.Sprintf("%s 날씨: %s", f.City.Name, strings.Join(parts, ", "))
}

func (f Forecast) String() string {
	return types.Stringify(f)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setOnce(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func code(codes map[string]string, value string) string {
	if text, exists := codes[value]; exists {
		return text
	}
	return value
}

package kma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

const testResponse = `{"response":{"header":{"resultCode":"00","resultMsg":"NORMAL_SERVICE"},
"body":{"dataType":"JSON","items":{"item":[
{"baseDate":"20260310","baseTime":"0500","category":"TMP","fcstDate":"20260310","fcstTime":"0600","fcstValue":"5","nx":60,"ny":127},
{"baseDate":"20260310","baseTime":"0500","category":"UUU","fcstDate":"20260310","fcstTime":"0600","fcstValue":"-1.2","nx":60,"ny":127},
{"baseDate":"20260310","baseTime":"0500","category":"WSD","fcstDate":"20260310","fcstTime":"0600","fcstValue":"2.1","nx":60,"ny":127},
{"baseDate":"20260310","baseTime":"0500","category":"SKY","fcstDate":"20260310","fcstTime":"0600","fcstValue":"3","nx":60,"ny":127},
{"baseDate":"20260310","baseTime":"0500","category":"PTY","fcstDate":"20260310","fcstTime":"0600","fcstValue":"0","nx":60,"ny":127},
{"baseDate":"20260310","baseTime":"0500","category":"REH","fcstDate":"20260310","fcstTime":"0600","fcstValue":"45","nx":60,"ny":127},
{"baseDate":"20260310","baseTime":"0500","category":"TMP","fcstDate":"20260310","fcstTime":"0700","fcstValue":"6","nx":60,"ny":127}
]},"pageNo":1,"numOfRows":100,"totalCount":7}}}`

func newTestServer(t *testing.T, body string, check func(*http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Forecast(t *testing.T) {
	assert := assert.New(t)
	server := newTestServer(t, testResponse, func(r *http.Request) {
		assert.Equal("/getVilageFcst", r.URL.Path)
		query := r.URL.Query()
		assert.Equal("secret", query.Get("serviceKey"))
		assert.Equal("100", query.Get("numOfRows"))
		assert.Equal("1", query.Get("pageNo"))
		assert.Equal("JSON", query.Get("dataType"))
		assert.Equal("20260310", query.Get("base_date"))
		assert.Equal("0500", query.Get("base_time"))
		assert.Equal("60", query.Get("nx"))
		assert.Equal("127", query.Get("ny"))
	})

	c, err := New("secret", client.OptEndpoint(server.URL))
	require.NoError(t, err)
	c.now = func() time.Time { return time.Date(2026, time.March, 10, 6, 0, 0, 0, KST) }

	city, _ := Lookup("Seoul")
	forecast, err := c.Forecast(context.Background(), city)
	require.NoError(t, err)
	assert.Equal("5°C", forecast.Temperature)
	assert.Equal("구름많음", forecast.Sky)
	assert.Equal("없음", forecast.Precipitation)
	assert.Equal("45%", forecast.Humidity)
	assert.Equal("2.1m/s", forecast.WindSpeed)
	assert.Equal("서울 날씨: 기온: 5°C, 하늘: 구름많음, 강수: 없음, 습도: 45%, 풍속: 2.1m/s", forecast.Text())
}

func TestClient_ResultCode(t *testing.T) {
	server := newTestServer(t, `{"response":{"header":{"resultCode":"03","resultMsg":"NO_DATA"}}}`, nil)

	c, err := New("secret", client.OptEndpoint(server.URL))
	require.NoError(t, err)

	city, _ := Lookup("Busan")
	_, err = c.Forecast(context.Background(), city)
	assert.ErrorContains(t, err, "NO_DATA")
}

func TestClient_MissingKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestForecast_Empty(t *testing.T) {
	city, _ := Lookup("Ulsan")
	forecast := Response{}.Forecast(city)
	assert.True(t, forecast.Empty())
	assert.Equal(t, "울산의 날씨 정보를 가져올 수 없습니다.", forecast.Text())
}

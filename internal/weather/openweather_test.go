package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/models"
)

var lahore = cities.City{Name: "Lahore", Province: "Punjab", Lat: 31.5497, Lon: 74.3436}

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "31.5497", r.URL.Query().Get("lat"))

		w.Write([]byte(`{
			"main": {"temp": 34.5, "pressure": 1004, "humidity": 71},
			"wind": {"speed": 6.2},
			"rain": {"1h": 12.5}
		}`))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.URL, "test-key", 5*time.Second)
	obs, err := client.Current(context.Background(), lahore)

	require.NoError(t, err)
	assert.Equal(t, "Lahore", obs.City)
	assert.Equal(t, 34.5, obs.Temperature)
	assert.Equal(t, 71.0, obs.Humidity)
	assert.Equal(t, 12.5, obs.Rainfall)
	assert.Equal(t, 6.2, obs.WindSpeed)
	assert.Equal(t, 1004.0, obs.Pressure)
	assert.WithinDuration(t, time.Now().UTC(), obs.Timestamp, 5*time.Second)
}

func TestCurrent_RainFallbackTo3h(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main": {"temp": 20, "pressure": 1010, "humidity": 50}, "wind": {"speed": 1}, "rain": {"3h": 9}}`))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.URL, "k", 5*time.Second)
	obs, err := client.Current(context.Background(), lahore)

	require.NoError(t, err)
	assert.Equal(t, 9.0, obs.Rainfall)
}

func TestCurrent_UpstreamErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewOpenWeatherClient(srv.URL, "k", 5*time.Second)
		_, err := client.Current(context.Background(), lahore)
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(nil)
		srv.Close()

		client := NewOpenWeatherClient(srv.URL, "k", 5*time.Second)
		_, err := client.Current(context.Background(), lahore)
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := NewOpenWeatherClient(srv.URL, "k", 50*time.Millisecond)
		_, err := client.Current(context.Background(), lahore)
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		client := NewOpenWeatherClient(srv.URL, "k", 5*time.Second)
		_, err := client.Current(context.Background(), lahore)
		assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	})
}

func TestForecast_AggregatesDaily(t *testing.T) {
	day1 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		body := `{"list": [
			{"dt": ` + unix(day1.Add(3*time.Hour)) + `, "main": {"temp": 28, "humidity": 60}, "wind": {"speed": 4}, "rain": {"3h": 10}},
			{"dt": ` + unix(day1.Add(9*time.Hour)) + `, "main": {"temp": 36, "humidity": 40}, "wind": {"speed": 9}, "rain": {"3h": 0}},
			{"dt": ` + unix(day1.Add(15*time.Hour)) + `, "main": {"temp": 32, "humidity": 50}, "wind": {"speed": 6}, "rain": {"3h": 5}},
			{"dt": ` + unix(day2.Add(6*time.Hour)) + `, "main": {"temp": 30, "humidity": 80}, "wind": {"speed": 12}, "rain": {"3h": 40}}
		]}`
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.URL, "k", 5*time.Second)
	got, err := client.Forecast(context.Background(), lahore, 7)

	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2026-08-30", got[0].Date)
	assert.Equal(t, 36.0, got[0].MaxTemp)
	assert.Equal(t, 28.0, got[0].MinTemp)
	assert.Equal(t, 32.0, got[0].AvgTemp)
	assert.Equal(t, 15.0, got[0].Rain)
	assert.Equal(t, 9.0, got[0].WindSpeed)
	assert.Equal(t, 50.0, got[0].Humidity)

	assert.Equal(t, "2026-08-31", got[1].Date)
	assert.Equal(t, 40.0, got[1].Rain)
}

func TestForecast_CapsDays(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := `{"list": [`
		for i := 0; i < 9; i++ {
			if i > 0 {
				body += ","
			}
			body += `{"dt": ` + unix(base.AddDate(0, 0, i)) + `, "main": {"temp": 30, "humidity": 50}, "wind": {"speed": 3}, "rain": {}}`
		}
		body += `]}`
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.URL, "k", 5*time.Second)
	got, err := client.Forecast(context.Background(), lahore, 7)

	require.NoError(t, err)
	assert.Len(t, got, 7)
	assert.Equal(t, "2026-08-30", got[0].Date)
	assert.Equal(t, "2026-09-05", got[6].Date)
}

func unix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

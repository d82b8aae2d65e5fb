package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/models"
)

// OpenWeatherClient implements Provider against the OpenWeather current
// weather and 5-day/3-hour forecast endpoints, querying by the city table's
// coordinates. Transport failures, timeouts, and non-200 responses all
// surface as models.ErrUpstreamUnavailable.
type OpenWeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewOpenWeatherClient(baseURL, apiKey string, timeout time.Duration) *OpenWeatherClient {
	return &OpenWeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour   float64 `json:"1h"`
		ThreeHour float64 `json:"3h"`
	} `json:"rain"`
}

type forecastResponse struct {
	List []forecastPoint `json:"list"`
}

type forecastPoint struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		ThreeHour float64 `json:"3h"`
	} `json:"rain"`
}

func (c *OpenWeatherClient) Current(ctx context.Context, city cities.City) (models.Observation, error) {
	var data currentResponse
	if err := c.get(ctx, "/weather", city, &data); err != nil {
		return models.Observation{}, err
	}

	rainfall := data.Rain.OneHour
	if rainfall == 0 {
		rainfall = data.Rain.ThreeHour
	}

	return models.Observation{
		City:        city.Name,
		Timestamp:   time.Now().UTC(),
		Temperature: data.Main.Temp,
		Humidity:    data.Main.Humidity,
		Rainfall:    rainfall,
		WindSpeed:   data.Wind.Speed,
		Pressure:    data.Main.Pressure,
	}, nil
}

func (c *OpenWeatherClient) Forecast(ctx context.Context, city cities.City, days int) ([]models.ForecastDay, error) {
	var data forecastResponse
	if err := c.get(ctx, "/forecast", city, &data); err != nil {
		return nil, err
	}

	return aggregateDaily(data.List, days), nil
}

func (c *OpenWeatherClient) get(ctx context.Context, path string, city cities.City, out any) error {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.4f", city.Lat)},
		"lon":   {fmt.Sprintf("%.4f", city.Lon)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code: %d - status: %s",
			models.ErrUpstreamUnavailable, resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: error decoding resp.Body: %v", models.ErrUpstreamUnavailable, err)
	}
	return nil
}

// aggregateDaily collapses the 3-hourly forecast points into one row per day:
// max/min/avg temperature, total rain, max wind, average humidity. Days come
// back in chronological order, capped at maxDays.
func aggregateDaily(points []forecastPoint, maxDays int) []models.ForecastDay {
	type dayAgg struct {
		maxTemp, minTemp, tempSum  float64
		rain, maxWind, humiditySum float64
		count                      int
	}

	byDate := make(map[string]*dayAgg)
	for _, p := range points {
		date := time.Unix(p.Dt, 0).UTC().Format("2006-01-02")
		agg, ok := byDate[date]
		if !ok {
			agg = &dayAgg{maxTemp: p.Main.Temp, minTemp: p.Main.Temp}
			byDate[date] = agg
		}
		if p.Main.Temp > agg.maxTemp {
			agg.maxTemp = p.Main.Temp
		}
		if p.Main.Temp < agg.minTemp {
			agg.minTemp = p.Main.Temp
		}
		if p.Wind.Speed > agg.maxWind {
			agg.maxWind = p.Wind.Speed
		}
		agg.tempSum += p.Main.Temp
		agg.humiditySum += p.Main.Humidity
		agg.rain += p.Rain.ThreeHour
		agg.count++
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if maxDays > 0 && len(dates) > maxDays {
		dates = dates[:maxDays]
	}

	out := make([]models.ForecastDay, 0, len(dates))
	for _, date := range dates {
		agg := byDate[date]
		out = append(out, models.ForecastDay{
			Date:      date,
			MaxTemp:   agg.maxTemp,
			MinTemp:   agg.minTemp,
			AvgTemp:   agg.tempSum / float64(agg.count),
			Rain:      agg.rain,
			WindSpeed: agg.maxWind,
			Humidity:  agg.humiditySum / float64(agg.count),
		})
	}
	return out
}

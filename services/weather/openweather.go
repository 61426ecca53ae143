// File: services/weather/openweather.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flavortable/models"
	"flavortable/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

const cacheTTL = 30 * time.Minute

// OpenWeatherClient reads the OpenWeatherMap 5-day forecast for a fixed city.
// Successful snapshots are cached briefly in Redis per (city, date) so a busy
// evening of bookings does not hammer the provider.
type OpenWeatherClient struct {
	apiKey     string
	city       string
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
}

// NewOpenWeatherClient builds a client. The cache client may be nil; caching
// is then skipped entirely.
func NewOpenWeatherClient(apiKey, city string, cache *redis.Client) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:     strings.TrimSpace(apiKey),
		city:       city,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		cache:      cache,
	}
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast returns the snapshot for the forecast entry closest to the given
// date, falling back to the nearest entry when the date is outside the
// provider's horizon.
func (c *OpenWeatherClient) Forecast(ctx context.Context, date string) (*models.WeatherSnapshot, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	if snap := c.cacheGet(ctx, date); snap != nil {
		return snap, nil
	}

	reqURL := fmt.Sprintf("%s?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(c.city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if len(forecast.List) == 0 {
		return nil, fmt.Errorf("%w: empty forecast list", ErrUnavailable)
	}

	// Prefer the first entry on the requested date; otherwise the first
	// entry in the horizon.
	entry := forecast.List[0]
	for _, e := range forecast.List {
		if strings.HasPrefix(e.DtTxt, date) {
			entry = e
			break
		}
	}
	if len(entry.Weather) == 0 {
		return nil, fmt.Errorf("%w: entry has no condition", ErrUnavailable)
	}

	snap := &models.WeatherSnapshot{
		TemperatureCelsius: entry.Main.Temp,
		Condition:          NormalizeCondition(entry.Weather[0].Main),
		Description:        entry.Weather[0].Description,
	}
	c.cacheSet(ctx, date, snap)
	return snap, nil
}

// NormalizeCondition maps a provider condition onto the coarse set the
// seating policy understands.
func NormalizeCondition(condition string) string {
	switch condition {
	case models.ConditionClear, models.ConditionRain, models.ConditionDrizzle, models.ConditionThunderstorm:
		return condition
	default:
		return models.ConditionOther
	}
}

func (c *OpenWeatherClient) cacheKey(date string) string {
	return "weather:" + c.city + ":" + date
}

func (c *OpenWeatherClient) cacheGet(ctx context.Context, date string) *models.WeatherSnapshot {
	if c.cache == nil {
		return nil
	}
	data, err := c.cache.Get(ctx, c.cacheKey(date)).Result()
	if err != nil {
		return nil
	}
	var snap models.WeatherSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil
	}
	return &snap
}

func (c *OpenWeatherClient) cacheSet(ctx context.Context, date string, snap *models.WeatherSnapshot) {
	if c.cache == nil {
		return
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.cacheKey(date), b, cacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("weather cache write failed", zap.Error(err))
	}
}

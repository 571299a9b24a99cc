// In file: internal/tools/time_tool.go
package tools

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // timezone lookups must work in minimal containers
)

// datetimeLayout renders timestamps in day/month/year order.
const datetimeLayout = "02/01/2006, 15:04:05"

// LocalTimeTool reports the gateway process's own clock. It never fails.
type LocalTimeTool struct {
	now func() time.Time
}

var _ ToolExecutor = (*LocalTimeTool)(nil)

func NewLocalTimeTool(now func() time.Time) *LocalTimeTool {
	return &LocalTimeTool{now: now}
}

func (t *LocalTimeTool) Definition() Tool {
	tool, _ := Lookup(string(GetLocalTime))
	return tool
}

func (t *LocalTimeTool) Execute(_ context.Context, _ Arguments) (Result, error) {
	return PayloadResult(struct {
		Location string `json:"location"`
		Datetime string `json:"datetime"`
	}{
		Location: "Server Local Time",
		Datetime: t.now().Local().Format(datetimeLayout),
	})
}

// CityTimeTool reports the current time in the timezone of a geocoded city.
type CityTimeTool struct {
	geocoder *Geocoder
	now      func() time.Time
}

var _ ToolExecutor = (*CityTimeTool)(nil)

func NewCityTimeTool(geocoder *Geocoder, now func() time.Time) *CityTimeTool {
	return &CityTimeTool{geocoder: geocoder, now: now}
}

func (t *CityTimeTool) Definition() Tool {
	tool, _ := Lookup(string(GetCityTime))
	return tool
}

func (t *CityTimeTool) Execute(ctx context.Context, args Arguments) (Result, error) {
	city, err := cityArg(args)
	if err != nil {
		return Result{}, err
	}
	place, err := t.geocoder.Resolve(ctx, city)
	if err != nil {
		return Result{}, err
	}
	if place.Timezone == "" {
		return Result{}, fmt.Errorf("timezone not found for %s", city)
	}
	loc, err := time.LoadLocation(place.Timezone)
	if err != nil {
		return Result{}, fmt.Errorf("unknown timezone %q for %s: %w", place.Timezone, city, err)
	}

	return PayloadResult(struct {
		Location string `json:"location"`
		Timezone string `json:"timezone"`
		Datetime string `json:"datetime"`
	}{
		Location: place.Label(),
		Timezone: place.Timezone,
		Datetime: t.now().In(loc).Format(datetimeLayout),
	})
}

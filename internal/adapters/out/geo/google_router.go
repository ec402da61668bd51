// Package geo provides the Google Maps implementation of the external
// routing port, plus a Redis decorator that caches leg estimates. Every
// error leaving this package is a fallback signal for the caller, not a
// request failure.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/ports"
)

const defaultBaseURL = "https://maps.googleapis.com"

// GoogleRouter implements ExternalRouter using the Google Maps Distance
// Matrix and Directions APIs with live traffic. Safe for concurrent use.
type GoogleRouter struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewGoogleRouter creates a Google Maps routing adapter. An empty baseURL
// selects the production endpoint; a nil session gets a 10 second timeout
// client.
func NewGoogleRouter(apiKey string, baseURL string, session *http.Client) (*GoogleRouter, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	if session == nil {
		session = &http.Client{Timeout: 10 * time.Second}
	}

	return &GoogleRouter{
		session: session,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			DurationInTraffic *struct {
				Value int `json:"value"`
			} `json:"duration_in_traffic"`
		} `json:"elements"`
	} `json:"rows"`
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		WaypointOrder []int `json:"waypoint_order"`
		Legs          []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// EstimateLeg returns a distance/time-with-traffic estimate between two points.
func (g *GoogleRouter) EstimateLeg(ctx context.Context, origin kernel.GeoPoint, destination kernel.GeoPoint) (ports.RouteLeg, error) {
	params := url.Values{}
	params.Set("origins", formatPoint(origin))
	params.Set("destinations", formatPoint(destination))
	params.Set("mode", "driving")
	params.Set("departure_time", "now")
	params.Set("traffic_model", "best_guess")
	params.Set("key", g.apiKey)

	var payload distanceMatrixResponse
	if err := g.get(ctx, "/maps/api/distancematrix/json", params, &payload); err != nil {
		return ports.RouteLeg{}, err
	}

	if payload.Status != "OK" || len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return ports.RouteLeg{}, fmt.Errorf("distance matrix status %q", payload.Status)
	}

	element := payload.Rows[0].Elements[0]
	if element.Status != "OK" {
		return ports.RouteLeg{}, fmt.Errorf("distance matrix element status %q", element.Status)
	}

	seconds := element.Duration.Value
	if element.DurationInTraffic != nil {
		seconds = element.DurationInTraffic.Value
	}

	return ports.RouteLeg{
		DistanceKm: float64(element.Distance.Value) / 1000.0,
		Minutes:    float64(seconds) / 60.0,
	}, nil
}

// OptimizeRoute returns an externally optimized visiting order over the
// destinations starting from origin. Google fixes the final destination and
// optimizes the intermediate waypoints, so the last destination always
// closes the visit order.
func (g *GoogleRouter) OptimizeRoute(ctx context.Context, origin kernel.GeoPoint, destinations []kernel.GeoPoint) (ports.OptimizedRoute, error) {
	if len(destinations) == 0 {
		return ports.OptimizedRoute{}, errors.New("no destinations to optimize")
	}

	last := len(destinations) - 1

	params := url.Values{}
	params.Set("origin", formatPoint(origin))
	params.Set("destination", formatPoint(destinations[last]))
	params.Set("mode", "driving")
	params.Set("departure_time", "now")
	params.Set("traffic_model", "best_guess")
	params.Set("key", g.apiKey)

	if last > 0 {
		waypoints := make([]string, 0, last)
		for _, point := range destinations[:last] {
			waypoints = append(waypoints, formatPoint(point))
		}
		params.Set("waypoints", "optimize:true|"+strings.Join(waypoints, "|"))
	}

	var payload directionsResponse
	if err := g.get(ctx, "/maps/api/directions/json", params, &payload); err != nil {
		return ports.OptimizedRoute{}, err
	}

	if payload.Status != "OK" || len(payload.Routes) == 0 {
		return ports.OptimizedRoute{}, fmt.Errorf("directions status %q", payload.Status)
	}

	best := payload.Routes[0]

	var meters, seconds int
	for _, leg := range best.Legs {
		meters += leg.Distance.Value
		seconds += leg.Duration.Value
	}

	visitOrder := make([]int, 0, len(destinations))
	visitOrder = append(visitOrder, best.WaypointOrder...)
	visitOrder = append(visitOrder, last)

	if len(visitOrder) != len(destinations) {
		return ports.OptimizedRoute{}, fmt.Errorf(
			"directions returned %d waypoints for %d destinations", len(visitOrder), len(destinations))
	}

	return ports.OptimizedRoute{
		DistanceKm: float64(meters) / 1000.0,
		Minutes:    float64(seconds) / 60.0,
		VisitOrder: visitOrder,
	}, nil
}

func (g *GoogleRouter) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("google maps status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func formatPoint(point kernel.GeoPoint) string {
	return fmt.Sprintf("%.6f,%.6f", point.Latitude(), point.Longitude())
}

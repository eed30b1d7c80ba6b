package trip

import (
	"fmt"
	"net/url"
	"strings"

	"example.com/travel-genie/backend/internal/models"
)

// maxRouteWaypoints caps the intermediate stops handed to an external mapping
// service; longer sequences overflow the provider's URL length limits.
const maxRouteWaypoints = 9

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RoutePoints extracts the ordered coordinate pairs of the activities that
// carry coordinates. Activities without coordinates are skipped, not an error.
func RoutePoints(activities []models.Activity) []Point {
	points := make([]Point, 0, len(activities))
	for _, activity := range activities {
		if activity.Latitude == nil || activity.Longitude == nil {
			continue
		}
		points = append(points, Point{Lat: *activity.Latitude, Lng: *activity.Longitude})
	}
	return points
}

// Downsample thins a waypoint sequence to at most max points, keeping every
// step-th element so the route's overall shape survives.
func Downsample(points []Point, max int) []Point {
	if max <= 0 || len(points) <= max {
		return points
	}

	step := (len(points) + max - 1) / max
	out := make([]Point, 0, max)
	for i := 0; i < len(points); i += step {
		out = append(out, points[i])
	}
	return out
}

// GoogleMapsRouteURL builds a directions link from the first point through at
// most maxRouteWaypoints intermediates to the last point. Fewer than two
// points yields ""; the caller disables the route affordance instead of
// emitting a degenerate link.
func GoogleMapsRouteURL(points []Point, travelMode string) string {
	if len(points) < 2 {
		return ""
	}

	if travelMode == "" {
		travelMode = "walking"
	}

	origin := formatPoint(points[0])
	destination := formatPoint(points[len(points)-1])
	intermediates := Downsample(points[1:len(points)-1], maxRouteWaypoints)

	waypoints := make([]string, 0, len(intermediates))
	for _, point := range intermediates {
		waypoints = append(waypoints, formatPoint(point))
	}

	query := url.Values{}
	query.Set("api", "1")
	query.Set("origin", origin)
	query.Set("destination", destination)
	if len(waypoints) > 0 {
		query.Set("waypoints", strings.Join(waypoints, "|"))
	}
	query.Set("travelmode", travelMode)

	return "https://www.google.com/maps/dir/?" + query.Encode()
}

func formatPoint(point Point) string {
	return fmt.Sprintf("%g,%g", point.Lat, point.Lng)
}

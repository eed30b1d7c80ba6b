package trip

import (
	"strings"
	"testing"

	"example.com/travel-genie/backend/internal/models"
)

// TestRoutePoints checks that activities without coordinates are skipped.
func TestRoutePoints(t *testing.T) {
	lat, lng := 45.4371, 12.3326
	activities := []models.Activity{
		{PlaceName: "Piazza San Marco", Latitude: &lat, Longitude: &lng},
		{PlaceName: "Lunch"},
		{PlaceName: "Rialto", Latitude: &lat},
	}

	points := RoutePoints(activities)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
}

// TestDownsample checks that long routes are thinned to the waypoint cap.
func TestDownsample(t *testing.T) {
	points := make([]Point, 20)
	for i := range points {
		points[i] = Point{Lat: float64(i), Lng: float64(i)}
	}

	kept := Downsample(points, maxRouteWaypoints)
	if len(kept) > maxRouteWaypoints {
		t.Fatalf("expected at most %d points, got %d", maxRouteWaypoints, len(kept))
	}
	if kept[0].Lat != 0 {
		t.Fatalf("expected first point kept, got %+v", kept[0])
	}
}

// TestDownsampleShort checks that short routes pass through untouched.
func TestDownsampleShort(t *testing.T) {
	points := []Point{{Lat: 1}, {Lat: 2}, {Lat: 3}}
	kept := Downsample(points, maxRouteWaypoints)
	if len(kept) != 3 {
		t.Fatalf("expected 3 points, got %d", len(kept))
	}
}

// TestGoogleMapsRouteURL checks the directions URL shape.
func TestGoogleMapsRouteURL(t *testing.T) {
	points := []Point{
		{Lat: 45.4371, Lng: 12.3326},
		{Lat: 45.4380, Lng: 12.3359},
		{Lat: 45.4342, Lng: 12.3388},
	}

	url := GoogleMapsRouteURL(points, "")
	if !strings.HasPrefix(url, "https://www.google.com/maps/dir/?") {
		t.Fatalf("unexpected base: %s", url)
	}
	if !strings.Contains(url, "api=1") {
		t.Fatalf("expected api=1 in %s", url)
	}
	if !strings.Contains(url, "travelmode=walking") {
		t.Fatalf("expected default walking mode in %s", url)
	}
	if !strings.Contains(url, "waypoints=") {
		t.Fatalf("expected waypoints in %s", url)
	}
}

// TestGoogleMapsRouteURLDegenerate checks that fewer than two points yields
// no URL.
func TestGoogleMapsRouteURLDegenerate(t *testing.T) {
	if url := GoogleMapsRouteURL(nil, "walking"); url != "" {
		t.Fatalf("expected empty URL, got %s", url)
	}
	if url := GoogleMapsRouteURL([]Point{{Lat: 1, Lng: 2}}, "walking"); url != "" {
		t.Fatalf("expected empty URL for single point, got %s", url)
	}
}

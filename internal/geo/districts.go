package geo

import (
	"strings"

	"portugalRunning/internal/models"
)

// District is one of the 18 districts of mainland Portugal, with its
// administrative center as map centroid.
type District struct {
	Name     string             `json:"name"`
	Centroid models.Coordinates `json:"centroid"`
}

var districts = []District{
	{"Aveiro", models.Coordinates{Lat: 40.6405, Lon: -8.6538}},
	{"Beja", models.Coordinates{Lat: 38.0151, Lon: -7.8632}},
	{"Braga", models.Coordinates{Lat: 41.5454, Lon: -8.4265}},
	{"Bragança", models.Coordinates{Lat: 41.8061, Lon: -6.7567}},
	{"Castelo Branco", models.Coordinates{Lat: 39.8222, Lon: -7.4909}},
	{"Coimbra", models.Coordinates{Lat: 40.2033, Lon: -8.4103}},
	{"Évora", models.Coordinates{Lat: 38.5667, Lon: -7.9000}},
	{"Faro", models.Coordinates{Lat: 37.0194, Lon: -7.9304}},
	{"Guarda", models.Coordinates{Lat: 40.5373, Lon: -7.2657}},
	{"Leiria", models.Coordinates{Lat: 39.7436, Lon: -8.8070}},
	{"Lisboa", models.Coordinates{Lat: 38.7223, Lon: -9.1393}},
	{"Portalegre", models.Coordinates{Lat: 39.2967, Lon: -7.4286}},
	{"Porto", models.Coordinates{Lat: 41.1579, Lon: -8.6291}},
	{"Santarém", models.Coordinates{Lat: 39.2362, Lon: -8.6868}},
	{"Setúbal", models.Coordinates{Lat: 38.5244, Lon: -8.8882}},
	{"Viana do Castelo", models.Coordinates{Lat: 41.6918, Lon: -8.8345}},
	{"Vila Real", models.Coordinates{Lat: 41.3006, Lon: -7.7441}},
	{"Viseu", models.Coordinates{Lat: 40.6566, Lon: -7.9125}},
}

// Districts returns the fixed district list.
func Districts() []District {
	out := make([]District, len(districts))
	copy(out, districts)
	return out
}

// ResolveDistrict maps an event to a district name. It first looks for a
// district name inside the event's locality and location strings, then falls
// back to the nearest district centroid when the event has coordinates.
// Returns "" when the event cannot be placed.
func ResolveDistrict(e models.Event) string {
	for _, d := range districts {
		if containsFold(e.Locality, d.Name) || containsFold(e.Location, d.Name) {
			return d.Name
		}
	}

	if e.Coordinates == nil {
		return ""
	}

	return NearestDistrict(*e.Coordinates).Name
}

// NearestDistrict returns the district whose centroid is closest to p.
func NearestDistrict(p models.Coordinates) District {
	nearest := districts[0]
	best := Distance(p, nearest.Centroid)

	for _, d := range districts[1:] {
		if dist := Distance(p, d.Centroid); dist < best {
			best = dist
			nearest = d
		}
	}

	return nearest
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Package taxonomy maps the upstream WordPress event vocabulary onto the
// canonical category set. The upstream terms come in two historical shapes,
// display names ("Maratona") and slugs ("event_type-maratona"); both map
// here so older caches stay usable.
package taxonomy

import (
	"strings"

	"portugalRunning/internal/models"
)

// Fixed distances in meters for categories implying one.
var distances = map[string]int{
	models.CategoryMarathon:     42195,
	models.CategoryHalfMarathon: 21097,
	models.CategoryTenK:         10000,
	models.CategoryFiveK:        5000,
}

var terms = map[string]string{
	// Marathon types
	"maratona":      models.CategoryMarathon,
	"marathon":      models.CategoryMarathon,
	"meia-maratona": models.CategoryHalfMarathon,
	"meiamaratona":  models.CategoryHalfMarathon,

	// Trail types
	"trail":             models.CategoryTrail,
	"t-trail":           models.CategoryTrail,
	"t-trail curto":     models.CategoryTrail,
	"t-trail longo":     models.CategoryTrail,
	"t-trail ultra":     models.CategoryTrail,
	"t-trail endurance": models.CategoryTrail,
	"t-etapas":          models.CategoryTrail,
	"trail-curto":       models.CategoryTrail,
	"trail-longo":       models.CategoryTrail,
	"trail-ultra":       models.CategoryTrail,
	"trail-endurance":   models.CategoryTrail,
	"etapas":            models.CategoryTrail,
	"skyrunning":        models.CategoryTrail,
	"kids-trail":        models.CategoryTrail,

	// Running types
	"corrida":                      models.CategoryRun,
	"corrida 10 km":                models.CategoryTenK,
	"corrida-10-km":                models.CategoryTenK,
	"corrida 5 km":                 models.CategoryFiveK,
	"corrida inferior a 10 km's":   models.CategoryRun,
	"corridas-inferior-10":         models.CategoryRun,
	"corrida-de-15-km":             models.CategoryRun,
	"entre 10km's e meia maratona": models.CategoryRun,
	"milha":                        models.CategoryRun,
	"légua":                        models.CategoryFiveK,
	"legua":                        models.CategoryFiveK,
	"obstáculos":                   models.CategoryRun,
	"obstaculos":                   models.CategoryRun,
	"pista":                        models.CategoryRun,
	"backyard":                     models.CategoryRun,
	"running tours":                models.CategoryRun,
	"running-tours":                models.CategoryRun,
	"canicross":                    models.CategoryRun,
	"outras":                       models.CategoryRun,

	// Relays
	"estafetas":  models.CategoryRelay,
	"t-estafeta": models.CategoryRelay,

	// Cross country
	"corta-mato": models.CategoryCrossCountry,

	// Walking
	"caminhada": models.CategoryWalk,

	// Kids
	"kids":   models.CategoryKids,
	"t-kids": models.CategoryKids,

	// Saint Silvester road races
	"são silvestre": models.CategorySaintSilvester,
	"sao-silvestre": models.CategorySaintSilvester,
}

// Canonicalize maps upstream terms to the canonical category set and the
// fixed distances those categories imply. Unknown terms fall back to the
// generic run category; the returned slices are deduplicated and keep the
// order of first appearance.
func Canonicalize(upstream []string) (categories []string, dists []int) {
	seen := make(map[string]struct{})
	seenDist := make(map[int]struct{})

	for _, term := range upstream {
		category, ok := lookup(term)
		if !ok {
			category = models.CategoryRun
		}

		if _, dup := seen[category]; !dup {
			seen[category] = struct{}{}
			categories = append(categories, category)
		}

		if d, hasDist := distances[category]; hasDist {
			if _, dup := seenDist[d]; !dup {
				seenDist[d] = struct{}{}
				dists = append(dists, d)
			}
		}
	}

	return categories, dists
}

// Known reports whether the upstream term has an explicit mapping.
func Known(term string) bool {
	_, ok := lookup(term)
	return ok
}

func lookup(term string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(term))
	key = strings.TrimPrefix(key, "event_type-")

	c, ok := terms[key]
	return c, ok
}

package photos

import (
	"sort"
	"strings"
)

// GenericFallbackURL is returned when every other resolution layer misses.
// The caller never sees a failure.
const GenericFallbackURL = "https://images.unsplash.com/photo-1445205170230-053b83016050?w=400"

// staticCache maps descriptive search queries to curated stock photos. Loaded
// once at process start, never mutated.
var staticCache = map[string]string{
	"warm winter parka coat":         "https://images.unsplash.com/photo-1544022613-e87ca75a784a?w=400",
	"thermal base layer top":         "https://images.unsplash.com/photo-1556906781-9a412961c28c?w=400",
	"insulated winter boots":         "https://images.unsplash.com/photo-1542840843-3349799cded6?w=400",
	"wool knit beanie":               "https://images.unsplash.com/photo-1576871337622-98d48d1cf531?w=400",
	"long puffer jacket street":      "https://images.unsplash.com/photo-1539533389356-88eedd37eb4a?w=400",
	"chunky knit scarf":              "https://images.unsplash.com/photo-1457545195570-67f207084966?w=400",
	"wool overcoat classic":          "https://images.unsplash.com/photo-1544923246-77307dd654cb?w=400",
	"cashmere turtleneck sweater":    "https://images.unsplash.com/photo-1576566588028-4147f3842f27?w=400",
	"blue denim jacket classic":      "https://images.unsplash.com/photo-1551537482-f2075a1d41f2?w=400",
	"cozy crewneck sweater":          "https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?w=400",
	"slim fit dark jeans":            "https://images.unsplash.com/photo-1542272604-787c3835535d?w=400",
	"white leather sneakers":         "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=400",
	"beige trench coat":              "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?w=400",
	"light blue oxford shirt":        "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=400",
	"classic khaki chinos":           "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?w=400",
	"lightweight windbreaker jacket": "https://images.unsplash.com/photo-1559551409-dadc959f76b8?w=400",
	"cushioned running shoes":        "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400",
	"plain cotton t-shirt":           "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
	"classic pique polo shirt":       "https://images.unsplash.com/photo-1625910513413-c23b5fe4eab2?w=400",
	"retro chunky sneakers":          "https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?w=400",
	"white linen shirt":              "https://images.unsplash.com/photo-1604695573706-53170668f6a6?w=400",
	"tailored cotton shorts":         "https://images.unsplash.com/photo-1591195853828-11db59a44f6b?w=400",
	"wide brim straw hat":            "https://images.unsplash.com/photo-1529958030586-3aae4ca485ff?w=400",
	"floral hawaiian shirt":          "https://images.unsplash.com/photo-1517940310602-26535839fe84?w=400",
	"polarized uv sunglasses":        "https://images.unsplash.com/photo-1511499767150-a48a237f0083?w=400",
	"compact umbrella rain":          "https://images.unsplash.com/photo-1534309466160-70b22cc6252c?w=400",
	"snow gear winter accessories":   "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=400",
}

// lookupExact resolves a query against the curated cache verbatim.
func lookupExact(query string) (string, bool) {
	url, ok := staticCache[strings.ToLower(strings.TrimSpace(query))]
	return url, ok
}

// cacheKeys holds the static cache keys in a fixed order so score ties
// always resolve to the same entry.
var cacheKeys = sortedCacheKeys()

func sortedCacheKeys() []string {
	keys := make([]string, 0, len(staticCache))
	for key := range staticCache {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// lookupFuzzy scores every cache entry by the number of cross-matching
// substrings between the whitespace token sets of the query and the key, and
// returns the highest-scoring entry when its score is at least 2.
func lookupFuzzy(query string) (string, bool) {
	queryTokens := strings.Fields(strings.ToLower(query))
	if len(queryTokens) == 0 {
		return "", false
	}

	bestScore := 0
	bestURL := ""
	for _, key := range cacheKeys {
		score := crossMatchScore(queryTokens, strings.Fields(key))
		if score > bestScore {
			bestScore = score
			bestURL = staticCache[key]
		}
	}
	if bestScore >= 2 {
		return bestURL, true
	}
	return "", false
}

func crossMatchScore(a, b []string) int {
	score := 0
	for _, ta := range a {
		for _, tb := range b {
			if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				score++
			}
		}
	}
	return score
}

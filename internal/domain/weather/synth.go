package weather

import "strings"

// cityProfile is a realistic override for a well known city. Matching is by
// lowercase substring containment against the query, first entry wins, so
// table order matters.
type cityProfile struct {
	match       string
	name        string
	country     string
	temp        float64
	feelsLike   float64
	condition   string
	description string
	humidity    int
	wind        float64
}

var cityProfiles = []cityProfile{
	{"new york", "New York", "US", 12, 10, "Clouds", "scattered clouds", 60, 4.5},
	{"tokyo", "Tokyo", "JP", 16, 15, "Clear", "clear sky", 55, 3.0},
	{"london", "London", "GB", 9, 7, "Rain", "light rain", 78, 5.5},
	{"paris", "Paris", "FR", 11, 9, "Clouds", "overcast clouds", 70, 4.0},
	{"berlin", "Berlin", "DE", 8, 6, "Clouds", "broken clouds", 68, 4.8},
	{"madrid", "Madrid", "ES", 18, 17, "Clear", "clear sky", 40, 3.2},
	{"rome", "Rome", "IT", 19, 19, "Clear", "few clouds", 58, 2.8},
	{"moscow", "Moscow", "RU", -2, -7, "Snow", "light snow", 82, 5.0},
	{"beijing", "Beijing", "CN", 14, 12, "Clouds", "haze", 45, 3.6},
	{"shanghai", "Shanghai", "CN", 17, 16, "Clouds", "scattered clouds", 65, 4.2},
	{"hong kong", "Hong Kong", "HK", 25, 27, "Clouds", "partly cloudy", 75, 5.2},
	{"singapore", "Singapore", "SG", 30, 35, "Rain", "thundery showers", 84, 3.0},
	{"seoul", "Seoul", "KR", 13, 11, "Clear", "clear sky", 50, 3.4},
	{"sydney", "Sydney", "AU", 23, 23, "Clear", "sunny", 62, 6.0},
	{"melbourne", "Melbourne", "AU", 17, 16, "Clouds", "changeable clouds", 66, 7.2},
	{"mumbai", "Mumbai", "IN", 31, 36, "Clouds", "humid haze", 80, 4.0},
	{"delhi", "Delhi", "IN", 28, 30, "Clear", "hazy sunshine", 42, 2.6},
	{"bangkok", "Bangkok", "TH", 33, 39, "Clear", "hot and humid", 70, 2.4},
	{"dubai", "Dubai", "AE", 36, 40, "Clear", "clear sky", 35, 4.4},
	{"istanbul", "Istanbul", "TR", 15, 14, "Clouds", "scattered clouds", 64, 5.8},
	{"cairo", "Cairo", "EG", 27, 27, "Clear", "clear sky", 30, 4.6},
	{"lagos", "Lagos", "NG", 30, 34, "Rain", "tropical showers", 83, 3.8},
	{"nairobi", "Nairobi", "KE", 22, 22, "Clouds", "afternoon clouds", 55, 4.2},
	{"cape town", "Cape Town", "ZA", 20, 19, "Clear", "windy sunshine", 58, 8.5},
	{"toronto", "Toronto", "CA", 6, 2, "Clouds", "overcast clouds", 72, 6.2},
	{"vancouver", "Vancouver", "CA", 10, 8, "Rain", "steady drizzle", 85, 4.0},
	{"chicago", "Chicago", "US", 7, 2, "Clouds", "windy and cloudy", 65, 9.0},
	{"los angeles", "Los Angeles", "US", 22, 22, "Clear", "sunny", 45, 3.0},
	{"san francisco", "San Francisco", "US", 15, 13, "Clouds", "coastal fog", 75, 6.5},
	{"seattle", "Seattle", "US", 11, 9, "Rain", "light rain", 82, 3.8},
	{"miami", "Miami", "US", 29, 33, "Clouds", "humid and warm", 78, 5.0},
	{"boston", "Boston", "US", 8, 5, "Clouds", "brisk clouds", 62, 6.8},
	{"mexico city", "Mexico City", "MX", 20, 19, "Clear", "clear sky", 40, 2.8},
	{"sao paulo", "Sao Paulo", "BR", 24, 25, "Rain", "afternoon rain", 74, 3.2},
	{"rio", "Rio de Janeiro", "BR", 28, 31, "Clear", "sunny", 70, 4.0},
	{"buenos aires", "Buenos Aires", "AR", 18, 17, "Clear", "mild sunshine", 60, 5.4},
	{"lima", "Lima", "PE", 19, 19, "Clouds", "coastal overcast", 80, 3.6},
	{"amsterdam", "Amsterdam", "NL", 10, 8, "Rain", "drizzle", 80, 6.0},
	{"stockholm", "Stockholm", "SE", 4, 1, "Clouds", "grey clouds", 70, 4.6},
	{"oslo", "Oslo", "NO", 2, -2, "Snow", "light snow", 75, 3.8},
	{"helsinki", "Helsinki", "FI", 1, -3, "Snow", "snow flurries", 78, 4.4},
	{"reykjavik", "Reykjavik", "IS", 3, -2, "Clouds", "windy clouds", 72, 9.5},
	{"zurich", "Zurich", "CH", 9, 7, "Clouds", "alpine clouds", 68, 2.6},
	{"vienna", "Vienna", "AT", 10, 8, "Clouds", "broken clouds", 64, 3.8},
	{"athens", "Athens", "GR", 22, 22, "Clear", "clear sky", 48, 4.2},
}

var synthConditions = []struct {
	condition   string
	description string
}{
	{"Clear", "clear sky"},
	{"Clouds", "scattered clouds"},
	{"Rain", "light rain"},
}

// Synthesize builds a plausible snapshot for a location without upstream
// data. A profile hit gives realistic values; otherwise the location string
// is hashed into a deterministic base. Jitter keeps repeated queries for the
// same city visibly varying while staying plausible.
func Synthesize(location string, jitter func() float64) Snapshot {
	lower := strings.ToLower(location)
	for _, p := range cityProfiles {
		if strings.Contains(lower, p.match) {
			return Snapshot{
				Location:    p.name,
				Country:     p.country,
				Temperature: p.temp + jitter()*4 - 2,
				FeelsLike:   p.feelsLike + jitter()*4 - 2,
				Condition:   p.condition,
				Description: p.description,
				Humidity:    clampHumidity(p.humidity + int(jitter()*10) - 5),
				WindSpeed:   clampWind(p.wind + jitter()*2 - 1),
			}
		}
	}

	seed := 0
	for _, r := range location {
		seed += int(r)
	}
	cond := synthConditions[seed%3]
	base := 15 + float64(seed%20)

	return Snapshot{
		Location:    titleCase(location),
		Country:     "",
		Temperature: base + jitter()*4 - 2,
		FeelsLike:   base - 1 + jitter()*4 - 2,
		Condition:   cond.condition,
		Description: cond.description,
		Humidity:    clampHumidity(45 + seed%30 + int(jitter()*10) - 5),
		WindSpeed:   clampWind(2 + float64(seed%6) + jitter()*2 - 1),
	}
}

func clampHumidity(h int) int {
	if h < 10 {
		return 10
	}
	if h > 100 {
		return 100
	}
	return h
}

func clampWind(w float64) float64 {
	if w < 0 {
		return 0
	}
	return w
}

func titleCase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		runes := []rune(f)
		fields[i] = strings.ToUpper(string(runes[:1])) + string(runes[1:])
	}
	return strings.Join(fields, " ")
}

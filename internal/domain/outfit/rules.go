package outfit

import (
	"fmt"
	"math"
	"strings"

	"github.com/yanqian/weather-stylist/internal/domain/weather"
)

// Temperature bands index into the variation table below. Bounds are on the
// raw temperature, not feels-like.
type band int

const (
	bandExtremeCold band = iota
	bandCold
	bandMildCool
	bandComfortable
	bandWarm
	bandHot
)

func bandFor(temp float64) band {
	switch {
	case temp < 0:
		return bandExtremeCold
	case temp < 10:
		return bandCold
	case temp < 18:
		return bandMildCool
	case temp < 25:
		return bandComfortable
	case temp < 30:
		return bandWarm
	default:
		return bandHot
	}
}

var variationTable = map[band][]Variation{
	bandExtremeCold: {
		{Style: "Winter Essential", Items: []Item{
			{Name: "Heavy Parka", Query: "warm winter parka coat"},
			{Name: "Thermal Layers", Query: "thermal base layer top"},
			{Name: "Insulated Boots", Query: "insulated winter boots"},
			{Name: "Wool Beanie", Query: "wool knit beanie"},
		}},
		{Style: "Urban Winter", Items: []Item{
			{Name: "Puffer Jacket", Query: "long puffer jacket street style"},
			{Name: "Fleece Hoodie", Query: "fleece lined hoodie"},
			{Name: "Snow Sneakers", Query: "waterproof winter sneakers"},
			{Name: "Knit Scarf", Query: "chunky knit scarf"},
		}},
		{Style: "Classic Cold Weather", Items: []Item{
			{Name: "Wool Overcoat", Query: "wool overcoat classic"},
			{Name: "Cashmere Sweater", Query: "cashmere turtleneck sweater"},
			{Name: "Leather Gloves", Query: "leather winter gloves"},
			{Name: "Chelsea Boots", Query: "leather chelsea boots"},
		}},
	},
	bandCold: {
		{Style: "Casual Cool", Items: []Item{
			{Name: "Denim Jacket", Query: "blue denim jacket classic"},
			{Name: "Crewneck Sweater", Query: "cozy crewneck sweater"},
			{Name: "Slim Jeans", Query: "slim fit dark jeans"},
			{Name: "White Sneakers", Query: "white leather sneakers"},
		}},
		{Style: "Modern Edge", Items: []Item{
			{Name: "Bomber Jacket", Query: "black bomber jacket"},
			{Name: "Black Hoodie", Query: "minimal black hoodie"},
			{Name: "Cargo Pants", Query: "slim cargo pants"},
			{Name: "High-Top Sneakers", Query: "high top sneakers street"},
		}},
		{Style: "Timeless Chic", Items: []Item{
			{Name: "Trench Coat", Query: "beige trench coat"},
			{Name: "Knit Turtleneck", Query: "fitted knit turtleneck"},
			{Name: "Tailored Trousers", Query: "tailored wool trousers"},
			{Name: "Ankle Boots", Query: "suede ankle boots"},
		}},
	},
	bandMildCool: {
		{Style: "Smart Casual", Items: []Item{
			{Name: "Light Blazer", Query: "unstructured light blazer"},
			{Name: "Oxford Shirt", Query: "light blue oxford shirt"},
			{Name: "Chinos", Query: "classic khaki chinos"},
			{Name: "Loafers", Query: "penny loafers leather"},
		}},
		{Style: "Relaxed Comfort", Items: []Item{
			{Name: "Zip Cardigan", Query: "zip up knit cardigan"},
			{Name: "Long Sleeve Tee", Query: "plain long sleeve tee"},
			{Name: "Relaxed Jeans", Query: "relaxed fit jeans"},
			{Name: "Canvas Sneakers", Query: "canvas low sneakers"},
		}},
		{Style: "Active Ready", Items: []Item{
			{Name: "Windbreaker", Query: "lightweight windbreaker jacket"},
			{Name: "Performance Tee", Query: "athletic performance t-shirt"},
			{Name: "Track Pants", Query: "tapered track pants"},
			{Name: "Running Shoes", Query: "cushioned running shoes"},
		}},
	},
	bandComfortable: {
		{Style: "Everyday Casual", Items: []Item{
			{Name: "Cotton Tee", Query: "plain cotton t-shirt"},
			{Name: "Light Jeans", Query: "light wash jeans"},
			{Name: "Low-Top Sneakers", Query: "minimal low top sneakers"},
		}},
		{Style: "Business Casual", Items: []Item{
			{Name: "Polo Shirt", Query: "classic pique polo shirt"},
			{Name: "Slim Chinos", Query: "slim navy chinos"},
			{Name: "Suede Loafers", Query: "suede driving loafers"},
			{Name: "Leather Belt", Query: "brown leather belt"},
		}},
		{Style: "Streetwear Vibe", Items: []Item{
			{Name: "Graphic Tee", Query: "oversized graphic t-shirt"},
			{Name: "Wide-Leg Pants", Query: "wide leg street pants"},
			{Name: "Retro Sneakers", Query: "retro chunky sneakers"},
			{Name: "Bucket Hat", Query: "cotton bucket hat"},
		}},
	},
	bandWarm: {
		{Style: "Summer Breeze", Items: []Item{
			{Name: "Linen Shirt", Query: "white linen shirt"},
			{Name: "Cotton Shorts", Query: "tailored cotton shorts"},
			{Name: "Espadrilles", Query: "canvas espadrilles"},
		}},
		{Style: "Beach Ready", Items: []Item{
			{Name: "Tank Top", Query: "relaxed summer tank top"},
			{Name: "Swim Shorts", Query: "patterned swim shorts"},
			{Name: "Flip Flops", Query: "leather flip flops"},
			{Name: "Straw Hat", Query: "wide brim straw hat"},
		}},
		{Style: "Resort Casual", Items: []Item{
			{Name: "Camp Collar Shirt", Query: "camp collar resort shirt"},
			{Name: "Linen Trousers", Query: "loose linen trousers"},
			{Name: "Leather Sandals", Query: "strappy leather sandals"},
			{Name: "Sunglasses", Query: "classic aviator sunglasses"},
		}},
	},
	bandHot: {
		{Style: "Heat Wave", Items: []Item{
			{Name: "Breathable Tee", Query: "moisture wicking t-shirt"},
			{Name: "Running Shorts", Query: "lightweight running shorts"},
			{Name: "Mesh Sneakers", Query: "breathable mesh sneakers"},
			{Name: "Cap", Query: "sport baseball cap"},
		}},
		{Style: "Tropical Vibes", Items: []Item{
			{Name: "Hawaiian Shirt", Query: "floral hawaiian shirt"},
			{Name: "Board Shorts", Query: "quick dry board shorts"},
			{Name: "Slide Sandals", Query: "comfort slide sandals"},
		}},
		{Style: "Desert Cool", Items: []Item{
			{Name: "Loose Linen Shirt", Query: "oversized linen shirt"},
			{Name: "Light Cotton Pants", Query: "light cotton drawstring pants"},
			{Name: "Sun Hat", Query: "packable sun hat"},
			{Name: "UV Sunglasses", Query: "polarized uv sunglasses"},
		}},
	},
}

var (
	umbrellaItem = Item{Name: "Umbrella", Query: "compact umbrella rain"}
	snowGearItem = Item{Name: "Snow Gear", Query: "snow gear winter accessories"}
)

// Recommend maps a weather snapshot to exactly three outfit variations plus a
// note. Deterministic: identical input produces identical output, note
// included.
func Recommend(w weather.Snapshot) Recommendation {
	variations := cloneVariations(variationTable[bandFor(w.Temperature)])

	condition := strings.ToLower(w.Condition + " " + w.Description)
	var note strings.Builder

	if strings.Contains(condition, "rain") || strings.Contains(condition, "drizzle") {
		for i := range variations {
			variations[i].Items = append(variations[i].Items, umbrellaItem)
		}
		note.WriteString("☔ Rain expected! ")
	}
	if strings.Contains(condition, "snow") {
		for i := range variations {
			variations[i].Items = append(variations[i].Items, snowGearItem)
		}
		note.WriteString("❄️ Snowy weather! ")
	}
	if w.WindSpeed > 8 {
		note.WriteString("💨 Windy conditions! ")
	}
	if w.Humidity > 80 && w.Temperature > 20 {
		note.WriteString("🌡️ High humidity - choose breathable fabrics! ")
	}

	return Recommendation{
		Summary:    summaryFor(w),
		Note:       note.String(),
		Variations: variations,
	}
}

func summaryFor(w weather.Snapshot) string {
	return fmt.Sprintf("For %d°C (feels like %d°C) with %s",
		int(math.Round(w.Temperature)), int(math.Round(w.FeelsLike)), w.Description)
}

// cloneVariations deep-copies the static table entries so the post-processing
// appends never touch the shared table.
func cloneVariations(src []Variation) []Variation {
	out := make([]Variation, len(src))
	for i, v := range src {
		items := make([]Item, len(v.Items))
		copy(items, v.Items)
		out[i] = Variation{Style: v.Style, Items: items}
	}
	return out
}

package analytics

import "strings"

// CategoryOther is the fallback bucket for descriptions no rule matches.
const CategoryOther = "Other"

// categoryRule maps a set of description keywords to a category label.
// Rules are evaluated in order against the lowercased description and the
// first matching keyword wins.
type categoryRule struct {
	label    string
	keywords []string
}

var categoryRules = []categoryRule{
	{"Clothing", []string{"shirt", "jacket", "coat", "dress", "jeans", "pants", "hoodie", "sweater", "skirt", "blouse"}},
	{"Shoes", []string{"shoe", "sneaker", "boot", "heel", "sandal", "loafer", "cleat"}},
	{"Electronics", []string{"phone", "laptop", "tablet", "console", "controller", "headphone", "speaker", "camera", "monitor", "keyboard", "tv "}},
	{"Toys & Games", []string{"lego", "toy", "game", "puzzle", "doll", "figure", "plush"}},
	{"Furniture & Home", []string{"dresser", "chair", "table", "desk", "shelf", "lamp", "mirror", "cabinet", "rug", "decor"}},
	{"Kitchen", []string{"mug", "pan", "pot", "blender", "mixer", "knife", "dish", "kettle"}},
	{"Sports & Outdoors", []string{"bike", "bicycle", "golf", "ski", "skate", "fishing", "tent", "dumbbell", "weight", "kayak"}},
	{"Media", []string{"book", "dvd", "vinyl", "record", "cd ", "blu-ray", "magazine"}},
	{"Jewelry & Accessories", []string{"ring", "necklace", "bracelet", "watch", "earring", "purse", "bag", "wallet", "sunglasses"}},
}

// Categorize classifies a description into one of the fixed category
// buckets, falling back to Other.
func Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.label
			}
		}
	}
	return CategoryOther
}

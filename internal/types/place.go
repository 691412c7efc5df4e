package types

import "strings"

// Category is one of the place groups the recommender knows about.
// The values are the keys used in the place-vector table and in request payloads.
type Category string

const (
	CategoryTouristSpot   Category = "관광지"
	CategoryRestaurant    Category = "맛집"
	CategoryCafe          Category = "카페"
	CategoryAccommodation Category = "숙소"
)

// Categories lists the known categories in their canonical order.
var Categories = []Category{
	CategoryTouristSpot,
	CategoryRestaurant,
	CategoryCafe,
	CategoryAccommodation,
}

var categoryAliases = map[string]Category{
	"관광지":           CategoryTouristSpot,
	"tourist_spot":  CategoryTouristSpot,
	"맛집":            CategoryRestaurant,
	"restaurant":    CategoryRestaurant,
	"카페":            CategoryCafe,
	"cafe":          CategoryCafe,
	"숙소":            CategoryAccommodation,
	"accommodation": CategoryAccommodation,
}

var categorySlugs = map[Category]string{
	CategoryTouristSpot:   "tourist_spot",
	CategoryRestaurant:    "restaurant",
	CategoryCafe:          "cafe",
	CategoryAccommodation: "accommodation",
}

// ParseCategory resolves a Korean category name or its English alias.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryAliases[strings.TrimSpace(s)]
	return c, ok
}

// Slug returns the English identifier used by the content-based endpoints.
func (c Category) Slug() string {
	if s, ok := categorySlugs[c]; ok {
		return s
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}

// Place is a read-only place record loaded at startup.
type Place struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
	Rating    *float64 `json:"rating,omitempty"`
	Reviews   string   `json:"reviews,omitempty"`
}

// Key identifies a place for de-duplication: id (or name when the id is empty) plus category.
func (p Place) Key() string {
	id := p.ID
	if id == "" {
		id = p.Name
	}
	return id + "|" + p.Category
}

// RatingOrZero returns the rating, treating an unknown rating as 0.
func (p Place) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

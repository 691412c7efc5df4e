// Package itinerary turns ranked place lists into day-by-day itinerary
// options. Each option walks the same pools shifted by its own index so
// options differ without re-ranking.
package itinerary

import (
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/ranking"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

// DefaultOptions is the number of options built when the caller asks for none.
const DefaultOptions = 2

// Placeholder labels used when a pool has no candidates.
const (
	LabelCheckIn    = "숙소 체크인"
	LabelStay       = "숙소 휴식"
	LabelFreeTour   = "관광지 자유 일정"
	LabelFreeDining = "식당 자유 선택"
)

const (
	slotsPerDay       = 2
	lodgingCandidates = 3
)

// Titles is the pool of option titles. The first option gets
// Titles[titleOffset % len(Titles)].
var Titles = [...]string{
	"키워드 매칭 코스 A",
	"키워드 매칭 코스 B",
	"키워드 매칭 코스 C",
	"키워드 매칭 코스 D",
	"키워드 매칭 코스 E",
	"키워드 매칭 코스 F",
	"키워드 매칭 코스 G",
	"키워드 매칭 코스 H",
}

// Pools are the candidate lists an itinerary is drawn from. Tours already
// include cafes.
type Pools struct {
	Tours       []types.Place
	Restaurants []types.Place
	Lodging     []types.Place
}

// Candidates is how many ranked places of category a trip of days needs.
func Candidates(category types.Category, days int) int {
	switch category {
	case types.CategoryTouristSpot, types.CategoryRestaurant:
		return 5 * days
	case types.CategoryCafe:
		return 3 * days
	case types.CategoryAccommodation:
		return max(lodgingCandidates, days)
	default:
		return days
	}
}

// NewPools dedupes the ranked lists, merges cafes into the tour list and pads
// tours and restaurants to two per day.
func NewPools(tours, cafes, restaurants, lodging []types.Place, days int) Pools {
	merged := make([]types.Place, 0, len(tours)+len(cafes))
	merged = append(merged, ranking.Unique(tours)...)
	merged = append(merged, ranking.Unique(cafes)...)

	need := slotsPerDay * days
	return Pools{
		Tours:       ranking.EnsureSize(ranking.Unique(merged), need),
		Restaurants: ranking.EnsureSize(ranking.Unique(restaurants), need),
		Lodging:     ranking.Unique(lodging),
	}
}

// Assemble builds numOptions options of days days each. Option s places
// tours[(2d+s) % n] in the morning and tours[(2d+1+s) % n] in the afternoon of
// day d, and restaurants the same way at lunch and dinner. Every day but the
// last ends with the first lodging candidate. Empty pools yield placeholder
// items with a nil place id.
func Assemble(p Pools, days, numOptions, titleOffset int) []types.ItineraryOption {
	if numOptions <= 0 {
		numOptions = DefaultOptions
	}
	days = max(days, 0)
	titleOffset = ((titleOffset % len(Titles)) + len(Titles)) % len(Titles)

	var lodging *types.Place
	if len(p.Lodging) > 0 {
		lodging = &p.Lodging[0]
	}

	options := make([]types.ItineraryOption, numOptions)
	for s := range numOptions {
		ds := make([]types.Day, days)
		for d := range days {
			items := make([]types.Item, 0, 5)
			items = append(items,
				pick(p.Tours, 2*d+s, types.SlotMorning, "", LabelFreeTour, types.CategoryTouristSpot),
				pick(p.Restaurants, 2*d+s, types.SlotLunch, types.CategoryRestaurant, LabelFreeDining, types.CategoryRestaurant),
				pick(p.Tours, 2*d+1+s, types.SlotAfternoon, "", LabelFreeTour, types.CategoryTouristSpot),
				pick(p.Restaurants, 2*d+1+s, types.SlotDinner, types.CategoryRestaurant, LabelFreeDining, types.CategoryRestaurant),
			)
			if d < days-1 {
				items = append(items, lodgingItem(lodging, d))
			}
			ds[d] = types.Day{Day: d + 1, Items: items}
		}
		options[s] = types.ItineraryOption{
			Title: Titles[(s+titleOffset)%len(Titles)],
			Days:  ds,
		}
	}
	return options
}

// pick returns pool[i % len(pool)] as an item of slot. A non-empty category
// overrides the place's own category. An empty pool yields a placeholder.
func pick(pool []types.Place, i int, slot types.Slot, category types.Category, placeholder string, placeholderCategory types.Category) types.Item {
	if len(pool) == 0 {
		return types.Item{Label: placeholder, Category: placeholderCategory.String(), Slot: slot}
	}
	pl := pool[i%len(pool)]
	c := pl.Category
	if category != "" {
		c = category.String()
	}
	return types.Item{Label: pl.Name, Category: c, PlaceID: placeID(pl), Slot: slot}
}

func lodgingItem(lodging *types.Place, day int) types.Item {
	item := types.Item{Category: types.CategoryAccommodation.String(), Slot: types.SlotLodging}
	switch {
	case lodging != nil:
		item.Label = lodging.Name
		item.PlaceID = placeID(*lodging)
	case day == 0:
		item.Label = LabelCheckIn
	default:
		item.Label = LabelStay
	}
	return item
}

func placeID(p types.Place) *string {
	if p.ID == "" {
		return nil
	}
	id := p.ID
	return &id
}

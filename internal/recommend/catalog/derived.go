package catalog

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

var _ Catalog = (*DerivedCatalog)(nil)

// placeNamespace scopes the ids generated for places that arrive without one.
var placeNamespace = uuid.MustParse("5b0a3f9e-8c1d-4c52-9a53-2d6c1f7e4a10")

type reviewTemplate struct {
	fragment string
	review   string
}

// reviewTemplates are matched against place names in order; every matching
// fragment contributes its sentence.
var reviewTemplates = map[types.Category][]reviewTemplate{
	types.CategoryAccommodation: {
		{"성산", "성산일출봉 전망이 아름다워요. 일출 보기 좋습니다."},
		{"제주", "깨끗하고 편안한 숙소입니다. 위치도 좋아요."},
		{"바다", "바다뷰가 정말 아름다워요. 바다 소리를 들으며 휴식할 수 있어요."},
		{"한라산", "한라산 뷰가 좋은 숙소입니다. 자연을 느낄 수 있어요."},
		{"수영장", "수영장이 있어서 아이들이 좋아해요."},
		{"조식", "조식이 맛있어요. 신선한 재료를 사용해요."},
	},
	types.CategoryTouristSpot: {
		{"성산일출봉", "일출이 정말 아름다운 곳입니다. 바다도 깨끗해요."},
		{"한라산", "한라산 등반은 힘들지만 정상에서의 뷰는 최고입니다."},
		{"협재", "에메랄드빛 바다가 정말 아름다워요. 수영하기 좋아요."},
		{"천지연폭포", "폭포가 장관입니다. 사진 찍기 좋아요."},
		{"만장굴", "신비로운 동굴입니다. 가이드 설명도 좋아요."},
		{"우도", "제주도에서 가장 아름다운 섬 중 하나입니다."},
		{"테디베어", "다양한 테디베어를 볼 수 있는 박물관입니다."},
		{"민속촌", "제주의 전통 문화를 체험할 수 있는 곳입니다."},
	},
	types.CategoryRestaurant: {
		{"흑돼지", "흑돼지 고기가 정말 맛있어요. 양도 푸짐해요."},
		{"해산물", "신선한 해산물을 맛볼 수 있어요. 회도 맛있어요."},
		{"갈치", "제주 갈치조림이 정말 맛있는 곳입니다."},
		{"전복", "싱싱한 전복으로 만든 전복죽이 일품입니다."},
		{"옥돔", "제주 옥돔구이를 전문으로 하는 식당입니다."},
		{"카페", "커피도 맛있고 분위기도 좋아요."},
		{"한정식", "제주 전통 한정식을 맛볼 수 있어요."},
	},
	types.CategoryCafe: {
		{"바다뷰", "아름다운 바다를 보며 커피를 마실 수 있어요."},
		{"한라산", "한라산을 조망할 수 있는 고즈넉한 카페입니다."},
		{"오설록", "제주 차를 맛볼 수 있는 특별한 카페입니다."},
		{"스타벅스", "편리한 위치에 있는 카페입니다."},
		{"감성", "인테리어가 예쁜 감성적인 카페입니다."},
	},
}

var defaultReviews = map[types.Category]string{
	types.CategoryAccommodation: "깨끗하고 편안한 숙소입니다.",
	types.CategoryTouristSpot:   "제주도의 아름다운 곳입니다.",
	types.CategoryRestaurant:    "맛있는 음식을 맛볼 수 있는 곳입니다.",
	types.CategoryCafe:          "조용하고 분위기 좋은 카페입니다.",
}

// PlaceLister is satisfied by the embedding store.
type PlaceLister interface {
	Places() []types.Place
}

// DerivedCatalog builds reviewable places from the embedding store when no
// review database is configured. Reviews are assembled from sentences keyed
// by fragments of the place name and ratings are a stable function of the
// name in [4.0, 5.0].
type DerivedCatalog struct {
	source PlaceLister
}

func NewDerivedCatalog(source PlaceLister) *DerivedCatalog {
	return &DerivedCatalog{source: source}
}

func (c *DerivedCatalog) Places(_ context.Context) ([]types.Place, error) {
	in := c.source.Places()
	out := make([]types.Place, 0, len(in))
	for _, p := range in {
		out = append(out, Derive(p))
	}
	return out, nil
}

// Derive returns p with an English category slug, a synthesized review and a
// name-based rating. Unknown categories are treated as tourist spots.
func Derive(p types.Place) types.Place {
	category, ok := types.ParseCategory(p.Category)
	if !ok {
		category = types.CategoryTouristSpot
	}

	rating := NameRating(p.Name)
	out := p
	out.Category = category.Slug()
	out.Rating = &rating
	out.Reviews = SynthesizeReviews(p.Name, category)
	if out.ID == "" {
		out.ID = uuid.NewSHA1(placeNamespace, []byte(category.Slug()+"|"+p.Name)).String()
	}
	return out
}

// SynthesizeReviews joins the sentences of every template fragment found in
// name, or returns the category default when none matches.
func SynthesizeReviews(name string, category types.Category) string {
	var parts []string
	for _, t := range reviewTemplates[category] {
		if strings.Contains(name, t.fragment) {
			parts = append(parts, t.review)
		}
	}
	if len(parts) == 0 {
		if d, ok := defaultReviews[category]; ok {
			return d
		}
		return "좋은 곳입니다."
	}
	return strings.Join(parts, " ")
}

// NameRating maps name to 4.0 + (fnv32a(name) % 100) / 100, rounded to one
// decimal place.
func NameRating(name string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	r := 4.0 + float64(h.Sum32()%100)/100
	return math.Round(r*10) / 10
}

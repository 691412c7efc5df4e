package types

// Slot is a named position in a day of an itinerary.
type Slot string

const (
	SlotMorning   Slot = "MORNING"
	SlotLunch     Slot = "LUNCH"
	SlotAfternoon Slot = "AFTERNOON"
	SlotDinner    Slot = "DINNER"
	SlotLodging   Slot = "LODGING"
)

// RecommendRequest is the body of POST /recommendations/keyword-template.
type RecommendRequest struct {
	StartDate  string              `json:"startDate" validate:"required,datetime=2006-01-02" example:"2025-07-01"`
	EndDate    string              `json:"endDate" validate:"required,datetime=2006-01-02" example:"2025-07-03"`
	Travelers  int                 `json:"travelers" validate:"gte=1,lte=50" example:"2"`
	Keywords   map[string][]string `json:"keywords" validate:"dive,keys,required,endkeys,dive,required"`
	NumOptions *int                `json:"numOptions,omitempty" validate:"omitempty,gte=1,lte=8" example:"2"`
}

// RecommendResponse echoes the request and carries the generated itinerary options.
type RecommendResponse struct {
	StartDate        string                `json:"startDate"`
	EndDate          string                `json:"endDate"`
	Travelers        int                   `json:"travelers"`
	SelectedKeywords map[Category][]string `json:"selectedKeywords"`
	Options          []ItineraryOption     `json:"options"`
}

// ItineraryOption is one complete multi-day plan.
type ItineraryOption struct {
	Title string `json:"title"`
	Days  []Day  `json:"days"`
}

// Day is a single day of an itinerary option.
type Day struct {
	Day   int    `json:"day"`
	Items []Item `json:"items"`
}

// Item is one slot of a day. PlaceID is nil for placeholder entries such as a lodging check-in.
type Item struct {
	Label    string  `json:"label"`
	Category string  `json:"category"`
	PlaceID  *string `json:"placeId"`
	Slot     Slot    `json:"slot"`
}

// EnhancedKeywordRequest is the body of POST /recommendations/enhanced-keyword.
type EnhancedKeywordRequest struct {
	Category string   `json:"category" validate:"required" example:"tourist_spot"`
	Keywords []string `json:"keywords" validate:"required,min=1,dive,required"`
	Limit    *int     `json:"limit,omitempty" validate:"omitempty,gte=1,lte=50" example:"5"`
}

// KeywordWeightsRequest is the body of POST /recommendations/keyword-weights.
type KeywordWeightsRequest struct {
	Keywords []string `json:"keywords" validate:"required,min=1,dive,required"`
}

// StoreStats summarises the loaded embedding data for health checks.
type StoreStats struct {
	Words    int  `json:"words"`
	Places   int  `json:"places"`
	Dim      int  `json:"dim"`
	Fallback bool `json:"fallback"`
}

package gemini

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/planner"
)

func itineraryPrompt(req planner.Request) string {
	return fmt.Sprintf(`Plan a %d-day trip to %s. Interests: %s.
Generate a list of itinerary items.
Include specific transportation details if moving between cities or major spots (use realistic transport modes for Taiwan/Global).
For Metro in Taiwan (Taipei, Kaohsiung, etc.), specify the city.
Only set transportType, transportProvider and metroCity on TRANSPORT items.
Estimate costs in TWD.
Return JSON only.`, req.Days, req.Destination, req.Interests)
}

func estimatePrompt(origin, destination string, mode domain.TransportMode) string {
	return fmt.Sprintf(`Estimate the travel time and distance from %s to %s by %s.
Be concise. Return a JSON object with 'duration' (e.g. '20 mins') and 'distance' (e.g. '5 km').`,
		origin, destination, mode)
}

func itinerarySchema() *genai.Schema {
	nullable := true
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	enum := func(nullable *bool, values ...string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Enum: values, Nullable: nullable}
	}

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"dayIndex":    {Type: genai.TypeInteger},
				"startTime":   str("HH:mm format"),
				"endTime":     str("HH:mm format"),
				"title":       str(""),
				"description": str(""),
				"category": enum(nil,
					string(domain.CategoryTransport), string(domain.CategoryActivity),
					string(domain.CategoryFood), string(domain.CategoryAccommodation)),
				"cost":         {Type: genai.TypeNumber},
				"locationName": str(""),
				"transportType": enum(&nullable,
					string(domain.ModeMetro), string(domain.ModeBus), string(domain.ModeTrainHSR),
					string(domain.ModeTrainTRA), string(domain.ModeFlight), string(domain.ModeTaxi),
					string(domain.ModeWalk), string(domain.ModeOther)),
				"transportProvider": {Type: genai.TypeString, Nullable: &nullable},
				"metroCity": enum(&nullable,
					string(domain.MetroTaipei), string(domain.MetroTaichung), string(domain.MetroKaohsiung),
					string(domain.MetroTaoyuan), string(domain.MetroNone)),
			},
			Required: []string{"dayIndex", "startTime", "title", "category", "cost"},
		},
	}
}

func estimateSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"duration": {Type: genai.TypeString},
			"distance": {Type: genai.TypeString},
		},
	}
}

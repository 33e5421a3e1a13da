package registration

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// Suggestion is one entry of the subject/course autocomplete endpoint.
type Suggestion struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ParseSearchResponse decodes a search-results envelope ({"success": .., "data": [..]}) into raw sections.
func ParseSearchResponse(body []byte) ([]RawSection, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON response from server")
	}

	envelope := gjson.ParseBytes(body)
	data := envelope.Get("data")
	if !envelope.Get("success").Bool() || !data.IsArray() || len(data.Array()) == 0 {
		return nil, ErrNoSections
	}

	sections := make([]RawSection, 0, len(data.Array()))
	for i, item := range data.Array() {
		section, err := decodeSection(item.Value())
		if err != nil {
			return nil, fmt.Errorf("cannot decode section %d: %w", i, err)
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// ParseSuggestions decodes the autocomplete endpoint's array; anything unexpected yields no suggestions.
func ParseSuggestions(body []byte) []Suggestion {
	suggestions := make([]Suggestion, 0)
	gjson.ParseBytes(body).ForEach(func(_, value gjson.Result) bool {
		code := value.Get("code").String()
		if code == "" {
			return true
		}
		suggestions = append(suggestions, Suggestion{
			Code:        code,
			Description: value.Get("description").String(),
		})
		return true
	})
	return suggestions
}

func decodeSection(input any) (RawSection, error) {
	var section RawSection
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true, // Sequence numbers occasionally arrive as numbers
		Result:           &section,
	})
	if err != nil {
		return RawSection{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return RawSection{}, err
	}
	return section, nil
}

package survey

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/openimpact/aia-engine/internal/schemas"
	"github.com/openimpact/aia-engine/internal/types"
)

//go:embed aia_survey.json
var defaultSurveyJSON []byte

// Element types recognized in survey definitions. Choice-bearing types map
// to question kinds; "panel" groups nested elements. Any other type (text,
// comment, html) is informational and carries no score.
const (
	typeRadioGroup = "radiogroup"
	typeDropdown   = "dropdown"
	typeCheckbox   = "checkbox"
	typePanel      = "panel"
)

// rawChoice accepts both object choices {"value": ..., "text": ...} and
// bare string choices, which some definitions use interchangeably.
type rawChoice struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

func (c *rawChoice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Value = s
		c.Text = s
		return nil
	}

	type alias rawChoice
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = rawChoice(obj)
	return nil
}

type rawElement struct {
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	Title    string       `json:"title"`
	Choices  []rawChoice  `json:"choices"`
	Elements []rawElement `json:"elements"`
}

type rawPage struct {
	Name     string       `json:"name"`
	Elements []rawElement `json:"elements"`
}

type rawSurvey struct {
	Title string    `json:"title"`
	Pages []rawPage `json:"pages"`
}

// Load parses and indexes a survey definition document. It returns a
// MalformedSurveyError if required keys are missing, if two questions share
// an id, or if the document is not valid JSON. A survey is never partially
// indexed: any structural problem fails the whole load.
func Load(data []byte) (*types.Survey, error) {
	if err := schemas.ValidateSurveyDefinition(data); err != nil {
		return nil, &MalformedSurveyError{Message: "definition does not match survey schema", Cause: err}
	}

	var raw rawSurvey
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedSurveyError{Message: "invalid JSON", Cause: err}
	}

	if len(raw.Pages) == 0 {
		return nil, &MalformedSurveyError{Message: "definition has no pages"}
	}

	seen := make(map[string]bool)
	s := &types.Survey{Title: raw.Title}

	for i, page := range raw.Pages {
		if len(page.Elements) == 0 {
			return nil, &MalformedSurveyError{
				Message: fmt.Sprintf("page %d (%s) has no elements", i, page.Name),
			}
		}
		elements, err := convertElements(page.Elements, seen)
		if err != nil {
			return nil, err
		}
		s.Pages = append(s.Pages, types.Page{Name: page.Name, Elements: elements})
	}

	return s, nil
}

// LoadDefault loads the embedded Algorithmic Impact Assessment questionnaire.
func LoadDefault() (*types.Survey, error) {
	return Load(defaultSurveyJSON)
}

// DefaultDefinition returns the raw embedded questionnaire definition.
func DefaultDefinition() []byte {
	return defaultSurveyJSON
}

func convertElements(raw []rawElement, seen map[string]bool) ([]types.Element, error) {
	var elements []types.Element

	for _, el := range raw {
		if el.Type == "" {
			return nil, &MalformedSurveyError{
				Message: fmt.Sprintf("element %q is missing a type", el.Name),
			}
		}

		switch el.Type {
		case typePanel:
			if el.Name == "" {
				return nil, &MalformedSurveyError{Message: "panel is missing a name"}
			}
			children, err := convertElements(el.Elements, seen)
			if err != nil {
				return nil, err
			}
			elements = append(elements, types.Element{Panel: &types.Panel{
				Name:     el.Name,
				Title:    el.Title,
				Elements: children,
			}})

		case typeRadioGroup, typeDropdown, typeCheckbox:
			q, err := convertQuestion(el, seen)
			if err != nil {
				return nil, err
			}
			elements = append(elements, types.Element{Question: q})

		default:
			// Informational element (text, comment, html): not scorable,
			// not represented in the model.
		}
	}

	return elements, nil
}

func convertQuestion(el rawElement, seen map[string]bool) (*types.Question, error) {
	if el.Name == "" {
		return nil, &MalformedSurveyError{Message: "question is missing a name"}
	}
	if seen[el.Name] {
		return nil, &MalformedSurveyError{
			Message: fmt.Sprintf("duplicate question id %q", el.Name),
		}
	}
	seen[el.Name] = true

	if len(el.Choices) == 0 {
		return nil, &MalformedSurveyError{
			Message: fmt.Sprintf("question %q has no choices", el.Name),
		}
	}

	kind := types.QuestionSingleChoice
	if el.Type == typeCheckbox {
		kind = types.QuestionMultiChoice
	}

	q := &types.Question{ID: el.Name, Kind: kind, Title: el.Title}
	for _, c := range el.Choices {
		if c.Value == "" {
			return nil, &MalformedSurveyError{
				Message: fmt.Sprintf("question %q has a choice without a value", el.Name),
			}
		}
		q.Choices = append(q.Choices, types.Choice{Value: c.Value, Text: c.Text})
	}

	return q, nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// scanJSON decodes a json/jsonb column. NULL, empty and "null" leave dest untouched.
func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("json column: unsupported scan type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func valueJSON(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// StringSlice stores an ordered list of strings as a JSON array.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return valueJSON([]string(s))
}

func (s *StringSlice) Scan(value interface{}) error {
	*s = StringSlice{}
	return scanJSON(value, (*[]string)(s))
}

// JSONMap stores a free-form JSON object.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return valueJSON(map[string]interface{}(m))
}

func (m *JSONMap) Scan(value interface{}) error {
	*m = JSONMap{}
	return scanJSON(value, (*map[string]interface{})(m))
}

// AnswerPayload is the stored form of a submitted answer.
type AnswerPayload struct {
	Text           string `json:"value"`
	SelectedOption *int   `json:"selectedOption,omitempty"`
}

type answerPayloadJSON AnswerPayload

func (a AnswerPayload) Value() (driver.Value, error) {
	return valueJSON(answerPayloadJSON(a))
}

func (a *AnswerPayload) Scan(value interface{}) error {
	*a = AnswerPayload{}
	return scanJSON(value, (*answerPayloadJSON)(a))
}

// RecommendedStep is one entry of a stored learning path.
type RecommendedStep struct {
	UnitID    string `json:"unitId"`
	UnitTitle string `json:"unitTitle"`
	Priority  int    `json:"priority"`
	Reason    string `json:"reason"`
}

// RecommendedPath stores the learning path as a JSON array.
type RecommendedPath []RecommendedStep

func (p RecommendedPath) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return valueJSON([]RecommendedStep(p))
}

func (p *RecommendedPath) Scan(value interface{}) error {
	*p = RecommendedPath{}
	return scanJSON(value, (*[]RecommendedStep)(p))
}

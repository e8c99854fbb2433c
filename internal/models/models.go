package models

import (
	"bytes"
	"encoding/json"
)

type IssueReport struct {
	CitizenID   string `json:"citizenId"`
	Location    string `json:"location"`
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
	ImagePath   string `json:"imagePath"`
}

type IssueResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *IssueReport `json:"data,omitempty"`
}

type Prediction struct {
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence"`
}

// Predictions is ranked by descending confidence. It encodes as a JSON
// object whose key order follows the ranking.
type Predictions []Prediction

func (p Predictions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pred := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pred.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(pred.Confidence)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

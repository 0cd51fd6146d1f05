package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
)

const SeverityCritical = "critical"

type Application struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Finding struct {
	ID       FindingID `json:"id"`
	Title    string    `json:"title"`
	Severity string    `json:"severity,omitempty"`
	Category string    `json:"category,omitempty"`
	Type     string    `json:"type,omitempty"`
}

// FindingID holds a finding id that the API may send as a JSON string or a JSON number.
type FindingID struct {
	Value   string
	Numeric bool
}

func (id *FindingID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = FindingID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FindingID{Value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("finding id must be a string or number: %s", data)
	}
	*id = FindingID{Value: n.String(), Numeric: true}
	return nil
}

func (id FindingID) MarshalJSON() ([]byte, error) {
	if id.Numeric {
		return []byte(id.Value), nil
	}
	return json.Marshal(id.Value)
}

func (id FindingID) String() string {
	return id.Value
}

// Less orders two ids. Numbers compare by value, anything else compares as text.
func (id FindingID) Less(other FindingID) bool {
	if id.Numeric && other.Numeric {
		a, okA := new(big.Float).SetString(id.Value)
		b, okB := new(big.Float).SetString(other.Value)
		if okA && okB {
			return a.Cmp(b) < 0
		}
	}
	return id.Value < other.Value
}

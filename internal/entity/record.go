package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The catalog API is backed by PDO, so integers and flags frequently arrive
// as JSON strings. The record types below accept both spellings and are
// converted into typed entities once, at ingestion.

// FlexInt decodes a JSON number, numeric string or null.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("invalid integer %s", n)
	}
	*f = FlexInt(i)
	return nil
}

// FlexBool decodes true, 1 and "1" as set. Any other value, including
// unexpected numbers or strings, decodes as unset and never fails.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "1", "true", "TRUE", "True":
		*b = true
	default:
		*b = false
	}
	return nil
}

// IDList holds a list of ids that may be encoded as a comma-joined string
// ("3,7,12") or as a JSON array. Decoding never fails: unparsable entries
// are collected in Dropped so the caller can log them.
type IDList struct {
	IDs     []int
	Dropped []string
}

func (l *IDList) UnmarshalJSON(data []byte) error {
	l.IDs, l.Dropped = nil, nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			l.Dropped = append(l.Dropped, string(data))
			return nil
		}
		l.IDs, l.Dropped = ParseIDs(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			l.Dropped = append(l.Dropped, string(data))
			return nil
		}
		for _, item := range items {
			var n FlexInt
			if err := n.UnmarshalJSON(item); err != nil || n <= 0 {
				l.Dropped = append(l.Dropped, string(item))
				continue
			}
			l.IDs = append(l.IDs, int(n))
		}
	default:
		var n FlexInt
		if err := n.UnmarshalJSON(data); err != nil || n <= 0 {
			l.Dropped = append(l.Dropped, string(data))
			return nil
		}
		l.IDs = []int{int(n)}
	}
	return nil
}

func (l IDList) MarshalJSON() ([]byte, error) {
	if l.IDs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.IDs)
}

// ParseIDs splits a comma-delimited id string. Empty segments are ignored;
// segments that are not positive integers are returned in dropped.
func ParseIDs(s string) (ids []int, dropped []string) {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			dropped = append(dropped, part)
			continue
		}
		ids = append(ids, n)
	}
	return ids, dropped
}

// Role is a role tag. Roles are referenced by id on crew records and listed
// by the catalog for display names.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID   FlexInt `json:"id"`
		Name string  `json:"name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = int(aux.ID)
	r.Name = strings.TrimSpace(aux.Name)
	return nil
}

// CrewRecord is a crew row as served by the catalog.
type CrewRecord struct {
	ID         FlexInt  `json:"id"`
	Name       string   `json:"crew_name"`
	Roles      []Role   `json:"roles"`
	Leader     FlexBool `json:"leader"`
	Exclusions IDList   `json:"exclusions"`
	SourceID   FlexInt  `json:"source_id"`
	SourceName string   `json:"source_name,omitempty"`
	PlanetName string   `json:"planet_name,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
}

// ShipRecord is a ship row as served by the catalog.
type ShipRecord struct {
	ID           FlexInt `json:"id"`
	Name         string  `json:"ship_name"`
	SourceID     FlexInt `json:"source_id"`
	SourceName   string  `json:"source_name,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	ImageFullURL string  `json:"image_full_url,omitempty"`
}

// SourceRecord is a catalog source (expansion/box). Exclusions lists crew
// ids that must not be drafted when this source is selected.
type SourceRecord struct {
	ID         FlexInt `json:"source_id"`
	Name       string  `json:"source_name"`
	Exclusions IDList  `json:"exclusions"`
}

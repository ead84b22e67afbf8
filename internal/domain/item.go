package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ItemKind string

const (
	ItemKindImage ItemKind = "image"
	ItemKindText  ItemKind = "text"
)

// Valid reports whether k is one of the known item kinds.
func (k ItemKind) Valid() bool {
	return k == ItemKindImage || k == ItemKindText
}

// Item is a single image or text snippet placed on the board.
// Its index in the board slice is its only identity.
type Item struct {
	Kind     ItemKind `json:"kind"`
	Content  string   `json:"content"` // image URL or literal text
	Position Position `json:"position"`
}

// Position is a board-relative offset in CSS pixels.
// On the wire both fields are pixel strings ("10px").
type Position struct {
	Left float64
	Top  float64
}

type positionJSON struct {
	Left json.RawMessage `json:"left"`
	Top  json.RawMessage `json:"top"`
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Left string `json:"left"`
		Top  string `json:"top"`
	}{
		Left: FormatPixels(p.Left),
		Top:  FormatPixels(p.Top),
	})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var raw positionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	left, err := parsePixelField(raw.Left)
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	top, err := parsePixelField(raw.Top)
	if err != nil {
		return fmt.Errorf("top: %w", err)
	}
	p.Left, p.Top = left, top
	return nil
}

// FormatPixels renders v as a CSS pixel length, e.g. 10 -> "10px".
func FormatPixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ParsePixels accepts "10px", "10" or " 10.5px ".
func ParsePixels(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid pixel length %q", s)
	}
	return v, nil
}

func parsePixelField(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParsePixels(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid pixel length %s", raw)
	}
	return f, nil
}

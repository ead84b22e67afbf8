package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"moodboard/internal/domain"
)

// EncodeBoard serializes items into the persisted record format:
// a JSON array of {kind, content, position:{left, top}}.
func EncodeBoard(items []domain.Item) (string, error) {
	if items == nil {
		items = []domain.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode board: %w", err)
	}
	return string(data), nil
}

// wireItem accepts both the current record format and the flat one written
// by the first browser widget ({type, url|text, left, top}).
type wireItem struct {
	Kind     domain.ItemKind  `json:"kind"`
	Content  *string          `json:"content"`
	Position *domain.Position `json:"position"`

	Type string          `json:"type"`
	URL  string          `json:"url"`
	Text string          `json:"text"`
	Left json.RawMessage `json:"left"`
	Top  json.RawMessage `json:"top"`
}

// DecodeBoard parses a persisted record. Any malformed entry makes the whole
// record invalid.
func DecodeBoard(data string) ([]domain.Item, error) {
	trimmed := bytes.TrimSpace([]byte(data))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Item{}, nil
	}

	var wire []wireItem
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}

	items := make([]domain.Item, 0, len(wire))
	for i, w := range wire {
		it, err := w.item()
		if err != nil {
			return nil, fmt.Errorf("decode board: item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func (w wireItem) item() (domain.Item, error) {
	if w.Kind == "" && w.Type != "" {
		return w.legacyItem()
	}
	if !w.Kind.Valid() {
		return domain.Item{}, fmt.Errorf("%w: %q", ErrUnknownKind, w.Kind)
	}
	if w.Content == nil {
		return domain.Item{}, fmt.Errorf("missing content")
	}
	if w.Position == nil {
		return domain.Item{}, fmt.Errorf("missing position")
	}
	return domain.Item{Kind: w.Kind, Content: *w.Content, Position: *w.Position}, nil
}

func (w wireItem) legacyItem() (domain.Item, error) {
	it := domain.Item{Kind: domain.ItemKind(w.Type)}
	switch it.Kind {
	case domain.ItemKindImage:
		it.Content = w.URL
	case domain.ItemKindText:
		it.Content = w.Text
	default:
		return domain.Item{}, fmt.Errorf("%w: %q", ErrUnknownKind, w.Type)
	}

	pos, err := json.Marshal(map[string]json.RawMessage{"left": w.Left, "top": w.Top})
	if err != nil {
		return domain.Item{}, err
	}
	if err := json.Unmarshal(pos, &it.Position); err != nil {
		return domain.Item{}, fmt.Errorf("position: %w", err)
	}
	return it, nil
}

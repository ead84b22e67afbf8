// Package export writes the board out as JSON or as a PNG snapshot.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"moodboard/internal/domain"
)

// ErrNothingToExport is returned for an empty board where an image makes no sense.
var ErrNothingToExport = errors.New("nothing to export")

// WriteJSON writes items in the persisted record format, indented.
func WriteJSON(w io.Writer, items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

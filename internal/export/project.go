package export

import (
	"encoding/json"
	"fmt"
	"io"

	"PixelBoard/internal/state"
)

// Project is the on-disk form of an editable picture.
type Project struct {
	ID     string          `json:"id"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Rows   [][]state.Color `json:"rows"`
}

// SaveProject writes the current picture of doc as indented JSON.
func SaveProject(w io.Writer, doc *state.Document) error {
	g := doc.Grid()
	p := Project{ID: doc.ID(), Width: g.Width(), Height: g.Height(), Rows: g.Rows()}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// LoadProject reads a project and checks that its rows match the declared
// size.
func LoadProject(r io.Reader) (*Project, *state.Grid, error) {
	var p Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, nil, fmt.Errorf("decode project: %w", err)
	}
	g, err := state.GridFromRows(p.Rows)
	if err != nil {
		return nil, nil, fmt.Errorf("load project: %w", err)
	}
	if g.Width() != p.Width || g.Height() != p.Height {
		return nil, nil, fmt.Errorf("load project: %w: declared %dx%d, found %dx%d",
			state.ErrDimensions, p.Width, p.Height, g.Width(), g.Height())
	}
	return &p, g, nil
}

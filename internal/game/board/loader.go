package board

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlBoardFile is the top-level YAML structure for board layout documents.
type yamlBoardFile struct {
	Board Layout `yaml:"board"`
}

// ParseLayout parses and validates a board layout from YAML bytes:
//
//	board:
//	  goal: 90
//	  ladders:
//	    - {start: 1, end: 40}
//	  chutes:
//	    - {start: 24, end: 5}
//
// Postcondition: Returns a validated Layout or a non-nil error.
func ParseLayout(data []byte) (Layout, error) {
	var file yamlBoardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Layout{}, fmt.Errorf("parsing board YAML: %w", err)
	}
	if err := file.Board.Validate(); err != nil {
		return Layout{}, fmt.Errorf("validating board: %w", err)
	}
	return file.Board, nil
}

// MarshalLayout renders l in the document format ParseLayout accepts.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := yaml.Marshal(yamlBoardFile{Board: l})
	if err != nil {
		return nil, fmt.Errorf("encoding board YAML: %w", err)
	}
	return data, nil
}

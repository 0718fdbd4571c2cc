// ABOUTME: Reads display metadata from a local episode audio file
// ABOUTME: Used to fill in episode title/artist when the review file omits them

package player

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// Metadata holds display tags read from an episode audio file
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// ReadMetadata reads ID3/MP4 tags from a local audio file. Missing or
// untagged files are reported as errors; callers treat them as cosmetic.
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio tags: %w", err)
	}

	return &Metadata{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}, nil
}

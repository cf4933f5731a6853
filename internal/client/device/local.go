package device

import (
	"context"
	"os"
)

// PathGallery is the terminal stand-in for a photo library: it asks the
// user for a file path and validates it. An empty answer is a cancellation;
// an unreadable file is a denial.
type PathGallery struct {
	ask func() (string, error)
}

// NewPathGallery builds a gallery around an interactive prompt function.
func NewPathGallery(ask func() (string, error)) *PathGallery {
	return &PathGallery{ask: ask}
}

func (g *PathGallery) Pick(_ context.Context) (PhotoResult, error) {
	path, err := g.ask()
	if err != nil {
		return PhotoResult{}, err
	}
	if path == "" {
		return PhotoResult{Outcome: Cancelled}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return PhotoResult{Outcome: Cancelled}, nil
		}
		return PhotoResult{Outcome: Denied}, nil
	}
	if info.IsDir() {
		return PhotoResult{Outcome: Cancelled}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return PhotoResult{Outcome: Denied}, nil
	}
	f.Close()

	return PhotoResult{Outcome: Granted, Path: path}, nil
}

// StaticLocator serves a fixed position, typically from configuration.
// Without a configured position the capability counts as denied, the same
// shape a refused OS permission prompt would have.
type StaticLocator struct {
	pos *Position
}

func NewStaticLocator(pos *Position) *StaticLocator {
	return &StaticLocator{pos: pos}
}

func (l *StaticLocator) Current(_ context.Context) (Position, Outcome, error) {
	if l.pos == nil {
		return Position{}, Denied, nil
	}
	return *l.pos, Granted, nil
}

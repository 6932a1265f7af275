package xdmf

import (
	"fmt"
	"strings"
)

// Locator names a dataset inside a container file, e.g. "disk_2d.h5:/data0".
type Locator struct {
	Container string
	Path      string
}

func (l Locator) String() string {
	return l.Container + ":" + l.Path
}

// ResolveLocator splits s at its first colon. Later colons belong to the
// internal path. No normalization or existence check is done.
func ResolveLocator(s string) (Locator, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return Locator{}, fmt.Errorf("xdmf: locator %q: no ':' separator: %w", s, ErrMalformedLocator)
	}
	return Locator{Container: s[:i], Path: s[i+1:]}, nil
}

// ResolveLocatorStrict is ResolveLocator that also rejects an empty internal path.
func ResolveLocatorStrict(s string) (Locator, error) {
	loc, err := ResolveLocator(s)
	if err != nil {
		return Locator{}, err
	}
	if loc.Path == "" {
		return Locator{}, fmt.Errorf("xdmf: locator %q: empty dataset path: %w", s, ErrMalformedLocator)
	}
	return loc, nil
}

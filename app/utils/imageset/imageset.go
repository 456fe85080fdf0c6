// Package imageset holds the list arithmetic behind a product's ordered,
// bounded image list. Position 0 is the primary image. Inputs are never
// mutated.
package imageset

import "github.com/pkg/errors"

var ErrIndexOutOfRange = errors.New("image index out of range")

// Remaining is how many more images fit below max.
func Remaining(images []string, max int) int {
	if n := max - len(images); n > 0 {
		return n
	}
	return 0
}

// Append returns images followed by added, truncated to max entries.
func Append(images, added []string, max int) []string {
	out := make([]string, 0, len(images)+len(added))
	out = append(out, images...)
	out = append(out, added...)
	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// Remove drops every occurrence of url. The bool reports whether it was present.
func Remove(images []string, url string) ([]string, bool) {
	out := make([]string, 0, len(images))
	found := false
	for _, img := range images {
		if img == url {
			found = true
			continue
		}
		out = append(out, img)
	}
	return out, found
}

// Promote moves url to the front keeping the others in order. The bool is
// false when nothing changes: url absent or already primary.
func Promote(images []string, url string) ([]string, bool) {
	if len(images) == 0 || images[0] == url || !Contains(images, url) {
		return images, false
	}
	out := make([]string, 0, len(images))
	out = append(out, url)
	for _, img := range images {
		if img != url {
			out = append(out, img)
		}
	}
	return out, true
}

// ReplaceAt returns a copy with images[index] set to url, and the old value.
func ReplaceAt(images []string, index int, url string) ([]string, string, error) {
	if index < 0 || index >= len(images) {
		return nil, "", errors.Wrapf(ErrIndexOutOfRange, "index %d of %d", index, len(images))
	}
	out := make([]string, len(images))
	copy(out, images)
	old := out[index]
	out[index] = url
	return out, old, nil
}

func Contains(images []string, url string) bool {
	for _, img := range images {
		if img == url {
			return true
		}
	}
	return false
}

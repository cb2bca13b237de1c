package container

import (
	"slices"
)

// Tag is one metadata block embedded in a file, held in normalized form:
// a map of normalized keys to text values plus an ordered picture list.
//
// The capability surface is the same for every tag family; a codec decides
// at encode time which items its native key system can actually carry and
// silently drops the rest (an ID3v1 trailer cannot store lyrics, a RIFF
// INFO chunk cannot store replay gain).
type Tag struct {
	typ TagType

	// Vendor is the Vorbis comment vendor string. Only the Vorbis codec
	// reads or writes it; it is preserved so rewrites keep the original
	// encoder identification.
	Vendor string

	items    map[string]string
	pictures []Picture
}

// NewTag creates an empty tag of the given family.
func NewTag(typ TagType) *Tag {
	return &Tag{
		typ:   typ,
		items: make(map[string]string),
	}
}

// Type returns the tag's format family.
func (t *Tag) Type() TagType {
	return t.typ
}

// Get returns the text value stored under a normalized key.
// The second return is false if the key is not present; an empty string
// stored under a key is distinct from the key being absent.
func (t *Tag) Get(key string) (string, bool) {
	v, ok := t.items[key]
	return v, ok
}

// Set stores a text value under a normalized key, replacing any previous
// value.
func (t *Tag) Set(key, value string) {
	t.items[key] = value
}

// Remove deletes a key entirely. Removing a missing key is a no-op.
func (t *Tag) Remove(key string) {
	delete(t.items, key)
}

// Keys returns all present keys in sorted order, so encoders emit
// deterministic output.
func (t *Tag) Keys() []string {
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of stored items, pictures excluded.
func (t *Tag) Len() int {
	return len(t.items)
}

// PictureCount returns the number of embedded pictures.
func (t *Tag) PictureCount() int {
	return len(t.pictures)
}

// PictureAt returns the picture at index i.
func (t *Tag) PictureAt(i int) (Picture, bool) {
	if i < 0 || i >= len(t.pictures) {
		return Picture{}, false
	}
	return t.pictures[i], true
}

// Pictures returns the ordered picture list. The slice is a copy; the
// payloads are shared.
func (t *Tag) Pictures() []Picture {
	return slices.Clone(t.pictures)
}

// SetPictureAt overwrites the picture at index i. An index at or beyond
// the current length appends instead of failing; the artwork reconciler
// depends on this append-on-overflow behavior.
func (t *Tag) SetPictureAt(i int, p Picture) {
	if i < 0 {
		return
	}
	if i >= len(t.pictures) {
		t.pictures = append(t.pictures, p)
		return
	}
	t.pictures[i] = p
}

// RemovePictureAt removes the picture at index i, shifting later entries
// down. Out-of-range indices are ignored.
func (t *Tag) RemovePictureAt(i int) {
	if i < 0 || i >= len(t.pictures) {
		return
	}
	t.pictures = slices.Delete(t.pictures, i, i+1)
}

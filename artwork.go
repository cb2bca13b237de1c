package musictag

import (
	"bytes"

	"github.com/subframe7536/music-tag-native/internal/container"
)

// Picture is one embedded artwork item. CoverType is the classifier
// string ("Cover Art (Front)", "Media", ...); MIMEType and Description
// may be empty.
//
// Pictures cross the facade boundary by value: the payload of a
// returned Picture is a copy, so mutating it never affects stored state
// until it is explicitly set back.
type Picture struct {
	CoverType   string
	MIMEType    string
	Description string
	Data        []byte
}

// FrontCover builds a front-cover Picture around data.
func FrontCover(mimeType string, data []byte) Picture {
	return Picture{
		CoverType: container.PictureTypeName(container.PictureTypeFrontCover),
		MIMEType:  mimeType,
		Data:      data,
	}
}

// Artwork returns the ordered artwork list of the selected tag, or
// false when the tag carries no pictures.
func (s *Session) Artwork() ([]Picture, bool, error) {
	tag, err := s.currentTag()
	if err != nil {
		return nil, false, err
	}
	stored := tag.Pictures()
	if len(stored) == 0 {
		return nil, false, nil
	}
	out := make([]Picture, len(stored))
	for i, p := range stored {
		out[i] = Picture{
			CoverType:   container.PictureTypeName(p.Type),
			MIMEType:    p.MIMEType,
			Description: p.Description,
			Data:        bytes.Clone(p.Data),
		}
	}
	return out, true, nil
}

// SetArtwork reconciles the stored artwork list against want. An empty
// or nil want removes all stored pictures.
func (s *Session) SetArtwork(want []Picture) error {
	tag, err := s.currentTag()
	if err != nil {
		return err
	}
	target := make([]container.Picture, len(want))
	for i, p := range want {
		target[i] = container.Picture{
			Type:        container.PictureTypeCode(p.CoverType),
			MIMEType:    p.MIMEType,
			Description: p.Description,
			Data:        bytes.Clone(p.Data),
		}
	}
	reconcilePictures(tag, target)
	return nil
}

// pictureOps is the indexed picture surface the reconciler drives.
// SetPictureAt must append when the index is at or past the current
// count; the reconciler relies on that instead of a separate append
// operation.
type pictureOps interface {
	PictureCount() int
	SetPictureAt(i int, p container.Picture)
	RemovePictureAt(i int)
}

// reconcilePictures edits the stored list into want with positional
// operations: overwrite each index up to the shorter length (indices
// past the current count append), then remove surplus entries from the
// highest index down so pending removals never shift.
func reconcilePictures(ops pictureOps, want []container.Picture) {
	current := ops.PictureCount()
	for i, p := range want {
		ops.SetPictureAt(i, p)
	}
	for i := current - 1; i >= len(want); i-- {
		ops.RemovePictureAt(i)
	}
}

package container

// File is a parsed audio container: its format, technical properties, and
// the tags found in it, in the order the container presents them.
type File struct {
	Format Format
	Props  Properties

	tags []*Tag
}

// NewFile creates a File for a format with no tags yet.
func NewFile(format Format, props Properties) *File {
	return &File{Format: format, Props: props}
}

// AddTag appends a tag to the file's tag collection, preserving native
// order.
func (f *File) AddTag(t *Tag) {
	f.tags = append(f.tags, t)
}

// Tags returns the file's tag collection in native order.
func (f *File) Tags() []*Tag {
	return f.tags
}

// PrimaryTag returns the tag of the format's designated primary family,
// or nil if the file does not carry one.
func (f *File) PrimaryTag() *Tag {
	primary := f.Format.PrimaryTagType()
	for _, t := range f.tags {
		if t.typ == primary {
			return t
		}
	}
	return nil
}

// FirstTag returns the first tag in native order, or nil if the file
// carries no tags.
func (f *File) FirstTag() *Tag {
	if len(f.tags) == 0 {
		return nil
	}
	return f.tags[0]
}

// Tag returns the tag of the given family, or nil.
func (f *File) Tag(typ TagType) *Tag {
	for _, t := range f.tags {
		if t.typ == typ {
			return t
		}
	}
	return nil
}

// Lossless reports whether the container stores audio losslessly.
func (f *File) Lossless() bool {
	return f.Format.Lossless()
}

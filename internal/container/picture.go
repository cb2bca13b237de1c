package container

// Picture is an embedded image: a cover-type classifier, an optional MIME
// type, an optional description, and the raw payload.
type Picture struct {
	// Type is the picture type code from the ID3v2 APIC / FLAC PICTURE
	// type table (3 = front cover).
	Type byte

	MIMEType    string
	Description string
	Data        []byte
}

// PictureTypeFrontCover is the type code for front cover art, the default
// classification for new pictures.
const PictureTypeFrontCover byte = 3

// pictureTypeNames maps picture type codes to the APE-style key names the
// public API uses as classifier strings. Entries follow the ID3v2 APIC
// picture type table.
var pictureTypeNames = map[byte]string{
	0:  "Other",
	1:  "Png Icon",
	2:  "Icon",
	3:  "Cover Art (Front)",
	4:  "Cover Art (Back)",
	5:  "Leaflet",
	6:  "Media",
	7:  "Lead Artist",
	8:  "Artist",
	9:  "Conductor",
	10: "Band",
	11: "Composer",
	12: "Lyricist",
	13: "Recording Location",
	14: "During Recording",
	15: "During Performance",
	16: "Video Capture",
	17: "Fish",
	18: "Illustration",
	19: "Band Logotype",
	20: "Publisher Logotype",
}

// PictureTypeName returns the classifier string for a picture type code.
// Unknown codes report as "Other".
func PictureTypeName(code byte) string {
	if name, ok := pictureTypeNames[code]; ok {
		return name
	}
	return "Other"
}

// PictureTypeCode returns the type code for a classifier string. Unknown
// names map to 0 ("Other"), mirroring the lenient direction of the name
// lookup.
func PictureTypeCode(name string) byte {
	for code, n := range pictureTypeNames {
		if n == name {
			return code
		}
	}
	return 0
}

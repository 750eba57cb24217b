// Package searchindex holds the two collections of field indexes — text
// and number — that together answer search queries against a built
// collection. An Index is produced once via a Builder and is read-only
// thereafter; any number of queries may run against it concurrently.
package searchindex

// TextField enumerates the text-valued song attributes that can be
// indexed and queried. The enumeration is closed: unknown field names
// are rejected by the query parser, never silently treated as empty.
type TextField int

const (
	Album TextField = iota
	AlbumArtist
	Artist
	Composer
	Genre
	Label
	Lyricist
	Path
	Title
)

// textFieldNames maps every TextField to its grammar token. It is a map
// and has no iteration order; AllTextFields gives the fixed order.
var textFieldNames = map[TextField]string{
	Album:       "album",
	AlbumArtist: "albumartist",
	Artist:      "artist",
	Composer:    "composer",
	Genre:       "genre",
	Label:       "label",
	Lyricist:    "lyricist",
	Path:        "path",
	Title:       "title",
}

// String returns the lowercase grammar token for a TextField.
func (f TextField) String() string {
	return textFieldNames[f]
}

// AllTextFields returns every TextField, in a fixed order.
func AllTextFields() []TextField {
	return []TextField{Album, AlbumArtist, Artist, Composer, Genre, Label, Lyricist, Path, Title}
}

// TextFieldByName returns the TextField for a lowercase grammar token,
// and whether it matched a known field.
func TextFieldByName(name string) (TextField, bool) {
	for f, n := range textFieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// NumberField enumerates the integer-valued song attributes.
type NumberField int

const (
	Year NumberField = iota
	TrackNumber
	DiscNumber
)

var numberFieldNames = map[NumberField]string{
	Year:        "year",
	TrackNumber: "track",
	DiscNumber:  "disc",
}

// String returns the lowercase grammar token for a NumberField.
func (f NumberField) String() string {
	return numberFieldNames[f]
}

// AllNumberFields returns every NumberField, in a fixed order.
func AllNumberFields() []NumberField {
	return []NumberField{Year, TrackNumber, DiscNumber}
}

// NumberFieldByName returns the NumberField for a lowercase grammar
// token, and whether it matched a known field.
func NumberFieldByName(name string) (NumberField, bool) {
	for f, n := range numberFieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

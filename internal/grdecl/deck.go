package grdecl

import "slices"

// Keywords the chopper knows by name.
const (
	KeywordSpecGrid = "SPECGRID"
	KeywordDimens   = "DIMENS"
	KeywordCoord    = "COORD"
	KeywordZcorn    = "ZCORN"
	KeywordActnum   = "ACTNUM"
	KeywordPoro     = "PORO"
	KeywordPermX    = "PERMX"
	KeywordPermY    = "PERMY"
	KeywordPermZ    = "PERMZ"
	KeywordSatnum   = "SATNUM"
)

// integerKeywords decode to []int; every other data keyword decodes to []float64.
var integerKeywords = map[string]bool{
	KeywordActnum: true,
	KeywordSatnum: true,
	"FIPNUM":      true,
	"EQLNUM":      true,
	"PVTNUM":      true,
	"MULTNUM":     true,
	"IMBNUM":      true,
}

// IsIntegerKeyword reports whether name holds integer values.
func IsIntegerKeyword(name string) bool {
	return integerKeywords[name]
}

// Deck is an in-memory grid deck: dimensions plus named per-keyword arrays.
// Arrays handed out by FloatField and IntField are shared, not copied;
// callers must treat them as read-only.
type Deck struct {
	nx, ny, nz int
	floats     map[string][]float64
	ints       map[string][]int
	order      []string
}

// NewDeck returns an empty deck with the given dimensions.
func NewDeck(nx, ny, nz int) *Deck {
	return &Deck{
		nx:     nx,
		ny:     ny,
		nz:     nz,
		floats: make(map[string][]float64),
		ints:   make(map[string][]int),
	}
}

// Dimensions returns the cell counts along I, J and K.
func (d *Deck) Dimensions() (nx, ny, nz int) {
	return d.nx, d.ny, d.nz
}

// SetDimensions replaces the deck dimensions.
func (d *Deck) SetDimensions(nx, ny, nz int) {
	d.nx, d.ny, d.nz = nx, ny, nz
}

// HasField reports whether the named array is present.
func (d *Deck) HasField(name string) bool {
	if _, ok := d.floats[name]; ok {
		return true
	}
	_, ok := d.ints[name]
	return ok
}

// FloatField returns the named floating-point array, or nil when absent.
func (d *Deck) FloatField(name string) []float64 {
	return d.floats[name]
}

// IntField returns the named integer array, or nil when absent.
func (d *Deck) IntField(name string) []int {
	return d.ints[name]
}

// SetFloatField stores a floating-point array under name.
func (d *Deck) SetFloatField(name string, values []float64) {
	delete(d.ints, name)
	d.floats[name] = values
	d.touch(name)
}

// SetIntField stores an integer array under name.
func (d *Deck) SetIntField(name string, values []int) {
	delete(d.floats, name)
	d.ints[name] = values
	d.touch(name)
}

// Keywords lists the data keywords in the order they were first stored.
func (d *Deck) Keywords() []string {
	return slices.Clone(d.order)
}

func (d *Deck) touch(name string) {
	if !slices.Contains(d.order, name) {
		d.order = append(d.order, name)
	}
}

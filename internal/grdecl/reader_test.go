package grdecl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallDeck = `-- two by one by one test grid
RUNSPEC
GRID
SPECGRID
 2 1 1 1 F /
GRIDUNIT
 'METRES' / 
COORD
 0 0 0 0 0 10   1 0 0 1 0 10   2 0 0 2 0 10
 0 1 0 0 1 10   1 1 0 1 1 10   2 1 0 2 1 10
/
ZCORN
 4*0 4*0
 4*10 4*10 /
ACTNUM 1 0 /
PORO
 2*0.25 -- trailing comment
/
`

func TestRead_SmallDeck(t *testing.T) {
	t.Parallel()
	d, err := Read(strings.NewReader(smallDeck))
	require.NoError(t, err)

	nx, ny, nz := d.Dimensions()
	assert.Equal(t, [3]int{2, 1, 1}, [3]int{nx, ny, nz})
	assert.Len(t, d.FloatField(KeywordCoord), 36)
	assert.Len(t, d.FloatField(KeywordZcorn), 16)
	assert.Equal(t, []int{1, 0}, d.IntField(KeywordActnum))
	assert.Nil(t, d.FloatField(KeywordActnum))
	assert.Equal(t, []float64{0.25, 0.25}, d.FloatField(KeywordPoro))
	assert.True(t, d.HasField(KeywordPoro))
	assert.False(t, d.HasField(KeywordPermX))
	assert.False(t, d.HasField("GRIDUNIT"))
	assert.Equal(t, []string{KeywordCoord, KeywordZcorn, KeywordActnum, KeywordPoro}, d.Keywords())
}

func TestRead_Dimens(t *testing.T) {
	t.Parallel()
	d, err := Read(strings.NewReader("DIMENS\n3 4 5 /\n"))
	require.NoError(t, err)
	nx, ny, nz := d.Dimensions()
	assert.Equal(t, [3]int{3, 4, 5}, [3]int{nx, ny, nz})
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		line    int
		keyword string
	}{
		{"no dimensions", "PORO\n1 /\n", 0, ""},
		{"unterminated", "SPECGRID\n1 1 1 1 F /\nPORO\n0.1\n", 3, "PORO"},
		{"bad value", "SPECGRID\n1 1 1 1 F /\nPORO\nabc /\n", 3, "PORO"},
		{"short specgrid", "SPECGRID\n1 1 /\n", 1, "SPECGRID"},
		{"include", "INCLUDE\n'other.grdecl' /\n", 1, "INCLUDE"},
		{"stray number", "SPECGRID\n1 1 1 1 F /\n42\n", 3, ""},
		{"defaulted", "SPECGRID\n1 1 1 1 F /\nPORO\n3* /\n", 3, "PORO"},
		{"huge repeat", "SPECGRID\n1 1 1 1 F /\nPORO\n99999999999*1 /\n", 3, "PORO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.keyword, pe.Keyword)
		})
	}
}

func TestRead_CommentMarkerInsideQuotes(t *testing.T) {
	t.Parallel()

	input := "SPECGRID\n1 1 1 1 F /\nGRIDUNIT\n'METRES--x' \"a--b\" / -- units\nPORO\n0.3 -- porosity\n/\n"
	d, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3}, d.FloatField("PORO"))
	assert.False(t, d.HasField("GRIDUNIT"))
}

func TestStripComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"1 2 3 -- note", "1 2 3 "},
		{"-- whole line", ""},
		{"'a--b' /", "'a--b' /"},
		{"'a--b' -- tail", "'a--b' "},
		{"\"x--y\" 'p' --", "\"x--y\" 'p' "},
		{"'unterminated -- quote", "'unterminated -- quote"},
		{"4*-1.5 /", "4*-1.5 /"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripComment(tt.in), "stripComment(%q)", tt.in)
	}
}

func TestEncodeDeck_ReadBack(t *testing.T) {
	t.Parallel()
	src, err := Read(strings.NewReader(smallDeck))
	require.NoError(t, err)
	src.SetIntField(KeywordSatnum, []int{3, 3})

	var buf bytes.Buffer
	props := []string{KeywordActnum, KeywordPoro, KeywordSatnum}
	require.NoError(t, EncodeDeck(&buf, src, props))

	got, err := Read(&buf)
	require.NoError(t, err)

	for _, name := range []string{KeywordCoord, KeywordZcorn, KeywordPoro} {
		if diff := cmp.Diff(src.FloatField(name), got.FloatField(name)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
	for _, name := range []string{KeywordActnum, KeywordSatnum} {
		if diff := cmp.Diff(src.IntField(name), got.IntField(name)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestDeck_SetFieldSwitchesKind(t *testing.T) {
	t.Parallel()
	d := NewDeck(1, 1, 1)
	d.SetFloatField("NTG", []float64{0.5})
	d.SetIntField("NTG", []int{1})
	assert.Nil(t, d.FloatField("NTG"))
	assert.Equal(t, []int{1}, d.IntField("NTG"))
	assert.Equal(t, []string{"NTG"}, d.Keywords())
}

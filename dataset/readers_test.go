package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWeightHeight(t *testing.T) {
	input := `"Gender","Height","Weight"
"Male",73.847017017515,241.893563180437
"Female",39.3700787,2.2046226218
`
	ds, err := ReadWeightHeight(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"1", "2"}, ds.Labels)
	assert.InDelta(t, 1.8757, ds.Items[0][0], 1e-3)
	assert.InDelta(t, 109.72, ds.Items[0][1], 1e-2)
	assert.InDelta(t, 1, ds.Items[1][0], 1e-6)
	assert.InDelta(t, 1, ds.Items[1][1], 1e-6)
}

func TestReadWeightHeight_Invalid(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
	}{
		{description: "missing column", input: "Gender,Height\nMale,70\n"},
		{description: "bad number", input: "Height,Weight\n70,heavy\n"},
		{description: "empty", input: ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			_, err := ReadWeightHeight(strings.NewReader(testCase.input))
			assert.Error(t, err)
		})
	}
}

func TestReadMoments(t *testing.T) {
	input := "1 0.5 1.5 -2\n\n2 1 2 3\n"
	ds, err := ReadMoments(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ds.Labels)
	assert.Equal(t, [][]float32{{0.5, 1.5, -2}, {1, 2, 3}}, ds.Items)

	_, err = ReadMoments(strings.NewReader("1 0.5 1.5\n2 1\n"))
	assert.Error(t, err)
	_, err = ReadMoments(strings.NewReader("1 x\n"))
	assert.Error(t, err)
}

func TestReadFASTA(t *testing.T) {
	input := `>hg|NM_1 first gene
ACGT
TTGA
>hg|NM_2 second
GGCC  
>x
`
	ds, err := ReadFASTA(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"NM_1 first gene", "NM_2 second", ""}, ds.Labels)
	assert.Equal(t, []string{"ACGTTTGA", "GGCC", ""}, ds.Items)

	_, err = ReadFASTA(strings.NewReader("ACGT\n>hg|a\n"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"csv-weight-height": FormatWeightHeight,
		"CSV":               FormatWeightHeight,
		"moments":           FormatMoments,
		"fasta":             FormatFASTA,
		" sqlite ":          FormatSQLite,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseFormat("parquet")
	assert.Error(t, err)
	assert.True(t, FormatFASTA.IsText())
	assert.False(t, FormatMoments.IsText())
}

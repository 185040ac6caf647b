package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleCSV = []byte(`survived,sex,age,fare
0,male,22,7.25
1,female,38,71.2833
1,female,,7.925
`)

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV(sampleCSV, "titanic")
	require.NoError(t, err)

	assert.Equal(t, "titanic", table.Name())
	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, []string{"survived", "sex", "age", "fare"}, table.ColumnNames())
}

func TestCellClassification(t *testing.T) {
	table, err := ParseCSV(sampleCSV, "titanic")
	require.NoError(t, err)

	age, ok := table.Column("age")
	require.True(t, ok)
	assert.Equal(t, Number, age.Cells[0].Kind)
	assert.Equal(t, 22.0, age.Cells[0].Num)
	assert.Equal(t, Missing, age.Cells[2].Kind)

	sex, ok := table.Column("sex")
	require.True(t, ok)
	assert.Equal(t, Text, sex.Cells[0].Kind)
	assert.Equal(t, "male", sex.Cells[0].String())
}

func TestMissingCellRendersToken(t *testing.T) {
	c := Cell{Kind: Missing}
	assert.True(t, c.IsMissing())
	assert.Equal(t, MissingToken, c.String())
}

func TestNATokens(t *testing.T) {
	table, err := ParseCSV([]byte("v\nNA\nNaN\nnull\nhello\n"), "na")
	require.NoError(t, err)

	col, _ := table.Column("v")
	for i := 0; i < 3; i++ {
		assert.True(t, col.Cells[i].IsMissing(), "row %d should be missing", i)
	}
	assert.Equal(t, Text, col.Cells[3].Kind)
}

func TestNameResolution(t *testing.T) {
	table, err := ParseCSV(sampleCSV, "titanic")
	require.NoError(t, err)

	// Exact lookup is case-sensitive.
	assert.True(t, table.HasColumn("sex"))
	assert.False(t, table.HasColumn("Sex"))

	// ResolveName is case-insensitive and returns the canonical name.
	canonical, ok := table.ResolveName("SEX")
	require.True(t, ok)
	assert.Equal(t, "sex", canonical)

	_, ok = table.ResolveName("missing_column")
	assert.False(t, ok)
}

func TestHasNumeric(t *testing.T) {
	table, err := ParseCSV([]byte("a,b,c\n1,x,\n2,y,\n"), "kinds")
	require.NoError(t, err)

	a, _ := table.Column("a")
	b, _ := table.Column("b")
	c, _ := table.Column("c")
	assert.True(t, a.HasNumeric())
	assert.False(t, b.HasNumeric())
	assert.False(t, c.HasNumeric())
}

func TestDuplicateColumnRejected(t *testing.T) {
	_, err := ParseCSV([]byte("a,a\n1,2\n"), "dup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestEmptyCSVRejected(t *testing.T) {
	_, err := ParseCSV(nil, "empty")
	require.Error(t, err)
}

func TestRaggedCSVRejected(t *testing.T) {
	_, err := ParseCSV([]byte("a,b\n1\n"), "ragged")
	require.Error(t, err)
}

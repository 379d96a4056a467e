package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffName,Total,Email\n" +
		"#1,\"$1,200.00\",a@b.com\n" +
		"\n" +
		",,\n" +
		"#2,5\n"

	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Total", "Email"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "$1,200.00", table.Rows[0]["Total"])
	assert.Equal(t, "", table.Rows[1]["Email"])
	assert.False(t, table.Empty())
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.EqualError(t, err, "empty file")
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("A,B\n"))
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("Order ID,Order Amount\n1,9.99\n"), 0o600))

	table, err := ReadCSVFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "9.99", table.Rows[0]["Order Amount"])

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

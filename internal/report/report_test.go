package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathmystery/internal/account"
)

func roster() []*account.User {
	return []*account.User{
		{
			ID: "s1", Name: "Ana García", Username: "ana", Email: "ana@school.test",
			Role:     account.RoleStudent,
			Progress: &account.Progress{Lives: 4, Score: 120, Level: 3},
		},
		{
			ID: "t1", Name: "Prof. Ruiz", Username: "ruiz", Email: "ruiz@school.test",
			Role: account.RoleTeacher,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, roster()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, header, records[0])
	assert.Equal(t, []string{"s1", "Ana García", "ana", "ana@school.test", "120", "3", "4"}, records[1])

	// Teacher rows carry empty progress cells, not zeros.
	assert.Equal(t, []string{"t1", "Prof. Ruiz", "ruiz", "ruiz@school.test", "", "", ""}, records[2])
}

func TestWriteCSVEmptyRoster(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, header, records[0])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, roster()))

	// A valid PDF starts with the magic header and is not trivially small.
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
	assert.Greater(t, buf.Len(), 500)
}

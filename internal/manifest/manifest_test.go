package manifest

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/session"
)

func sampleItems() []session.Item {
	return []session.Item{
		{
			Index:    0,
			FileName: "claim-1.pdf",
			Status:   domain.FileStatusCompleted,
			Case: &domain.ExtractedCase{
				CaseNumber: "GCLM/2763/2024",
				Claimant:   "ACME FINANCE PTY LTD",
				Registry:   "Perth Magistrates Court",
				DateLodged: "12/03/2024",
				Defendants: []domain.Defendant{{Name: "Jane Doe"}, {Name: "John Roe"}},
			},
			Affidavits: []domain.GeneratedAffidavit{
				{FileName: "Affidavit_GCLM-2763-2024_Jane_Doe.docx"},
				{FileName: "Affidavit_GCLM-2763-2024_John_Roe.docx"},
			},
		},
		{
			Index:    1,
			FileName: "claim-2.pdf",
			Status:   domain.FileStatusError,
			Error:    "failed to extract data from GPC",
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)
	assert.Len(t, row, len(columns))
	assert.Equal(t, "File Name", row[0])
	assert.Equal(t, "Error", row[len(row)-1])
}

func TestCSV(t *testing.T) {
	data, err := CSV(sampleItems())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "claim-1.pdf", rows[1][0])
	assert.Equal(t, "completed", rows[1][1])
	assert.Equal(t, "GCLM/2763/2024", rows[1][2])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, "Jane Doe; John Roe", rows[1][7])
	assert.Equal(t, "Affidavit_GCLM-2763-2024_Jane_Doe.docx; Affidavit_GCLM-2763-2024_John_Roe.docx", rows[1][8])

	assert.Equal(t, "error", rows[2][1])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "0", rows[2][6])
	assert.Equal(t, "failed to extract data from GPC", rows[2][9])
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(sampleItems())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, columns, rows[0])
	assert.Equal(t, "GCLM/2763/2024", rows[1][2])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, "error", rows[2][1])
}

package statement

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actau-dev/actau/pkg/models"
)

const sample = `Account Number,Transaction Type,Effective Date,Debit Amount,Credit Amount,Short Description,Long Description,Merchant Name,Categories
12345678,CARD,"2:52PM Sat 14 January, 2023",11.11,,Purchase,VISA-CLOUDFLARE HTTP#1(Ref.0123456789),,"Services, Hosting"
12345678,ALL,"9:05AM Tue 3 January, 2023",,250.00,Internet Transfer,Transfer from Netsaver Account 87654321,,
`

func TestRead(t *testing.T) {
	r := New(log.New(io.Discard))
	rows, err := r.Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, models.Row{
		AccountNumber: "12345678",
		Type:          models.TxCard,
		EffectiveDate: "2:52PM Sat 14 January, 2023",
		DebitAmount:   "11.11",
		ShortDesc:     "Purchase",
		LongDesc:      "VISA-CLOUDFLARE HTTP#1(Ref.0123456789)",
		Categories:    "Services, Hosting",
	}, rows[0])
	assert.Equal(t, models.TxAll, rows[1].Type)
	assert.Equal(t, "250.00", rows[1].CreditAmount)
}

func TestReadKeysFieldsByHeaderName(t *testing.T) {
	// Column order comes from the header, not from position.
	shuffled := "Long Description,Account Number,Transaction Type,Credit Amount\n" +
		"Osko Payment From John Smith,12345678,ALL_DEPOSITS,300.00\n"
	r := New(log.New(io.Discard))
	rows, err := r.Read(strings.NewReader(shuffled))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Osko Payment From John Smith", rows[0].LongDesc)
	assert.Equal(t, models.TxDeposits, rows[0].Type)
	assert.Equal(t, "300.00", rows[0].CreditAmount)
	assert.Empty(t, rows[0].DebitAmount)
}

func TestReadPassesShortRowsThrough(t *testing.T) {
	// Row-level problems are the classifier's to report, not the reader's.
	short := "Account Number,Transaction Type,Long Description\n12345678\n"
	r := New(log.New(io.Discard))
	rows, err := r.Read(strings.NewReader(short))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].LongDesc)
}

func TestReadFileErrors(t *testing.T) {
	r := New(log.New(io.Discard))

	_, err := r.ReadFile("does-not-exist.csv")
	var formatErr *models.FormatError
	require.ErrorAs(t, err, &formatErr)

	_, err = r.Read(strings.NewReader(`a,"unterminated`))
	assert.Error(t, err)

	_, err = r.Read(strings.NewReader(""))
	assert.Error(t, err)
}

package classify

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actau-dev/actau/pkg/models"
	"github.com/actau-dev/actau/pkg/reconcile"
)

func cardRow(debit, long, merchant, categories string) models.Row {
	r := row(models.TxCard, debit, "", "Purchase", long)
	r.MerchantName = merchant
	r.Categories = categories
	return r
}

func TestCardVisaNarrativeExtraction(t *testing.T) {
	c, _ := newClassifier(t)
	cand, err := c.Classify(cardRow("11.11",
		"VISA-CLOUDFLARE HTTPSWWW.CLOUUSFRGN AMT-11.1111111#123455(Ref.0123456789)", "", ""))
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, "Cloudflare", cand.PayeeName)
	assert.Equal(t, "0123456789", cand.ImportID)
}

func TestCardVisaRefund(t *testing.T) {
	c, _ := newClassifier(t)
	cand, err := c.Classify(cardRow("5.00", "VISA Refund-BOOK SHOP WWW.SHOP.EXAMPLE (Ref.555)", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "Book Shop", cand.PayeeName)
	assert.Equal(t, "555", cand.ImportID)
}

func TestCardMerchantNameWins(t *testing.T) {
	c, _ := newClassifier(t)
	cand, err := c.Classify(cardRow("43.20", "VISA-COLES 0423 HTTP (Ref.42)", "Coles (Chadstone VIC)", ""))
	require.NoError(t, err)
	assert.Equal(t, "Coles", cand.PayeeName)
	assert.Equal(t, "42", cand.ImportID)
}

func TestCardAggregatorMerchantFallsBackToNarrative(t *testing.T) {
	c, _ := newClassifier(t)
	cand, err := c.Classify(cardRow("30.00", "PAYPAL *STEAMGAMES 4029357733 AU (Ref.99)", "PayPal", ""))
	require.NoError(t, err)
	assert.Equal(t, "Steamgames", cand.PayeeName)
	assert.True(t, cand.Cleared)

	// Capital-then-lowercase ends the merchant identifier.
	cand, err = c.Classify(cardRow("12.00", "SQ *THE STAND Sydney (Ref.7)", "Square", ""))
	require.NoError(t, err)
	assert.Equal(t, "The Stand", cand.PayeeName)
}

func TestCardAggregatorHeuristicMissGoesToReview(t *testing.T) {
	c, _ := newClassifier(t)
	cand, err := c.Classify(cardRow("30.00", "PAYPAL PAYMENT 4029357733 (Ref.99)", "PayPal", ""))
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.False(t, cand.Cleared)
	assert.Empty(t, cand.PayeeName)
}

func TestCardCategoryOverride(t *testing.T) {
	c, remote := newClassifier(t)
	cand, err := c.Classify(cardRow("64.00", "VISA-BWS LIQUOR HTTP (Ref.1)", "", "Liquor Store, Restricted"))
	require.NoError(t, err)
	// "Groceries" already exists in the snapshot; nothing gets created and
	// no "Liquor Store, Restricted" category ever appears.
	assert.Equal(t, "cat-groceries", cand.CategoryID)
	assert.Empty(t, remote.created)
}

func TestCardCategoryLastSegment(t *testing.T) {
	c, remote := newClassifier(t)
	cand, err := c.Classify(cardRow("18.00", "VISA-CAFE HTTP (Ref.2)", "", "Food & Drink, Restaurants, Cafes"))
	require.NoError(t, err)
	assert.Equal(t, "cat-Cafes", cand.CategoryID)
	require.Len(t, remote.created, 1)
	assert.Equal(t, "group-expense", remote.created[0].GroupID)

	// Empty category list skips category resolution entirely.
	cand, err = c.Classify(cardRow("9.00", "VISA-KIOSK HTTP (Ref.3)", "", ""))
	require.NoError(t, err)
	assert.Empty(t, cand.CategoryID)
	assert.Len(t, remote.created, 1)
}

func TestCardMissingReferenceIsOnlyAWarning(t *testing.T) {
	c, _ := newClassifier(t)
	cand, err := c.Classify(cardRow("25.00", "VISA-CORNER STORE HTTP", "", ""))
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, "Corner Store", cand.PayeeName)
	assert.Empty(t, cand.ImportID)
}

func TestCardUnmatchedNarrativeWithoutMerchantFails(t *testing.T) {
	c, _ := newClassifier(t)
	_, err := c.Classify(cardRow("10.00", "EFTPOS PURCHASE 1234", "", ""))
	var parseErr *models.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestExtractAggregatorPayee(t *testing.T) {
	tests := []struct {
		narrative string
		want      string
		ok        bool
	}{
		{"PAYPAL *STEAMGAMES 402935", "STEAMGAMES", true},
		{"SQ *THE STAND Sydney", "THE STAND", true},
		{"SQ *CAFE", "CAFE", true},
		{"no star here", "", false},
		{"TRAILING *", "", false},
	}
	for _, tt := range tests {
		got, ok := extractAggregatorPayee(tt.narrative)
		assert.Equal(t, tt.ok, ok, tt.narrative)
		assert.Equal(t, tt.want, got, tt.narrative)
	}
}

// Dry-run reconciliation never creates remotely but classification still
// resolves category ids.
func TestCardCategoryDryRun(t *testing.T) {
	accounts, err := models.NewAccountMap(map[string]string{"12345678": mainAccountID})
	require.NoError(t, err)
	remote := &fakeRemote{}
	c := New(accounts, reconcile.New(remote, log.New(io.Discard), true), log.New(io.Discard))

	cand, err := c.Classify(cardRow("18.00", "VISA-CAFE HTTP (Ref.2)", "", "Cafes"))
	require.NoError(t, err)
	assert.Equal(t, "dry-run:Cafes", cand.CategoryID)
	assert.Empty(t, remote.created)
}

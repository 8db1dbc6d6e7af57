package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/actau-dev/actau/pkg/models"
)

// categoryOverrides remaps noisy merchant categories to an existing canonical
// one instead of letting them pollute the budget's taxonomy. Keys match the
// row's full Categories string.
var categoryOverrides = map[string]string{
	"Liquor Store, Restricted": "Groceries",
}

// aggregatorPlaceholders are merchant names that identify the payment
// processor rather than the merchant; the real name hides in the narrative.
var aggregatorPlaceholders = map[string]bool{
	"PayPal": true,
	"Square": true,
}

var titleCaser = cases.Title(language.English)

func (c *Classifier) classifyCard(base models.Candidate, row models.Row) (*models.Candidate, error) {
	cand := base

	if row.Categories != "" {
		name, ok := categoryOverrides[row.Categories]
		if !ok {
			// The category list runs general to specific; keep the
			// most specific segment.
			segments := strings.Split(row.Categories, ",")
			name = strings.TrimSpace(segments[len(segments)-1])
		}
		categoryID, err := c.taxonomy.EnsureCategory(name)
		if err != nil {
			return nil, err
		}
		cand = cand.WithCategoryID(categoryID)
	}

	switch {
	case row.MerchantName != "" && !aggregatorPlaceholders[row.MerchantName]:
		name := row.MerchantName
		if i := strings.Index(name, "("); i >= 0 {
			name = name[:i]
		}
		cand = cand.WithPayeeName(strings.TrimSpace(name))

	case aggregatorPlaceholders[row.MerchantName]:
		name, ok := extractAggregatorPayee(row.Narrative())
		if !ok {
			// Best-effort heuristic; a miss goes to manual review
			// rather than aborting the run.
			c.logger.Warn("could not extract payee behind aggregator", "merchant", row.MerchantName, "narrative", row.Narrative())
			cand = cand.Uncleared()
			break
		}
		cand = cand.WithPayeeName(titleCase(name))

	default:
		m := visaPattern.FindStringSubmatch(row.Narrative())
		if m == nil {
			return nil, &models.ParseError{Row: row, Reason: "unrecognized card narrative"}
		}
		cand = cand.WithPayeeName(titleCase(strings.TrimSpace(m[1])))
	}

	if m := cardRefPattern.FindStringSubmatch(row.Narrative()); m != nil {
		cand = cand.WithImportID(m[1])
	} else {
		// The reference id is only a dedup aid, so this is the one
		// extraction miss that neither fails nor suppresses.
		c.logger.Warn("card narrative has no reference number", "narrative", row.Narrative())
	}

	return &cand, nil
}

// extractAggregatorPayee pulls the merchant identifier out of an aggregator
// narrative: the text after the leading "*" up to the first digit or
// capital-then-lowercase transition ("SQ *THE STAND Sydney 123…" → "THE
// STAND"). Heuristic; callers flag a miss for review instead of failing.
func extractAggregatorPayee(narrative string) (string, bool) {
	star := strings.Index(narrative, "*")
	if star < 0 {
		return "", false
	}
	rest := narrative[star+1:]
	end := len(rest)
	for i := 0; i < len(rest); i++ {
		if rest[i] >= '0' && rest[i] <= '9' {
			end = i
			break
		}
		if i+1 < len(rest) && isUpper(rest[i]) && isLower(rest[i+1]) {
			end = i
			break
		}
	}
	name := strings.TrimSpace(rest[:end])
	return name, name != ""
}

func titleCase(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }

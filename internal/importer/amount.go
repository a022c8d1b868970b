package importer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fixnet/internal/pricing"
)

// maxPrice bounds amounts that are normalised; larger cells are kept verbatim.
var maxPrice = decimal.NewFromInt(100_000_000)

// thousandsComma matches amounts grouped with commas, e.g. "1,500" or "12,500,000".
var thousandsComma = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)

// normalizePrice turns a bare amount such as "8000", "8 000", "8000,00" or
// "1,500" into the display form "от 8 000 ₽". Anything that is not a bare
// amount is returned trimmed but otherwise unchanged.
func normalizePrice(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	clean := strings.NewReplacer(" ", "", "\u00a0", "").Replace(s)

	switch {
	case thousandsComma.MatchString(clean):
		clean = strings.ReplaceAll(clean, ",", "")
	case strings.Count(clean, ",") == 1 && !strings.Contains(clean, "."):
		clean = strings.Replace(clean, ",", ".", 1)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil || d.IsNegative() || d.GreaterThan(maxPrice) {
		return s
	}

	return pricing.FormatPrice(d.Round(0).IntPart())
}

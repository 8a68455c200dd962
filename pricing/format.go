package pricing

import (
	"strconv"

	"github.com/ohm-hive/orders-api/models"
)

const (
	TBDMarkerEN = "TBD"
	TBDMarkerAR = "يحدد لاحقاً"
	currencyAR  = "ريال"
)

// FormatAmount renders an amount without trailing zeros, e.g. "3150" or "12.5"
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMoney renders an amount with its currency in the given language
func FormatMoney(v float64, lang string) string {
	if lang == "ar" {
		return FormatAmount(v) + " " + currencyAR
	}
	return FormatAmount(v) + " " + Currency
}

// TBDMarker is the short "to be determined" label for lang
func TBDMarker(lang string) string {
	if lang == "ar" {
		return TBDMarkerAR
	}
	return TBDMarkerEN
}

// FormatTotal renders a total: "3150 SAR" when fully priced, "950 SAR + TBD"
// when part is priced, and the TBD marker alone when nothing is.
func FormatTotal(costs models.CostBreakdown, total *float64, lang string) string {
	if total != nil {
		return FormatMoney(*total, lang)
	}
	priced := costs.PricedSum()
	if priced > 0 {
		return FormatMoney(priced, lang) + " + " + TBDMarker(lang)
	}
	return TBDMarker(lang)
}

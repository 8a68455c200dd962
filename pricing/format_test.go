package pricing

import (
	"testing"

	"github.com/ohm-hive/orders-api/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "3150", FormatAmount(3150))
	assert.Equal(t, "12.5", FormatAmount(12.5))
	assert.Equal(t, "0", FormatAmount(0))
}

func TestFormatTotal(t *testing.T) {
	tests := []struct {
		name  string
		costs models.CostBreakdown
		total *float64
		lang  string
		want  string
	}{
		{"priced en", models.CostBreakdown{"supervision": models.Amount(3150)}, models.Amount(3150), "en", "3150 SAR"},
		{"priced ar", models.CostBreakdown{"supervision": models.Amount(3150)}, models.Amount(3150), "ar", "3150 ريال"},
		{"partial en", models.CostBreakdown{"baseCost": nil, "report": models.Amount(700), "ppt": models.Amount(250)}, nil, "en", "950 SAR + TBD"},
		{"partial ar", models.CostBreakdown{"baseCost": nil, "report": models.Amount(700)}, nil, "ar", "700 ريال + يحدد لاحقاً"},
		{"nothing priced", models.CostBreakdown{"baseCost": nil}, nil, "en", "TBD"},
		{"unknown lang falls back", models.CostBreakdown{"consulting": models.Amount(80)}, models.Amount(80), "fr", "80 SAR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTotal(tt.costs, tt.total, tt.lang))
		})
	}
}

func TestCatalog(t *testing.T) {
	items := Catalog()
	assert.Len(t, items, len(models.ServiceTypes))
	for i, st := range models.ServiceTypes {
		assert.Equal(t, st, items[i].Type)
		assert.NotEmpty(t, items[i].LabelEN)
		assert.NotEmpty(t, items[i].LabelAR)
	}

	// callers get a copy
	items[0].LabelEN = "changed"
	assert.Equal(t, "Course Project", Catalog()[0].LabelEN)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Senior Project Follow-up", Label(models.ServiceSupervision, "en"))
	assert.Equal(t, "طباعة ثلاثية الأبعاد", Label(models.Service3DPrinting, "ar"))
	assert.Equal(t, "welding", Label(models.ServiceType("welding"), "en"))
}

package receipt

import (
	"bytes"
	"encoding/json"
	"html"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const signature = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func courseOrder() *models.Order {
	order := &models.Order{
		OrderNumber: "OH-250314-0427",
		FirstName:   "Sara",
		LastName:    "Alharbi",
		Phone:       "0551234567",
		Email:       "sara@example.com",
		ServiceType: models.ServiceCourseProject,
		ServiceDetails: datatypes.JSONMap{
			"courseName":     "EE 301",
			"reportRequired": "yes",
			"pptRequired":    "yes",
			"deadline":       "2025-04-01",
			"notes":          "",
		},
		Status:    models.StatusPending,
		Signature: signature,
		CreatedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	order.SetCosts(models.CostBreakdown{
		models.CostBase:   nil,
		models.CostReport: models.Amount(700),
		models.CostPPT:    models.Amount(250),
	})
	return order
}

func supervisionOrder() *models.Order {
	order := courseOrder()
	order.ServiceType = models.ServiceSupervision
	order.ServiceDetails = datatypes.JSONMap{"period": "3"}
	order.Status = models.StatusInProgress
	order.SetCosts(models.CostBreakdown{models.CostSupervision: models.Amount(3150)})
	return order
}

func render(t *testing.T, order *models.Order, lang string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Default().Render(&buf, order, lang))
	return buf.String()
}

func TestRender_English(t *testing.T) {
	page := render(t, courseOrder(), "en")

	assert.Contains(t, page, `dir="ltr"`)
	assert.Contains(t, page, `lang="en"`)
	assert.Contains(t, page, "OH-250314-0427")
	assert.Contains(t, page, "Sara Alharbi")
	assert.Contains(t, page, "Course Project")
	assert.Contains(t, page, "Mar 14, 2025 | PENDING")
	assert.Contains(t, page, "Course Name:")
	assert.NotContains(t, page, "Notes:", "empty details are skipped")
	assert.Contains(t, page, "950 SAR &#43; TBD")
	assert.Contains(t, html.UnescapeString(page), "950 SAR + TBD")
	assert.Contains(t, page, "To be determined later by engineer")
	assert.Contains(t, page, `src="data:image/png;base64,`)
	assert.Contains(t, page, signature)
	assert.Contains(t, page, "TERMS AND CONDITIONS")
	assert.Contains(t, page, "9. Termination")
}

func TestRender_Arabic(t *testing.T) {
	page := render(t, courseOrder(), "ar")

	assert.Contains(t, page, `dir="rtl"`)
	assert.Contains(t, page, "OH-250314-0427")
	assert.Contains(t, page, "إيصال الطلب")
	assert.Contains(t, page, "مشروع مقرر")
	assert.Contains(t, page, "14 مارس 2025")
	assert.Contains(t, page, "يحدد لاحقاً")
	assert.Contains(t, html.UnescapeString(page), "950 ريال + يحدد لاحقاً")
	assert.Contains(t, page, "1. شروط الدفع")
	assert.Contains(t, page, "9. الإنهاء")
}

func TestRender_FullyPriced(t *testing.T) {
	html := render(t, supervisionOrder(), "en")

	assert.Contains(t, html, "3150 SAR")
	assert.Contains(t, html, "IN PROGRESS")
	assert.Contains(t, html, "Follow-up")
	assert.NotContains(t, html, "To be determined later by engineer")
}

func TestRender_UnknownLanguageFallsBack(t *testing.T) {
	html := render(t, courseOrder(), "fr")
	assert.Contains(t, html, `dir="ltr"`)
	assert.Contains(t, html, "ORDER RECEIPT")
}

func TestRender_SignatureOnlyForImages(t *testing.T) {
	order := courseOrder()
	order.Signature = "javascript:alert(1)"
	html := render(t, order, "en")

	assert.NotContains(t, html, "javascript:alert")
	assert.NotContains(t, html, "CUSTOMER SIGNATURE")
}

func TestRender_EscapesCustomerInput(t *testing.T) {
	order := courseOrder()
	order.FirstName = "<script>alert(1)</script>"
	order.ServiceDetails["notes"] = `"><img src=x onerror=alert(1)>`
	html := render(t, order, "en")

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "<img src=x")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestNewView_CostRows(t *testing.T) {
	view, err := NewView(courseOrder(), "en", time.Now())
	require.NoError(t, err)

	require.Len(t, view.Costs, 3)
	assert.Equal(t, CostRow{Label: "Base Cost", Amount: "TBD", TBD: true}, view.Costs[0])
	assert.Equal(t, CostRow{Label: "Report", Amount: "700 SAR"}, view.Costs[1])
	assert.Equal(t, CostRow{Label: "Presentation", Amount: "250 SAR"}, view.Costs[2])
	assert.True(t, view.TotalTBD)
	assert.Equal(t, "950 SAR + TBD", view.Total)
}

func TestNewView_UnknownStatusAndComponent(t *testing.T) {
	order := supervisionOrder()
	order.Status = models.OrderStatus("archived")
	order.SetCosts(models.CostBreakdown{"rushFee": models.Amount(100)})

	view, err := NewView(order, "en", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "ARCHIVED", view.Status)
	assert.Equal(t, "Rush Fee", view.Costs[0].Label)
}

func TestComponentLabels_MatchPricing(t *testing.T) {
	used := map[string]bool{}
	for _, st := range models.ServiceTypes {
		quote, err := pricing.Calculate(st, pricing.Options{ReportRequired: true, PPTRequired: true, Hours: 1, Months: 1})
		require.NoError(t, err, st)
		for _, k := range quote.Breakdown.Keys() {
			used[k] = true
		}
	}

	for _, lang := range []string{"en", "ar"} {
		labels := For(lang).Components
		for k := range used {
			assert.NotEmpty(t, labels[k], "%s label for %s", lang, k)
		}
		for k := range labels {
			assert.True(t, used[k], "%s label for %s which no service prices", lang, k)
		}
	}
}

func TestDetailRows(t *testing.T) {
	rows := detailRows(map[string]interface{}{
		"topics":         []interface{}{"PLC", "SCADA"},
		"files":          []interface{}{"a.pdf"},
		"hours":          float64(3),
		"reportRequired": true,
		"pptRequired":    false,
		"empty":          nil,
	})

	assert.Equal(t, []DetailRow{
		{Label: "Hours", Value: "3"},
		{Label: "Report Required", Value: "yes"},
		{Label: "Topics", Value: "PLC, SCADA"},
	}, rows)
}

func TestQRPayload(t *testing.T) {
	payload := NewQRPayload(courseOrder())
	assert.Equal(t, QRPayload{
		OrderNumber: "OH-250314-0427",
		Customer:    "Sara Alharbi",
		Service:     "course-project",
		Date:        "2025-03-14T09:00:00Z",
	}, payload)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderNumber":"OH-250314-0427","customer":"Sara Alharbi","service":"course-project","date":"2025-03-14T09:00:00Z"}`, string(data))
}

func TestQRCodePNG(t *testing.T) {
	data, err := QRCodePNG(courseOrder(), 200)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	url, err := QRCodeDataURL(courseOrder(), 200)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestLang(t *testing.T) {
	assert.Equal(t, "ar", Lang("ar"))
	assert.Equal(t, "en", Lang("en"))
	assert.Equal(t, "en", Lang(""))
	assert.Equal(t, "en", Lang("de"))
	assert.Len(t, For("ar").Terms, 9)
	assert.Len(t, For("en").Terms, 9)
}

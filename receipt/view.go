package receipt

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/pricing"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// DetailRow is one service-detail entry
type DetailRow struct {
	Label string
	Value string
}

// CostRow is one line of the cost breakdown
type CostRow struct {
	Label  string
	Amount string
	TBD    bool
}

// View is everything the receipt template renders
type View struct {
	Lang  string
	Dir   string
	Align string
	T     Translation

	OrderNumber  string
	Date         string
	Status       string
	CustomerName string
	Phone        string
	Email        string
	ServiceLabel string
	Details      []DetailRow
	Costs        []CostRow
	Total        string
	TotalTBD     bool
	Signature    template.URL
	QRCode       template.URL
	GeneratedAt  string
}

// NewView maps an order onto the receipt view for lang
func NewView(order *models.Order, lang string, now time.Time) (*View, error) {
	lang = Lang(lang)
	tr := For(lang)

	qr, err := QRCodeDataURL(order, QRSize)
	if err != nil {
		return nil, err
	}

	v := &View{
		Lang:         lang,
		Dir:          "ltr",
		Align:        "left",
		T:            tr,
		OrderNumber:  order.OrderNumber,
		Date:         formatDate(order.CreatedAt, lang),
		Status:       statusLabel(tr, order.Status),
		CustomerName: order.CustomerName(),
		Phone:        order.Phone,
		Email:        order.Email,
		ServiceLabel: pricing.Label(order.ServiceType, lang),
		Details:      detailRows(order.ServiceDetails),
		QRCode:       template.URL(qr),
		GeneratedAt:  formatDate(now, lang),
	}
	if lang == "ar" {
		v.Dir = "rtl"
		v.Align = "right"
	}

	costs := order.Costs()
	for _, key := range costs.Keys() {
		row := CostRow{Label: componentLabel(tr, key)}
		if amount := costs[key]; amount != nil {
			row.Amount = pricing.FormatMoney(*amount, lang)
		} else {
			row.Amount = pricing.TBDMarker(lang)
			row.TBD = true
		}
		v.Costs = append(v.Costs, row)
	}
	v.Total = pricing.FormatTotal(costs, order.TotalCost, lang)
	v.TotalTBD = order.TotalCost == nil

	if strings.HasPrefix(order.Signature, "data:image/") {
		v.Signature = template.URL(order.Signature)
	}
	return v, nil
}

func statusLabel(tr Translation, status models.OrderStatus) string {
	if label, ok := tr.Statuses[status]; ok {
		return label
	}
	if status == "" {
		return tr.Statuses[models.StatusPending]
	}
	return strings.ToUpper(string(status))
}

func componentLabel(tr Translation, key string) string {
	if label, ok := tr.Components[key]; ok {
		return label
	}
	return humanize(key)
}

func formatDate(t time.Time, lang string) string {
	if t.IsZero() {
		return "N/A"
	}
	if lang == "ar" {
		return fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
	}
	return t.Format("Jan 2, 2006")
}

// detailRows lists the non-empty service details in key order
func detailRows(details map[string]interface{}) []DetailRow {
	keys := make([]string, 0, len(details))
	for k := range details {
		if k == "files" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]DetailRow, 0, len(keys))
	for _, k := range keys {
		value := detailValue(details[k])
		if value == "" {
			continue
		}
		rows = append(rows, DetailRow{Label: humanize(k), Value: value})
	}
	return rows
}

func detailValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if t {
			return "yes"
		}
		return ""
	case float64:
		return pricing.FormatAmount(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := detailValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

// humanize turns camelCase keys into title words: "reportRequired" -> "Report Required"
func humanize(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

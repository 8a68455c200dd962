// Package pricing holds the service pricing rule table shared by the order
// form preview and the server. Every amount is in Saudi riyals.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ohm-hive/orders-api/models"
)

const (
	// Currency is appended to every displayed amount
	Currency = "SAR"

	ConsultingHourlyRate = 80.0

	MinSupervisionMonths = 1
	MaxSupervisionMonths = 8
	MaxConsultingHours   = 1000
)

// supervisionPrices is the follow-up price by number of months
var supervisionPrices = map[int]float64{
	1: 1800,
	2: 2500,
	3: 3150,
	4: 3800,
	5: 4500,
	6: 5150,
	7: 5850,
	8: 6500,
}

type projectExtras struct {
	report float64
	ppt    float64
}

var extras = map[models.ServiceType]projectExtras{
	models.ServiceCourseProject: {report: 700, ppt: 250},
	models.ServiceSeniorProject: {report: 1200, ppt: 400},
}

var (
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrInvalidPeriod      = fmt.Errorf("supervision period must be between %d and %d months", MinSupervisionMonths, MaxSupervisionMonths)
	ErrInvalidHours       = fmt.Errorf("consulting hours must not exceed %d", MaxConsultingHours)
)

// Options are the customer selections that influence the price
type Options struct {
	ReportRequired bool
	PPTRequired    bool
	Hours          int // consulting hours, 0 means not given
	Months         int // supervision months, 0 means not given
}

// Quote is the priced result for one service request
type Quote struct {
	ServiceType models.ServiceType   `json:"service_type"`
	Breakdown   models.CostBreakdown `json:"breakdown"`
	Total       *float64             `json:"total"` // nil when any component is TBD
}

// Calculate applies the rule table to a service type and its options
func Calculate(st models.ServiceType, opts Options) (*Quote, error) {
	costs := models.CostBreakdown{}

	switch st {
	case models.ServiceCourseProject, models.ServiceSeniorProject:
		costs[models.CostBase] = nil
		x := extras[st]
		if opts.ReportRequired {
			costs[models.CostReport] = models.Amount(x.report)
		}
		if opts.PPTRequired {
			costs[models.CostPPT] = models.Amount(x.ppt)
		}

	case models.ServiceConsulting:
		hours := opts.Hours
		if hours < 1 {
			hours = 1
		}
		costs[models.CostConsulting] = models.Amount(float64(hours) * ConsultingHourlyRate)

	case models.ServiceSupervision:
		months := opts.Months
		if months == 0 {
			months = MinSupervisionMonths
		}
		price, ok := supervisionPrices[months]
		if !ok {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidPeriod, months)
		}
		costs[models.CostSupervision] = models.Amount(price)

	case models.Service3DModeling, models.Service3DPrinting, models.ServiceHomework:
		costs[models.CostBase] = nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, st)
	}

	return &Quote{ServiceType: st, Breakdown: costs, Total: costs.Total()}, nil
}

// QuoteDetails prices a request straight from its service-details object
func QuoteDetails(st models.ServiceType, details map[string]interface{}) (*Quote, error) {
	opts, err := OptionsFromDetails(details)
	if err != nil {
		return nil, err
	}
	return Calculate(st, opts)
}

// SupervisionPrice returns the follow-up price for a number of months
func SupervisionPrice(months int) (float64, bool) {
	p, ok := supervisionPrices[months]
	return p, ok
}

// OptionsFromDetails reads the form's service-details keys.
// Values may arrive as JSON strings, numbers or booleans. Unparseable counts
// are ignored; counts out of range are an error.
func OptionsFromDetails(details map[string]interface{}) (Options, error) {
	var opts Options
	opts.ReportRequired = isYes(details["reportRequired"])
	opts.PPTRequired = isYes(details["pptRequired"])

	// a started hour bills as a full one
	if h, ok := number(details["hours"]); ok {
		if h > MaxConsultingHours {
			return Options{}, fmt.Errorf("%w: got %s", ErrInvalidHours, FormatAmount(h))
		}
		opts.Hours = int(math.Ceil(h))
	}

	// months are whole, a fraction is dropped
	if m, ok := number(details["period"]); ok {
		months := math.Trunc(m)
		if months < MinSupervisionMonths || months > MaxSupervisionMonths {
			return Options{}, fmt.Errorf("%w: got %s", ErrInvalidPeriod, FormatAmount(m))
		}
		opts.Months = int(months)
	}
	return opts, nil
}

// Matches reports whether client-submitted costs agree with the quote
func (q *Quote) Matches(costs models.CostBreakdown, total *float64) bool {
	if (q.Total == nil) != (total == nil) {
		return false
	}
	if q.Total != nil && !sameAmount(*q.Total, *total) {
		return false
	}
	for k, v := range q.Breakdown {
		if v == nil {
			continue
		}
		got, ok := costs[k]
		if !ok || got == nil || !sameAmount(*v, *got) {
			return false
		}
	}
	for k, v := range costs {
		if v == nil {
			continue
		}
		if _, ok := q.Breakdown[k]; !ok {
			return false
		}
	}
	return true
}

// Display renders the quote total for customers, e.g. "950 SAR + TBD"
func (q *Quote) Display(lang string) string {
	return FormatTotal(q.Breakdown, q.Total, lang)
}

func isYes(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true", "1", "on":
			return true
		}
	}
	return false
}

// number reads a finite count sent as a JSON number or string
func number(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func sameAmount(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

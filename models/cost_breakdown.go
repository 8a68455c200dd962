package models

import "sort"

// Cost component names used by the pricing table
const (
	CostBase        = "baseCost"
	CostReport      = "report"
	CostPPT         = "ppt"
	CostConsulting  = "consulting"
	CostSupervision = "supervision"
)

var componentOrder = map[string]int{
	CostBase:        0,
	CostReport:      1,
	CostPPT:         2,
	CostConsulting:  3,
	CostSupervision: 4,
}

// CostBreakdown maps a cost component to its amount in SAR.
// A nil amount marks the component as TBD (to be determined by an engineer).
type CostBreakdown map[string]*float64

// Amount returns a pointer to v for use in a CostBreakdown
func Amount(v float64) *float64 {
	return &v
}

// HasTBD reports whether any component is still unpriced
func (b CostBreakdown) HasTBD() bool {
	for _, v := range b {
		if v == nil {
			return true
		}
	}
	return false
}

// PricedSum adds every priced component
func (b CostBreakdown) PricedSum() float64 {
	var sum float64
	for _, v := range b {
		if v != nil {
			sum += *v
		}
	}
	return sum
}

// Total is the breakdown sum, or nil when a component is TBD
func (b CostBreakdown) Total() *float64 {
	if b.HasTBD() {
		return nil
	}
	return Amount(b.PricedSum())
}

// Keys returns component names in display order: known components first,
// then the rest alphabetically
func (b CostBreakdown) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iKnown := componentOrder[keys[i]]
		oj, jKnown := componentOrder[keys[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// Clone returns an independent copy
func (b CostBreakdown) Clone() CostBreakdown {
	out := make(CostBreakdown, len(b))
	for k, v := range b {
		if v != nil {
			out[k] = Amount(*v)
		} else {
			out[k] = nil
		}
	}
	return out
}

package pricing

import (
	"errors"
	"testing"

	"github.com/ohm-hive/orders-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_SupervisionThreeMonths(t *testing.T) {
	q, err := Calculate(models.ServiceSupervision, Options{Months: 3})
	require.NoError(t, err)
	require.NotNil(t, q.Total)
	assert.Equal(t, 3150.0, *q.Total)
	assert.Equal(t, "3150 SAR", q.Display("en"))
}

func TestCalculate_ConsultingFiveHours(t *testing.T) {
	q, err := Calculate(models.ServiceConsulting, Options{Hours: 5})
	require.NoError(t, err)
	require.NotNil(t, q.Total)
	assert.Equal(t, 400.0, *q.Total)
	assert.Equal(t, 400.0, *q.Breakdown[models.CostConsulting])
}

func TestCalculate_CourseProjectExtras(t *testing.T) {
	q, err := Calculate(models.ServiceCourseProject, Options{ReportRequired: true, PPTRequired: true})
	require.NoError(t, err)

	assert.Nil(t, q.Total)
	assert.Contains(t, q.Breakdown, models.CostBase)
	assert.Nil(t, q.Breakdown[models.CostBase])
	assert.Equal(t, 700.0, *q.Breakdown[models.CostReport])
	assert.Equal(t, 250.0, *q.Breakdown[models.CostPPT])
	assert.Equal(t, 950.0, q.Breakdown.PricedSum())
	assert.Equal(t, "950 SAR + TBD", q.Display("en"))
}

func TestCalculate_SeniorProjectExtras(t *testing.T) {
	q, err := Calculate(models.ServiceSeniorProject, Options{ReportRequired: true})
	require.NoError(t, err)

	assert.Nil(t, q.Total)
	assert.Equal(t, 1200.0, *q.Breakdown[models.CostReport])
	assert.NotContains(t, q.Breakdown, models.CostPPT)
	assert.Equal(t, "1200 SAR + TBD", q.Display("en"))
}

func TestCalculate_EngineerQuotedServices(t *testing.T) {
	for _, st := range []models.ServiceType{models.Service3DModeling, models.Service3DPrinting, models.ServiceHomework} {
		t.Run(string(st), func(t *testing.T) {
			q, err := Calculate(st, Options{ReportRequired: true, Hours: 4, Months: 2})
			require.NoError(t, err)
			assert.Nil(t, q.Total)
			assert.Equal(t, models.CostBreakdown{models.CostBase: nil}, q.Breakdown)
			assert.Equal(t, "TBD", q.Display("en"))
			assert.Equal(t, TBDMarkerAR, q.Display("ar"))
		})
	}
}

func TestCalculate_ConsultingMinimumHour(t *testing.T) {
	for _, hours := range []int{0, -3} {
		q, err := Calculate(models.ServiceConsulting, Options{Hours: hours})
		require.NoError(t, err)
		assert.Equal(t, 80.0, *q.Total)
	}
}

func TestCalculate_SupervisionTable(t *testing.T) {
	want := []float64{1800, 2500, 3150, 3800, 4500, 5150, 5850, 6500}
	for i, price := range want {
		q, err := Calculate(models.ServiceSupervision, Options{Months: i + 1})
		require.NoError(t, err)
		assert.Equal(t, price, *q.Total, "months=%d", i+1)
	}

	q, err := Calculate(models.ServiceSupervision, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1800.0, *q.Total, "missing period defaults to one month")
}

func TestCalculate_SupervisionOutOfRange(t *testing.T) {
	for _, months := range []int{9, 12, -1} {
		_, err := Calculate(models.ServiceSupervision, Options{Months: months})
		assert.True(t, errors.Is(err, ErrInvalidPeriod), "months=%d", months)
	}
}

func TestCalculate_UnknownService(t *testing.T) {
	_, err := Calculate(models.ServiceType("welding"), Options{})
	assert.True(t, errors.Is(err, ErrUnknownServiceType))
}

// Every valid combination must satisfy: total == sum(breakdown), or total is
// nil and at least one component is TBD.
func TestCalculate_TotalMatchesBreakdown(t *testing.T) {
	for _, st := range models.ServiceTypes {
		for _, report := range []bool{false, true} {
			for _, ppt := range []bool{false, true} {
				for hours := 0; hours <= 10; hours++ {
					for months := 0; months <= MaxSupervisionMonths; months++ {
						opts := Options{ReportRequired: report, PPTRequired: ppt, Hours: hours, Months: months}
						q, err := Calculate(st, opts)
						require.NoError(t, err, "%s %+v", st, opts)

						if q.Breakdown.HasTBD() {
							assert.Nil(t, q.Total, "%s %+v", st, opts)
							continue
						}
						require.NotNil(t, q.Total, "%s %+v", st, opts)
						assert.Equal(t, q.Breakdown.PricedSum(), *q.Total, "%s %+v", st, opts)
					}
				}
			}
		}
	}
}

func TestOptionsFromDetails(t *testing.T) {
	tests := []struct {
		name    string
		details map[string]interface{}
		want    Options
		wantErr error
	}{
		{
			name:    "form strings",
			details: map[string]interface{}{"reportRequired": "yes", "pptRequired": "no", "hours": "5", "period": "3"},
			want:    Options{ReportRequired: true, Hours: 5, Months: 3},
		},
		{
			name:    "json numbers and booleans",
			details: map[string]interface{}{"reportRequired": true, "pptRequired": true, "hours": float64(2), "period": float64(8)},
			want:    Options{ReportRequired: true, PPTRequired: true, Hours: 2, Months: 8},
		},
		{
			name:    "partial hour rounds up",
			details: map[string]interface{}{"hours": "2.5"},
			want:    Options{Hours: 3},
		},
		{
			name:    "partial month is dropped",
			details: map[string]interface{}{"period": "3.2"},
			want:    Options{Months: 3},
		},
		{
			name:    "garbage ignored",
			details: map[string]interface{}{"reportRequired": "maybe", "hours": "lots", "period": []interface{}{"3"}},
			want:    Options{},
		},
		{
			name:    "nil details",
			details: nil,
			want:    Options{},
		},
		{
			name:    "huge hours rejected",
			details: map[string]interface{}{"hours": "1e300"},
			wantErr: ErrInvalidHours,
		},
		{
			name:    "hours just above the limit",
			details: map[string]interface{}{"hours": float64(MaxConsultingHours) + 0.5},
			wantErr: ErrInvalidHours,
		},
		{
			name:    "huge period rejected",
			details: map[string]interface{}{"period": "1e300"},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "period below one month",
			details: map[string]interface{}{"period": "0.5"},
			wantErr: ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OptionsFromDetails(tt.details)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteDetails(t *testing.T) {
	q, err := QuoteDetails(models.ServiceConsulting, map[string]interface{}{"hours": "5"})
	require.NoError(t, err)
	assert.Equal(t, 400.0, *q.Total)

	_, err = QuoteDetails(models.ServiceSupervision, map[string]interface{}{"period": "9"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	q, err = QuoteDetails(models.ServiceSupervision, map[string]interface{}{"period": "3.2"})
	require.NoError(t, err)
	assert.Equal(t, 3150.0, *q.Total)

	q, err = QuoteDetails(models.ServiceConsulting, map[string]interface{}{"hours": "2.5"})
	require.NoError(t, err)
	assert.Equal(t, 240.0, *q.Total)

	_, err = QuoteDetails(models.ServiceConsulting, map[string]interface{}{"hours": "1e300"})
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestQuote_Matches(t *testing.T) {
	q, err := Calculate(models.ServiceCourseProject, Options{ReportRequired: true, PPTRequired: true})
	require.NoError(t, err)

	// the form sends only priced components and an empty total
	assert.True(t, q.Matches(models.CostBreakdown{"report": models.Amount(700), "ppt": models.Amount(250)}, nil))
	assert.True(t, q.Matches(models.CostBreakdown{"baseCost": nil, "report": models.Amount(700), "ppt": models.Amount(250)}, nil))

	assert.False(t, q.Matches(models.CostBreakdown{"report": models.Amount(100), "ppt": models.Amount(250)}, nil))
	assert.False(t, q.Matches(models.CostBreakdown{"report": models.Amount(700)}, nil))
	assert.False(t, q.Matches(models.CostBreakdown{"report": models.Amount(700), "ppt": models.Amount(250), "extra": models.Amount(5)}, nil))
	assert.False(t, q.Matches(models.CostBreakdown{"report": models.Amount(700), "ppt": models.Amount(250)}, models.Amount(950)))

	c, err := Calculate(models.ServiceConsulting, Options{Hours: 5})
	require.NoError(t, err)
	assert.True(t, c.Matches(models.CostBreakdown{"consulting": models.Amount(400)}, models.Amount(400)))
	assert.False(t, c.Matches(models.CostBreakdown{"consulting": models.Amount(400)}, models.Amount(1)))
	assert.False(t, c.Matches(models.CostBreakdown{"consulting": models.Amount(400)}, nil))
}

func TestSupervisionPrice(t *testing.T) {
	p, ok := SupervisionPrice(3)
	assert.True(t, ok)
	assert.Equal(t, 3150.0, p)

	_, ok = SupervisionPrice(0)
	assert.False(t, ok)
}

package calculation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investa/finserve/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func obs(t time.Time, nav float64) domain.NavObservation {
	return domain.NavObservation{Date: t, NAV: nav}
}

func TestComputeReturnSimpleOneYear(t *testing.T) {
	series := []domain.NavObservation{
		obs(day(2024, 6, 14), 110),
		obs(day(2024, 1, 2), 104),
		obs(day(2023, 6, 14), 100),
	}
	got, ok := ComputeReturn(series, 1)
	require.True(t, ok)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestComputeReturnAnnualizedThreeYears(t *testing.T) {
	series := []domain.NavObservation{
		obs(day(2024, 6, 14), 133.1),
		obs(day(2022, 6, 14), 115),
		obs(day(2021, 6, 14), 100),
	}
	got, ok := ComputeReturn(series, 3)
	require.True(t, ok)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestComputeReturnInsufficientHistory(t *testing.T) {
	series := []domain.NavObservation{
		obs(day(2024, 6, 14), 20),
		obs(day(2022, 1, 3), 12),
	}
	_, ok := ComputeReturn(series, 3)
	assert.False(t, ok)

	_, ok = ComputeReturn(nil, 1)
	assert.False(t, ok)

	_, ok = ComputeReturn(series, 0)
	assert.False(t, ok)
}

func TestComputeReturnZeroOldNAV(t *testing.T) {
	series := []domain.NavObservation{
		obs(day(2024, 6, 14), 20),
		obs(day(2023, 6, 14), 0),
	}
	_, ok := ComputeReturn(series, 1)
	assert.False(t, ok)
}

func TestComputeReturnUnsortedSeries(t *testing.T) {
	series := []domain.NavObservation{
		obs(day(2023, 6, 12), 50),
		obs(day(2024, 1, 1), 52),
		obs(day(2024, 6, 14), 55),
	}
	got, ok := ComputeReturn(series, 1)
	require.True(t, ok)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestNearestObservationTolerance(t *testing.T) {
	target := day(2023, 6, 14)
	tests := []struct {
		name   string
		series []domain.NavObservation
		want   *domain.NavObservation
	}{
		{
			name:   "exact match",
			series: []domain.NavObservation{obs(day(2023, 6, 14), 1)},
			want:   &domain.NavObservation{Date: day(2023, 6, 14), NAV: 1},
		},
		{
			name:   "twelve days after",
			series: []domain.NavObservation{obs(day(2023, 6, 26), 2)},
			want:   &domain.NavObservation{Date: day(2023, 6, 26), NAV: 2},
		},
		{
			name:   "twelve days before",
			series: []domain.NavObservation{obs(day(2023, 6, 2), 3)},
			want:   &domain.NavObservation{Date: day(2023, 6, 2), NAV: 3},
		},
		{
			name:   "thirteen days away",
			series: []domain.NavObservation{obs(day(2023, 6, 27), 4), obs(day(2023, 6, 1), 5)},
		},
		{
			name:   "closest wins",
			series: []domain.NavObservation{obs(day(2023, 6, 20), 6), obs(day(2023, 6, 16), 7), obs(day(2023, 6, 5), 8)},
			want:   &domain.NavObservation{Date: day(2023, 6, 16), NAV: 7},
		},
		{
			name:   "tie keeps the first entry",
			series: []domain.NavObservation{obs(day(2023, 6, 17), 9), obs(day(2023, 6, 11), 10)},
			want:   &domain.NavObservation{Date: day(2023, 6, 17), NAV: 9},
		},
		{
			name:   "tie keeps the first entry in scan order",
			series: []domain.NavObservation{obs(day(2023, 6, 11), 10), obs(day(2023, 6, 17), 9)},
			want:   &domain.NavObservation{Date: day(2023, 6, 11), NAV: 10},
		},
		{
			name: "empty series",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NearestObservation(tt.series, target, ToleranceDays)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, *tt.want, got)
		})
	}
}

func TestNearestObservationIgnoresTimeOfDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	series := []domain.NavObservation{obs(time.Date(2023, 6, 26, 23, 30, 0, 0, ist), 1)}
	_, ok := NearestObservation(series, day(2023, 6, 14), ToleranceDays)
	assert.True(t, ok)
}

func TestComputeReturnLeapDay(t *testing.T) {
	// one year before 29 Feb lands on 1 Mar
	series := []domain.NavObservation{
		obs(day(2024, 2, 29), 121),
		obs(day(2023, 3, 1), 110),
		obs(day(2023, 2, 20), 100),
	}
	got, ok := ComputeReturn(series, 1)
	require.True(t, ok)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestComputeReturns(t *testing.T) {
	latest := day(2024, 6, 14)
	series := []domain.NavObservation{
		obs(latest, 161.051),
		obs(day(2023, 6, 14), 146.41),
		obs(day(2021, 6, 14), 121),
		obs(day(2019, 6, 14), 100),
	}
	got := ComputeReturns(series)
	require.Len(t, got, 4)

	require.NotNil(t, got[domain.Window1Y])
	assert.InDelta(t, 10.0, *got[domain.Window1Y], 1e-9)
	require.NotNil(t, got[domain.Window3Y])
	assert.InDelta(t, 10.0, *got[domain.Window3Y], 1e-9)
	require.NotNil(t, got[domain.Window5Y])
	assert.InDelta(t, 10.0, *got[domain.Window5Y], 1e-9)
	assert.Nil(t, got[domain.Window10Y])
	_, present := got[domain.Window10Y]
	assert.True(t, present)

	only := ComputeReturns(series, domain.Window3Y)
	assert.Len(t, only, 1)
}

func TestLatestObservation(t *testing.T) {
	_, ok := LatestObservation(nil)
	assert.False(t, ok)

	got, ok := LatestObservation([]domain.NavObservation{obs(day(2020, 1, 1), 1), obs(day(2021, 1, 1), 2), obs(day(2020, 6, 1), 3)})
	require.True(t, ok)
	assert.Equal(t, 2.0, got.NAV)
}

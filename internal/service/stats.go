package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/repo"
)

// StatsService computes summaries and day/week/month/year bucket tables over
// ledger records. All bucketing goes through the operating-day rule, so a
// 02:00 haul lands on the previous day's row everywhere.
type StatsService struct {
	records  repo.RecordRepo
	settings repo.SettingsRepo

	// now is swappable for tests.
	now func() time.Time
}

// NewStatsService constructs a StatsService backed by the provided repos.
func NewStatsService(records repo.RecordRepo, settings repo.SettingsRepo) *StatsService {
	return &StatsService{records: records, settings: settings, now: time.Now}
}

// Summary computes the headline metrics over the filtered record set.
func (s *StatsService) Summary(ctx context.Context, filter domain.RecordFilter) (domain.Summary, error) {
	recs, err := s.load(ctx, filter)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.StatsService.Summary: %w", err)
	}
	limit, err := s.settings.Get(ctx, repo.SettingFuelSubsidyLimit)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.StatsService.Summary: %w", err)
	}
	return Summarize(recs, limit), nil
}

// Bucket returns the aggregated rows for one period at the given granularity.
// The period argument depends on the kind: "2006-01" for day and week rows,
// "2006" for month rows, and empty for year rows (which span all history).
func (s *StatsService) Bucket(ctx context.Context, kind domain.BucketKind, period string) ([]domain.BucketRow, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown bucket kind %q", domain.ErrValidation, kind)
	}
	if err := checkPeriod(kind, period); err != nil {
		return nil, err
	}

	all, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.Bucket: %w", err)
	}

	groups := map[string][]domain.Record{}
	for _, rec := range all {
		day := rec.OperatingDate()
		var key string
		switch kind {
		case domain.BucketDay:
			if day.Format("2006-01") != period {
				continue
			}
			key = day.Format("2006-01-02")
		case domain.BucketWeek:
			if day.Format("2006-01") != period {
				continue
			}
			key = strconv.Itoa(domain.WeekOfMonth(day))
		case domain.BucketMonth:
			if day.Format("2006") != period {
				continue
			}
			key = day.Format("2006-01")
		case domain.BucketYear:
			key = day.Format("2006")
		}
		groups[key] = append(groups[key], rec)
	}

	rows := make([]domain.BucketRow, 0, len(groups))
	for key, recs := range groups {
		rows = append(rows, bucketRow(key, recs))
	}
	sort.Slice(rows, func(i, j int) bool {
		// Week keys are single digits, everything else is zero-padded, so
		// lexicographic order is chronological for all four kinds.
		return rows[i].Key < rows[j].Key
	})
	return rows, nil
}

// Current returns the live snapshot of the operating month containing now,
// including the subsidy gauge.
func (s *StatsService) Current(ctx context.Context) (domain.MonthSnapshot, error) {
	now := s.now()
	month := domain.OperatingDay(now, now.Format("15:04")).Format("2006-01")

	all, err := s.records.List(ctx)
	if err != nil {
		return domain.MonthSnapshot{}, fmt.Errorf("service.StatsService.Current: %w", err)
	}
	var recs []domain.Record
	for _, rec := range all {
		if rec.OperatingDate().Format("2006-01") == month {
			recs = append(recs, rec)
		}
	}

	limit, err := s.settings.Get(ctx, repo.SettingFuelSubsidyLimit)
	if err != nil {
		return domain.MonthSnapshot{}, fmt.Errorf("service.StatsService.Current: %w", err)
	}

	sum := Summarize(recs, limit)
	return domain.MonthSnapshot{
		Month:   month,
		Summary: sum,
		Subsidy: domain.SubsidyGauge{
			LimitLiters:     limit,
			UsedLiters:      sum.FuelLiters,
			RemainingLiters: limit - sum.FuelLiters,
			UsedPct:         sum.SubsidyUsedPct,
		},
	}, nil
}

// Cumulative returns the all-time snapshot. The configured mileage correction
// is added to the trip distance and the per-km ratios are recomputed against
// the corrected figure.
func (s *StatsService) Cumulative(ctx context.Context) (domain.CumulativeSnapshot, error) {
	all, err := s.records.List(ctx)
	if err != nil {
		return domain.CumulativeSnapshot{}, fmt.Errorf("service.StatsService.Cumulative: %w", err)
	}
	limit, err := s.settings.Get(ctx, repo.SettingFuelSubsidyLimit)
	if err != nil {
		return domain.CumulativeSnapshot{}, fmt.Errorf("service.StatsService.Cumulative: %w", err)
	}
	correction, err := s.settings.Get(ctx, repo.SettingMileageCorrection)
	if err != nil {
		return domain.CumulativeSnapshot{}, fmt.Errorf("service.StatsService.Cumulative: %w", err)
	}

	sum := Summarize(all, limit)
	corrected := sum.TotalDistance + correction
	sum.FuelEconomy = ratio(corrected, sum.FuelLiters, 2)
	sum.CostPerKm = ratio(float64(sum.TotalExpense), corrected, 0)

	return domain.CumulativeSnapshot{Summary: sum, CorrectedDistance: corrected}, nil
}

// TripSeries returns the trip count per month for the trailing `months`
// months, oldest first, ending at the current operating month. Months with no
// trips appear with a zero count.
func (s *StatsService) TripSeries(ctx context.Context, months int) ([]domain.TripSeriesPoint, error) {
	if months < 1 {
		months = 12
	}

	all, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.TripSeries: %w", err)
	}

	counts := map[string]int{}
	now := s.now()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	series := make([]domain.TripSeriesPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		counts[anchor.AddDate(0, -i, 0).Format("2006-01")] = 0
	}
	for _, rec := range all {
		if rec.Type != domain.TypeTrip {
			continue
		}
		key := rec.OperatingDate().Format("2006-01")
		if _, ok := counts[key]; ok {
			counts[key]++
		}
	}
	for i := months - 1; i >= 0; i-- {
		key := anchor.AddDate(0, -i, 0).Format("2006-01")
		series = append(series, domain.TripSeriesPoint{Month: key, Trips: counts[key]})
	}
	return series, nil
}

// FuelHistory returns one page of fuel records, newest first.
func (s *StatsService) FuelHistory(ctx context.Context, p domain.PaginationParams) (domain.FuelPage, error) {
	recs, total, err := s.records.ListByTypePaged(ctx, domain.TypeFuel, p)
	if err != nil {
		return domain.FuelPage{}, fmt.Errorf("service.StatsService.FuelHistory: %w", err)
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	return domain.FuelPage{Records: recs, Page: p.Page, Limit: p.Limit, Total: total}, nil
}

// load fetches all records and applies the filter.
func (s *StatsService) load(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	all, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Record
	for _, rec := range all {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Summarize computes the headline metrics over a record set. Pure function.
//
// Cancelled and ended markers are excluded from every money total but still
// count toward the working-duration figure. Fuel income is not a thing; fuel
// records contribute cost and litres.
func Summarize(records []domain.Record, subsidyLimit float64) domain.Summary {
	var sum domain.Summary
	days := map[string]struct{}{}

	for _, rec := range records {
		if !rec.Type.CountsForMoney() {
			continue
		}
		days[rec.OperatingDate().Format("2006-01-02")] = struct{}{}

		sum.TotalIncome += rec.Income
		sum.TotalExpense += rec.Cost
		switch rec.Type {
		case domain.TypeFuel:
			sum.FuelCost += rec.Cost
			sum.FuelLiters += rec.Liters
		case domain.TypeTrip:
			sum.TotalDistance += rec.Distance
			sum.TripCount++
		}
	}

	sum.NetIncome = sum.TotalIncome - sum.TotalExpense
	sum.OperatingDays = len(days)
	sum.DurationMinutes = int64(DutyDuration(records).Minutes())

	sum.FuelEconomy = ratio(sum.TotalDistance, sum.FuelLiters, 2)
	sum.CostPerKm = ratio(float64(sum.TotalExpense), sum.TotalDistance, 0)
	sum.SubsidyUsedPct = subsidyPct(sum.FuelLiters, subsidyLimit)
	return sum
}

// DutyDuration sums the time gaps between consecutive trip-family records,
// ordered chronologically. The gap that follows a trip-ended marker is off
// duty and is not counted. Pure function.
func DutyDuration(records []domain.Record) time.Duration {
	var duty []domain.Record
	for _, rec := range records {
		if rec.Type.InDutyWindow() {
			duty = append(duty, rec)
		}
	}
	sort.Slice(duty, func(i, j int) bool {
		return duty[i].OccurredAt().Before(duty[j].OccurredAt())
	})

	var total time.Duration
	for i := 1; i < len(duty); i++ {
		if duty[i-1].Type == domain.TypeTripEnded {
			continue
		}
		total += duty[i].OccurredAt().Sub(duty[i-1].OccurredAt())
	}
	return total
}

// bucketRow aggregates one group of records into a table row. Fuel cost is
// broken out of the expense column so net matches the driver's settlement:
// income − expense − fuel.
func bucketRow(key string, recs []domain.Record) domain.BucketRow {
	row := domain.BucketRow{Key: key}
	for _, rec := range recs {
		switch {
		case rec.Type == domain.TypeFuel:
			row.Fuel += rec.Cost
		case rec.Type.CountsForMoney():
			row.Income += rec.Income
			row.Expense += rec.Cost
		}
		if rec.Type == domain.TypeTrip {
			row.Distance += rec.Distance
			row.TripCount++
		}
	}
	row.Net = row.Income - row.Expense - row.Fuel
	row.DurationMinutes = int64(DutyDuration(recs).Minutes())
	return row
}

// checkPeriod validates the period string against the bucket kind.
func checkPeriod(kind domain.BucketKind, period string) error {
	switch kind {
	case domain.BucketDay, domain.BucketWeek:
		if _, err := time.Parse("2006-01", period); err != nil {
			return fmt.Errorf("%w: period must be YYYY-MM for kind %s", domain.ErrValidation, kind)
		}
	case domain.BucketMonth:
		if _, err := time.Parse("2006", period); err != nil {
			return fmt.Errorf("%w: period must be YYYY for kind %s", domain.ErrValidation, kind)
		}
	case domain.BucketYear:
		if period != "" {
			return fmt.Errorf("%w: kind year takes no period", domain.ErrValidation)
		}
	}
	return nil
}

// ratio divides num by den as decimals, rounded to places. Zero when the
// denominator (or numerator) is not positive.
func ratio(num, den float64, places int32) decimal.Decimal {
	if den <= 0 || num <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(num).Div(decimal.NewFromFloat(den)).Round(places)
}

// subsidyPct is min(100, 100·liters/limit), one decimal place, zero when no
// limit is configured.
func subsidyPct(liters, limit float64) decimal.Decimal {
	if limit <= 0 {
		return decimal.Zero
	}
	pct := decimal.NewFromFloat(liters * 100).Div(decimal.NewFromFloat(limit)).Round(1)
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

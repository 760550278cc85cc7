package weather

import (
	"math"
	"time"
)

const (
	// hourlyCount caps the hourly view at the next ~36 hours of
	// 3-hour samples.
	hourlyCount = 12
	// dailyCount caps the daily rollup at a 5-day forecast.
	dailyCount = 5
)

// Aggregate reduces a time-ordered sequence of 3-hour forecast samples
// into the truncated hourly view and the per-calendar-day rollup.
// Calendar dates are derived in loc (nil means UTC). The full input is
// always traversed before the daily rollup is truncated, since bucket
// identity depends on date grouping, not position.
//
// Condition, icon and precipitation of a bucket are taken from the
// first sample of that day and never re-evaluated; only high/low keep
// folding as later samples arrive.
func Aggregate(samples []ForecastSample, loc *time.Location) ([]HourlyPoint, []DailyBucket) {
	if loc == nil {
		loc = time.UTC
	}

	hourly := make([]HourlyPoint, 0, hourlyCount)
	for i, s := range samples {
		if i >= hourlyCount {
			break
		}
		label := "Now"
		if i > 0 {
			label = time.Unix(s.Timestamp, 0).In(loc).Format("3 PM")
		}
		hourly = append(hourly, HourlyPoint{
			Time:          label,
			Temperature:   round(s.Temp),
			Condition:     s.Condition,
			Icon:          MapIcon(s.Icon),
			Precipitation: round(s.Pop * 100),
			WindSpeed:     round(s.WindSpeedMS * 3.6),
		})
	}

	// Buckets keep first-seen insertion order; exactly one per
	// distinct calendar date in the input.
	type accumulator struct {
		bucket DailyBucket
		high   float64
		low    float64
	}
	var order []string
	byDate := make(map[string]*accumulator)

	for _, s := range samples {
		t := time.Unix(s.Timestamp, 0).In(loc)
		date := t.Format("2006-01-02")

		acc, ok := byDate[date]
		if !ok {
			byDate[date] = &accumulator{
				bucket: DailyBucket{
					Date:          date,
					DayName:       t.Weekday().String(),
					Condition:     s.Condition,
					Icon:          MapIcon(s.Icon),
					Precipitation: round(s.Pop * 100),
				},
				high: s.TempMax,
				low:  s.TempMin,
			}
			order = append(order, date)
			continue
		}
		acc.high = math.Max(acc.high, s.TempMax)
		acc.low = math.Min(acc.low, s.TempMin)
	}

	daily := make([]DailyBucket, 0, dailyCount)
	for _, date := range order {
		if len(daily) >= dailyCount {
			break
		}
		acc := byDate[date]
		acc.bucket.High = round(acc.high)
		acc.bucket.Low = round(acc.low)
		daily = append(daily, acc.bucket)
	}

	return hourly, daily
}

func round(v float64) int {
	return int(math.Round(v))
}

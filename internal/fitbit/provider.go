package fitbit

import (
	"context"
	"fmt"

	"github.com/digitaldrywood/healthpulse/internal/metrics"
)

var _ metrics.Provider = (*Client)(nil)

// Sleep sums all sleep sessions for the day. Efficiency is the best
// session's value; Fitbit reports it per session, not per day.
func (c *Client) Sleep(ctx context.Context, date string) (*metrics.SleepSummary, error) {
	var resp SleepResponse
	if err := c.get(ctx, fmt.Sprintf("/1.2/user/-/sleep/date/%s.json", date), &resp); err != nil {
		return nil, err
	}
	if len(resp.Sleep) == 0 {
		return nil, metrics.ErrNoData
	}

	sum := &metrics.SleepSummary{Date: date}
	for _, session := range resp.Sleep {
		sum.TotalMinutesAsleep += session.MinutesAsleep
		sum.TotalTimeInBed += session.TimeInBed
		if session.Efficiency > sum.Efficiency {
			sum.Efficiency = session.Efficiency
		}
		sum.DeepSleepMinutes += session.Levels.Summary["deep"].Minutes
		sum.LightSleepMinutes += session.Levels.Summary["light"].Minutes
		sum.RemSleepMinutes += session.Levels.Summary["rem"].Minutes
		sum.AwakeMinutes += session.Levels.Summary["wake"].Minutes
	}

	return sum, nil
}

// HeartRate combines the daily summary (resting rate) with the 1-minute
// intraday series (min, max, average).
func (c *Client) HeartRate(ctx context.Context, date string) (*metrics.HeartRateSummary, error) {
	var resp HeartRateResponse
	if err := c.get(ctx, fmt.Sprintf("/1/user/-/activities/heart/date/%s/1d/1min.json", date), &resp); err != nil {
		return nil, err
	}
	if len(resp.ActivitiesHeart) == 0 {
		return nil, metrics.ErrNoData
	}

	sum := &metrics.HeartRateSummary{
		Date:             date,
		RestingHeartRate: resp.ActivitiesHeart[0].Value.RestingHeartRate,
	}

	if samples := resp.Intraday.Dataset; len(samples) > 0 {
		min, max, total := samples[0].Value, samples[0].Value, 0.0
		for _, s := range samples {
			if s.Value < min {
				min = s.Value
			}
			if s.Value > max {
				max = s.Value
			}
			total += s.Value
		}
		sum.MinHeartRate = min
		sum.MaxHeartRate = max
		sum.AvgHeartRate = total / float64(len(samples))
	}

	return sum, nil
}

// Stress reports daily rmssd as the HRV score. Fitbit has no direct stress
// score; the readiness stress balance fills in when the account has access
// to it, and the stress field is marked absent otherwise.
func (c *Client) Stress(ctx context.Context, date string) (*metrics.StressSummary, error) {
	var hrv HRVResponse
	if err := c.get(ctx, fmt.Sprintf("/1/user/-/hrv/date/%s.json", date), &hrv); err != nil {
		return nil, err
	}

	sum := &metrics.StressSummary{Date: date}
	if len(hrv.HRV) > 0 {
		sum.HRVScore = hrv.HRV[0].Value.DailyRmssd
	}

	// Premium-only endpoint; failures here are not worth surfacing.
	var readiness ReadinessResponse
	if err := c.get(ctx, fmt.Sprintf("/1/user/-/readiness/date/%s.json", date), &readiness); err == nil && len(readiness.Readiness) > 0 {
		sum.StressScore = readiness.Readiness[0].Value.StressBalance
		sum.HasStressScore = true
	}

	return sum, nil
}

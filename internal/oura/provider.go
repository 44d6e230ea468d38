package oura

import (
	"context"
	"fmt"

	"github.com/digitaldrywood/healthpulse/internal/metrics"
)

var _ metrics.Provider = (*Client)(nil)

// Sleep sums the day's sleep periods. Oura reports efficiency per period;
// the summary carries the mean. Bed time comes from duration, which Oura
// reports in seconds.
func (c *Client) Sleep(ctx context.Context, date string) (*metrics.SleepSummary, error) {
	resp, err := c.sleepPeriods(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(resp.Sleep) == 0 {
		return nil, metrics.ErrNoData
	}

	sum := &metrics.SleepSummary{Date: date}
	var efficiencyTotal float64
	for _, period := range resp.Sleep {
		sum.TotalMinutesAsleep += period.Total
		sum.TotalTimeInBed += period.Duration / 60
		efficiencyTotal += period.Efficiency
		sum.DeepSleepMinutes += period.Deep
		sum.LightSleepMinutes += period.Light
		sum.RemSleepMinutes += period.Rem
		sum.AwakeMinutes += period.Awake
	}
	sum.Efficiency = efficiencyTotal / float64(len(resp.Sleep))

	return sum, nil
}

// HeartRate aggregates the day's bpm samples. Oura has no direct resting
// heart rate; the lowest sleeping heart rate stands in for it when sleep
// data is available.
func (c *Client) HeartRate(ctx context.Context, date string) (*metrics.HeartRateSummary, error) {
	var resp HeartRateResponse
	if err := c.get(ctx, fmt.Sprintf("/v1/heartrate?start=%s&end=%s", date, date), &resp); err != nil {
		return nil, err
	}
	if len(resp.HeartRate) == 0 {
		return nil, metrics.ErrNoData
	}

	samples := resp.HeartRate
	min, max, total := samples[0].BPM, samples[0].BPM, 0.0
	for _, s := range samples {
		if s.BPM < min {
			min = s.BPM
		}
		if s.BPM > max {
			max = s.BPM
		}
		total += s.BPM
	}

	sum := &metrics.HeartRateSummary{
		Date:         date,
		MinHeartRate: min,
		MaxHeartRate: max,
		AvgHeartRate: total / float64(len(samples)),
	}

	// Best effort only; heart rate data is still useful without it.
	if sleep, err := c.sleepPeriods(ctx, date); err == nil && len(sleep.Sleep) > 0 {
		sum.RestingHeartRate = sleep.Sleep[0].HRLowest
	}

	return sum, nil
}

// Stress uses the readiness score as the stress proxy and the sleeping
// rmssd as the HRV score.
func (c *Client) Stress(ctx context.Context, date string) (*metrics.StressSummary, error) {
	var readiness ReadinessResponse
	if err := c.get(ctx, fmt.Sprintf("/v1/readiness?start=%s&end=%s", date, date), &readiness); err != nil {
		return nil, err
	}

	sum := &metrics.StressSummary{Date: date}
	if len(readiness.Readiness) > 0 {
		sum.StressScore = readiness.Readiness[0].Score
		sum.HasStressScore = true
	}

	if sleep, err := c.sleepPeriods(ctx, date); err == nil && len(sleep.Sleep) > 0 {
		sum.HRVScore = sleep.Sleep[0].Rmssd
	}

	return sum, nil
}

func (c *Client) sleepPeriods(ctx context.Context, date string) (*SleepResponse, error) {
	var resp SleepResponse
	if err := c.get(ctx, fmt.Sprintf("/v1/sleep?start=%s&end=%s", date, date), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

package oura

// SleepResponse is the body of the sleep summary endpoint. Each period is
// one sleep session; short days can still contain naps alongside the main
// sleep.
type SleepResponse struct {
	Sleep []SleepPeriod `json:"sleep"`
}

type SleepPeriod struct {
	SummaryDate string  `json:"summary_date"`
	Total       float64 `json:"total"`
	Duration    float64 `json:"duration"`
	Efficiency  float64 `json:"efficiency"`
	Deep        float64 `json:"deep"`
	Light       float64 `json:"light"`
	Rem         float64 `json:"rem"`
	Awake       float64 `json:"awake"`
	HRLowest    float64 `json:"hr_lowest"`
	HRAverage   float64 `json:"hr_average"`
	Rmssd       float64 `json:"rmssd"`
}

// ReadinessResponse is the body of the daily readiness endpoint.
type ReadinessResponse struct {
	Readiness []ReadinessDay `json:"readiness"`
}

type ReadinessDay struct {
	SummaryDate string  `json:"summary_date"`
	Score       float64 `json:"score"`
}

// HeartRateResponse is the body of the heart rate sample endpoint.
type HeartRateResponse struct {
	HeartRate []HeartRateSample `json:"heartrate"`
}

type HeartRateSample struct {
	BPM       float64 `json:"bpm"`
	Source    string  `json:"source"`
	Timestamp string  `json:"timestamp"`
}

type userInfoResponse struct {
	Email string `json:"email"`
	Age   int    `json:"age"`
}

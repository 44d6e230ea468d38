package fitbit

// SleepResponse is the body of /1.2/user/-/sleep/date/{date}.json. A day
// can contain several sleep sessions (naps plus the main sleep).
type SleepResponse struct {
	Sleep []SleepSession `json:"sleep"`
}

type SleepSession struct {
	DateOfSleep   string      `json:"dateOfSleep"`
	MinutesAsleep float64     `json:"minutesAsleep"`
	TimeInBed     float64     `json:"timeInBed"`
	Efficiency    float64     `json:"efficiency"`
	IsMainSleep   bool        `json:"isMainSleep"`
	Levels        SleepLevels `json:"levels"`
}

// SleepLevels.Summary keys are stage names: "deep", "light", "rem", "wake".
type SleepLevels struct {
	Summary map[string]SleepStage `json:"summary"`
}

type SleepStage struct {
	Minutes float64 `json:"minutes"`
	Count   int     `json:"count"`
}

// HeartRateResponse is the body of the intraday heart endpoint.
//
// {
//     "activities-heart": [
//         {"dateTime": "2024-01-01", "value": {"restingHeartRate": 55, "heartRateZones": [...]}}
//     ],
//     "activities-heart-intraday": {
//         "dataset": [{"time": "13:08:41", "value": 122}],
//         "datasetInterval": 1,
//         "datasetType": "minute"
//     }
// }
type HeartRateResponse struct {
	ActivitiesHeart []HeartActivity       `json:"activities-heart"`
	Intraday        HeartActivityIntraday `json:"activities-heart-intraday"`
}

type HeartActivity struct {
	DateTime string     `json:"dateTime"`
	Value    HeartValue `json:"value"`
}

type HeartValue struct {
	RestingHeartRate float64         `json:"restingHeartRate"`
	HeartRateZones   []HeartRateZone `json:"heartRateZones"`
}

type HeartRateZone struct {
	Name        string  `json:"name"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Minutes     float64 `json:"minutes"`
	CaloriesOut float64 `json:"caloriesOut"`
}

type IntradaySample struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

type HeartActivityIntraday struct {
	Dataset         []IntradaySample `json:"dataset"`
	DatasetInterval int              `json:"datasetInterval"`
	DatasetType     string           `json:"datasetType"`
}

// HRVResponse is the body of /1/user/-/hrv/date/{date}.json.
type HRVResponse struct {
	HRV []HRVDay `json:"hrv"`
}

type HRVDay struct {
	DateTime string   `json:"dateTime"`
	Value    HRVValue `json:"value"`
}

type HRVValue struct {
	DailyRmssd float64 `json:"dailyRmssd"`
	DeepRmssd  float64 `json:"deepRmssd"`
}

// ReadinessResponse is the body of the readiness endpoint, available only
// on premium accounts.
type ReadinessResponse struct {
	Readiness []ReadinessDay `json:"readiness"`
}

type ReadinessDay struct {
	DateTime string         `json:"dateTime"`
	Value    ReadinessValue `json:"value"`
}

type ReadinessValue struct {
	StressBalance float64 `json:"stressBalance"`
}

type profileResponse struct {
	User struct {
		FullName string `json:"fullName"`
	} `json:"user"`
}

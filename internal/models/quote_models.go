package models

import "encoding/json"

// Quote is a real-time quote as returned by the financial-data provider.
// Field names follow Financial Modeling Prep so the serialized form matches
// the provider object.
type Quote struct {
	Symbol               string  `json:"symbol"`
	Name                 string  `json:"name"`
	Price                float64 `json:"price"`
	ChangesPercentage    float64 `json:"changesPercentage"`
	Change               float64 `json:"change"`
	DayLow               float64 `json:"dayLow"`
	DayHigh              float64 `json:"dayHigh"`
	YearHigh             float64 `json:"yearHigh"`
	YearLow              float64 `json:"yearLow"`
	MarketCap            float64 `json:"marketCap"`
	PriceAvg50           float64 `json:"priceAvg50"`
	PriceAvg200          float64 `json:"priceAvg200"`
	Exchange             string  `json:"exchange"`
	Volume               float64 `json:"volume"`
	AvgVolume            float64 `json:"avgVolume"`
	Open                 float64 `json:"open"`
	PreviousClose        float64 `json:"previousClose"`
	EPS                  float64 `json:"eps"`
	PE                   float64 `json:"pe"`
	EarningsAnnouncement string  `json:"earningsAnnouncement"`
	SharesOutstanding    float64 `json:"sharesOutstanding"`
	Timestamp            int64   `json:"timestamp"`

	// Raw is the provider object exactly as received, nulls and unknown
	// fields included. Empty for quotes built in code.
	Raw json.RawMessage `json:"-"`
}

func (q *Quote) UnmarshalJSON(data []byte) error {
	type quote Quote
	var aux quote
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*q = Quote(aux)
	q.Raw = append(json.RawMessage(nil), data...)
	return nil
}

package models

type StockData struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
}

type HistoricalDataPoint struct {
	Date         string  `json:"date"`
	ClosingPrice float64 `json:"closingPrice"`
}

package stocks

import "github.com/spacesedan/stocksage/internal/models"

// Sample dashboard data. The movers and history are fixed until a market
// movers feed is wired in.
var (
	gainers = []models.StockData{
		{Symbol: "GME", Name: "GameStop Corp.", Price: 25.00, ChangePercent: 10.50},
		{Symbol: "AMC", Name: "AMC Entertainment Holdings Inc.", Price: 5.00, ChangePercent: 8.20},
		{Symbol: "NVDA", Name: "Nvidia Corp", Price: 900.00, ChangePercent: 7.00},
		{Symbol: "TSLA", Name: "Tesla Inc", Price: 200.00, ChangePercent: 6.50},
		{Symbol: "GOOGL", Name: "Alphabet Inc", Price: 160.00, ChangePercent: 5.00},
	}

	losers = []models.StockData{
		{Symbol: "BBBY", Name: "Bed Bath & Beyond Inc.", Price: 0.50, ChangePercent: -20.30},
		{Symbol: "MULN", Name: "Mullen Automotive Inc.", Price: 1.00, ChangePercent: -15.60},
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 170.00, ChangePercent: -4.00},
		{Symbol: "MSFT", Name: "Microsoft Corp.", Price: 400.00, ChangePercent: -3.50},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: 180.00, ChangePercent: -2.00},
	}

	history = []models.HistoricalDataPoint{
		{Date: "2024-01-01", ClosingPrice: 20.00},
		{Date: "2024-01-02", ClosingPrice: 21.00},
		{Date: "2024-01-03", ClosingPrice: 22.50},
		{Date: "2024-01-04", ClosingPrice: 22.00},
		{Date: "2024-01-05", ClosingPrice: 23.00},
		{Date: "2024-01-06", ClosingPrice: 23.50},
		{Date: "2024-01-07", ClosingPrice: 24.00},
		{Date: "2024-01-08", ClosingPrice: 23.50},
		{Date: "2024-01-09", ClosingPrice: 24.50},
		{Date: "2024-01-10", ClosingPrice: 25.00},
		{Date: "2024-01-11", ClosingPrice: 26.00},
		{Date: "2024-01-12", ClosingPrice: 25.50},
		{Date: "2024-01-13", ClosingPrice: 27.00},
		{Date: "2024-01-14", ClosingPrice: 26.50},
		{Date: "2024-01-15", ClosingPrice: 28.00},
		{Date: "2024-01-16", ClosingPrice: 27.50},
		{Date: "2024-01-17", ClosingPrice: 29.00},
		{Date: "2024-01-18", ClosingPrice: 28.50},
		{Date: "2024-01-19", ClosingPrice: 30.00},
		{Date: "2024-01-20", ClosingPrice: 29.50},
		{Date: "2024-01-21", ClosingPrice: 31.00},
		{Date: "2024-01-22", ClosingPrice: 30.50},
	}
)

const DEFAULT_LIMIT = 5

func take(data []models.StockData, n int) []models.StockData {
	if n <= 0 || n > len(data) {
		n = len(data)
	}
	out := make([]models.StockData, n)
	copy(out, data[:n])
	return out
}

// TopGainers returns up to n gainers, largest move first. n <= 0 means all.
func TopGainers(n int) []models.StockData {
	return take(gainers, n)
}

// TopLosers returns up to n losers, largest drop first. n <= 0 means all.
func TopLosers(n int) []models.StockData {
	return take(losers, n)
}

// HistoricalData returns daily closes for symbol. The sample series is the
// same for every symbol and period.
func HistoricalData(symbol, period string) []models.HistoricalDataPoint {
	out := make([]models.HistoricalDataPoint, len(history))
	copy(out, history)
	return out
}

package model

type DailyRevenue struct {
	Date    string  `db:"date" json:"date"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

type Stats struct {
	Revenue       float64        `json:"revenue"`
	SalesCount    int64          `json:"salesCount"`
	LowStockCount int64          `json:"lowStockCount"`
	RecentSales   []Sale         `json:"recentSales"`
	DailyRevenue  []DailyRevenue `json:"dailyRevenue"`
}

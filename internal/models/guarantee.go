package models

// DailyRanking is one entry of a guarantee-program ranking series.
type DailyRanking struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Rank       int    `json:"rank"`
	IsAchieved bool   `json:"is_achieved"`
}

// GuaranteeStatistics is the derived achievement report for a guarantee
// slot over a date range. Never persisted; recomputed on every call.
type GuaranteeStatistics struct {
	TargetRank      int            `json:"target_rank"`
	CurrentRank     *int           `json:"current_rank"`
	FirstRank       *int           `json:"first_rank"`
	BestRank        *int           `json:"best_rank"`
	AverageRank     *float64       `json:"average_rank"`
	AchievedDays    int            `json:"achieved_days"`
	TotalDays       int            `json:"total_days"`
	AchievementRate int            `json:"achievement_rate"`
	DailyRankings   []DailyRanking `json:"daily_rankings"`
}

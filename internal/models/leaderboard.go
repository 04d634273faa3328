package models

// LeaderboardEntry is a single ranked game on a per-mode leaderboard.
// Ranks are dense, assigned by result position; the order among equal
// scores is not defined.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	Username   string  `json:"username"`
	Score      int     `json:"score"`
	Accuracy   float64 `json:"accuracy"`
	GameMode   string  `json:"game_mode"`
	Difficulty string  `json:"difficulty"`
	ShotsMade  int     `json:"shots_made"`
	ShotsTaken int     `json:"shots_taken"`
	MaxStreak  int     `json:"max_streak"`
}

// LeaderboardResponse is the per-mode leaderboard payload
type LeaderboardResponse struct {
	GameMode   string             `json:"game_mode"`
	Difficulty string             `json:"difficulty"`
	Entries    []LeaderboardEntry `json:"entries"`
}

// TopPlayerEntry is a single ranked user on the global leaderboard
type TopPlayerEntry struct {
	Rank       int     `json:"rank"`
	Username   string  `json:"username"`
	TotalScore int     `json:"total_score"`
	TotalGames int     `json:"total_games"`
	Accuracy   float64 `json:"accuracy"`
	BestStreak int     `json:"best_streak"`
}

// CompletionEvent is published when a game finishes and the leaderboards
// may have changed. It is fanned out to websocket clients so scoreboards
// can refresh without polling.
type CompletionEvent struct {
	Type       string `json:"type"`
	GameID     uint   `json:"game_id"`
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	GameMode   string `json:"game_mode"`
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
}

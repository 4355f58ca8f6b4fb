package models

import "time"

type RecommendationResult struct {
	Algorithm string        `json:"algorithm"`
	Selected  MovieCard     `json:"selected"`
	Cluster   int           `json:"cluster"`
	Items     []MovieCard   `json:"items"`
	Grid      [][]MovieCard `json:"grid"`
}

// ====== Historial de consultas (colección recommendation_history) ======

type HistoryItem struct {
	TMDBID  int    `bson:"tmdbId" json:"tmdbId"`
	Title   string `bson:"title"  json:"title"`
}

type HistoryEntry struct {
	ID        string        `bson:"_id,omitempty" json:"id"`
	Algorithm string        `bson:"algorithm"     json:"algorithm"`
	TMDBID    int           `bson:"tmdbId"        json:"tmdbId"`
	Title     string        `bson:"title"         json:"title"`
	Cluster   int           `bson:"cluster"       json:"cluster"`
	N         int           `bson:"n"             json:"n"`
	Items     []HistoryItem `bson:"items"         json:"items"`
	CreatedAt time.Time     `bson:"createdAt"     json:"createdAt"`
}

package models

// Poster es la respuesta de /posters/{tmdbId}. Available=false equivale a
// "Poster no disponible".
type Poster struct {
	TMDBID    int    `json:"tmdbId"`
	Size      string `json:"size"`
	URL       string `json:"url,omitempty"`
	Available bool   `json:"available"`
}

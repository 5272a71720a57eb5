package models

// Languages maps a language name to the number of bytes written in it
type Languages map[string]int64

// Total returns the summed byte count
func (l Languages) Total() int64 {
	var total int64
	for _, bytes := range l {
		total += bytes
	}
	return total
}

// LanguageStat is one entry of a language breakdown or ranking.
// Bytes is set for per-repository breakdowns, Repos for profile rankings.
type LanguageStat struct {
	Name       string  `json:"name"`
	Bytes      int64   `json:"bytes,omitempty"`
	Repos      int     `json:"repos,omitempty"`
	Percentage float64 `json:"percentage"`
}

package models

// Stats are the aggregate figures derived from a profile and its repositories
type Stats struct {
	TotalRepos        int            `json:"total_repos"`
	TotalStars        int            `json:"total_stars"`
	TotalForks        int            `json:"total_forks"`
	Followers         int            `json:"followers"`
	Following         int            `json:"following"`
	PublicGists       int            `json:"public_gists"`
	MostUsedLanguages []LanguageStat `json:"most_used_languages"`
}

// Portfolio groups everything fetched in one combined request
type Portfolio struct {
	User  *User        `json:"user"`
	Repos []Repository `json:"repos"`
	Stats Stats        `json:"stats"`
}

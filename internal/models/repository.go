package models

import "time"

type Repository struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	FullName        string     `json:"full_name"`
	Description     string     `json:"description"`
	URL             string     `json:"html_url"`
	Homepage        string     `json:"homepage"`
	Topics          []string   `json:"topics"`
	Language        string     `json:"language"`
	StarsCount      int        `json:"stargazers_count"`
	WatchersCount   int        `json:"watchers_count"`
	ForksCount      int        `json:"forks_count"`
	OpenIssuesCount int        `json:"open_issues_count"`
	Fork            bool       `json:"fork"`
	Archived        bool       `json:"archived"`
	Visibility      string     `json:"visibility"`
	DefaultBranch   string     `json:"default_branch"`
	Size            int        `json:"size"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PushedAt        *time.Time `json:"pushed_at"`
}

// EnrichedRepository is a repository with its language breakdown attached.
// It is built on demand and never stored.
type EnrichedRepository struct {
	Repository
	LanguageStats []LanguageStat `json:"language_stats"`
	TotalBytes    int64          `json:"total_bytes"`
}

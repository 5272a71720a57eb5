package github

import (
	"fmt"
	"strconv"

	"github.com/Kamar-Folarin/portfolio-service/internal/config"
)

var (
	validSorts      = map[string]bool{"created": true, "updated": true, "pushed": true, "full_name": true}
	validDirections = map[string]bool{"asc": true, "desc": true}
)

// maxPerPage is the largest page size the repositories endpoint accepts
const maxPerPage = 100

// RepoListOptions controls the ordering and page size of a repository listing
type RepoListOptions struct {
	Sort      string `form:"sort" json:"sort"`
	Direction string `form:"direction" json:"direction"`
	PerPage   int    `form:"per_page" json:"per_page"`
}

// DefaultRepoListOptions returns the listing used for the portfolio: most recently pushed first
func DefaultRepoListOptions() RepoListOptions {
	return RepoListOptions{Sort: "pushed", Direction: "desc", PerPage: maxPerPage}
}

// RepoListOptionsFromConfig converts configured defaults into list options
func RepoListOptionsFromConfig(cfg config.RepoListConfig) RepoListOptions {
	return RepoListOptions{Sort: cfg.Sort, Direction: cfg.Direction, PerPage: cfg.PerPage}
}

// WithDefaults fills unset fields from defaults
func (o RepoListOptions) WithDefaults(defaults RepoListOptions) RepoListOptions {
	if o.Sort == "" {
		o.Sort = defaults.Sort
	}
	if o.Direction == "" {
		o.Direction = defaults.Direction
	}
	if o.PerPage == 0 {
		o.PerPage = defaults.PerPage
	}
	return o
}

// Validate checks the options against what the API accepts
func (o RepoListOptions) Validate() error {
	if !validSorts[o.Sort] {
		return NewValidationError("sort", o.Sort)
	}
	if !validDirections[o.Direction] {
		return NewValidationError("direction", o.Direction)
	}
	if o.PerPage < 1 || o.PerPage > maxPerPage {
		return NewValidationError("per_page", strconv.Itoa(o.PerPage))
	}
	return nil
}

func (o RepoListOptions) cacheKey(username string) string {
	return fmt.Sprintf("repos:%s:%s:%s:%d", username, o.Sort, o.Direction, o.PerPage)
}

func (o RepoListOptions) query() string {
	return fmt.Sprintf("sort=%s&direction=%s&per_page=%d", o.Sort, o.Direction, o.PerPage)
}

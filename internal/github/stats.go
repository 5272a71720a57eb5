package github

import (
	"sort"

	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

// topLanguages is how many languages the profile ranking keeps
const topLanguages = 5

// CalculateStats derives aggregate figures from a profile and its repositories.
// Forks are excluded from every figure. user may be nil.
func CalculateStats(user *models.User, repos []models.Repository) models.Stats {
	stats := models.Stats{MostUsedLanguages: []models.LanguageStat{}}
	if user != nil {
		stats.Followers = user.Followers
		stats.Following = user.Following
		stats.PublicGists = user.PublicGists
	}

	var (
		counts = make(map[string]int)
		order  []string
	)
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		stats.TotalRepos++
		stats.TotalStars += repo.StarsCount
		stats.TotalForks += repo.ForksCount

		if repo.Language == "" {
			continue
		}
		if _, seen := counts[repo.Language]; !seen {
			order = append(order, repo.Language)
		}
		counts[repo.Language]++
	}

	if stats.TotalRepos == 0 {
		return stats
	}

	ranking := make([]models.LanguageStat, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, models.LanguageStat{
			Name:       name,
			Repos:      counts[name],
			Percentage: float64(counts[name]) / float64(stats.TotalRepos) * 100,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Percentage > ranking[j].Percentage
	})
	if len(ranking) > topLanguages {
		ranking = ranking[:topLanguages]
	}
	stats.MostUsedLanguages = ranking

	return stats
}

// LanguageBreakdown turns a byte map into percentages of its total, largest
// first. Equal shares are ordered by name.
func LanguageBreakdown(languages models.Languages) ([]models.LanguageStat, int64) {
	total := languages.Total()
	breakdown := make([]models.LanguageStat, 0, len(languages))
	for name, bytes := range languages {
		var pct float64
		if total > 0 {
			pct = float64(bytes) / float64(total) * 100
		}
		breakdown = append(breakdown, models.LanguageStat{Name: name, Bytes: bytes, Percentage: pct})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Percentage != breakdown[j].Percentage {
			return breakdown[i].Percentage > breakdown[j].Percentage
		}
		return breakdown[i].Name < breakdown[j].Name
	})
	return breakdown, total
}

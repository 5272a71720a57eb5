package github

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

func TestCalculateStats(t *testing.T) {
	repos := []models.Repository{
		{Name: "a", StarsCount: 10, Language: "TS"},
		{Name: "b", StarsCount: 20, Language: "JS"},
		{Name: "c", StarsCount: 5, Language: "TS", Fork: true},
	}

	stats := CalculateStats(nil, repos)

	assert.Equal(t, 2, stats.TotalRepos)
	assert.Equal(t, 30, stats.TotalStars)
	assert.Equal(t, []models.LanguageStat{
		{Name: "TS", Repos: 1, Percentage: 50},
		{Name: "JS", Repos: 1, Percentage: 50},
	}, stats.MostUsedLanguages)
	assert.Zero(t, stats.Followers)
	assert.Zero(t, stats.Following)
	assert.Zero(t, stats.PublicGists)
}

func TestCalculateStats_ForksNeverCount(t *testing.T) {
	repos := []models.Repository{
		{Name: "own", StarsCount: 1, ForksCount: 2, Language: "Go"},
	}
	withForks := append([]models.Repository{}, repos...)
	withForks = append(withForks,
		models.Repository{Name: "fork1", StarsCount: 100, ForksCount: 50, Language: "Rust", Fork: true},
		models.Repository{Name: "fork2", StarsCount: 7, Language: "Go", Fork: true},
	)

	assert.Equal(t, CalculateStats(nil, repos), CalculateStats(nil, withForks))
}

func TestCalculateStats_NoOwnRepos(t *testing.T) {
	user := &models.User{Login: "octocat", Followers: 4, Following: 2, PublicGists: 1}

	stats := CalculateStats(user, []models.Repository{{Name: "f", StarsCount: 9, Language: "Go", Fork: true}})

	assert.Equal(t, 0, stats.TotalRepos)
	assert.Equal(t, 0, stats.TotalStars)
	assert.Equal(t, 0, stats.TotalForks)
	assert.Empty(t, stats.MostUsedLanguages)
	assert.Equal(t, 4, stats.Followers)
	assert.Equal(t, 2, stats.Following)
	assert.Equal(t, 1, stats.PublicGists)
}

func TestCalculateStats_RankingKeepsTopFive(t *testing.T) {
	var repos []models.Repository
	langs := map[string]int{"Go": 4, "TS": 3, "Python": 2, "Rust": 1, "C": 1, "Shell": 1}
	for _, name := range []string{"Go", "TS", "Python", "Rust", "C", "Shell"} {
		for i := 0; i < langs[name]; i++ {
			repos = append(repos, models.Repository{Name: name, Language: name})
		}
	}
	repos = append(repos, models.Repository{Name: "docs"})

	stats := CalculateStats(nil, repos)

	assert.Equal(t, 13, stats.TotalRepos)
	if assert.Len(t, stats.MostUsedLanguages, 5) {
		assert.Equal(t, "Go", stats.MostUsedLanguages[0].Name)
		assert.InDelta(t, 400.0/13, stats.MostUsedLanguages[0].Percentage, 1e-9)
		assert.Equal(t, "TS", stats.MostUsedLanguages[1].Name)
		assert.Equal(t, "Python", stats.MostUsedLanguages[2].Name)
		assert.Equal(t, "Rust", stats.MostUsedLanguages[3].Name)
		assert.Equal(t, "C", stats.MostUsedLanguages[4].Name)
	}
	for i := 1; i < len(stats.MostUsedLanguages); i++ {
		assert.GreaterOrEqual(t, stats.MostUsedLanguages[i-1].Percentage, stats.MostUsedLanguages[i].Percentage)
	}
}

func TestLanguageBreakdown(t *testing.T) {
	breakdown, total := LanguageBreakdown(models.Languages{"Go": 7500, "Shell": 2500})

	assert.Equal(t, int64(10000), total)
	assert.Equal(t, []models.LanguageStat{
		{Name: "Go", Bytes: 7500, Percentage: 75},
		{Name: "Shell", Bytes: 2500, Percentage: 25},
	}, breakdown)

	var sum float64
	for _, stat := range breakdown {
		sum += stat.Percentage
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestLanguageBreakdown_ZeroBytes(t *testing.T) {
	breakdown, total := LanguageBreakdown(models.Languages{"Go": 0, "C": 0})

	assert.Equal(t, int64(0), total)
	assert.Equal(t, []models.LanguageStat{
		{Name: "C", Percentage: 0},
		{Name: "Go", Percentage: 0},
	}, breakdown)
}

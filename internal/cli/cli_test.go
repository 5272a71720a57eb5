package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/portfolio-service/internal/errors"
	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	defer SetVersion("", "", "")

	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)

	root := newRootCmd()
	assert.Equal(t, "1.0.0", root.Version)
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{
		{"serve"},
		{"stats"},
		{"projects"},
		{"articles"},
		{"cache", "clear"},
		{"cache", "prune"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	projects, _, _ := root.Find([]string{"projects"})
	assert.NotNil(t, projects.Flags().Lookup("limit"))
	articles, _, _ := root.Find([]string{"articles"})
	assert.NotNil(t, articles.Flags().Lookup("category"))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProjectsRejectsNonPositiveLimit(t *testing.T) {
	_, err := execute(t, "projects", "--limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit must be positive")
}

func TestCommandsRequireUsername(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "")

	_, err := execute(t, "stats")
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestCacheClearInMemory(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("CACHE_BACKEND", "memory")

	out, err := execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to clear")
}

func TestCachePruneInMemory(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("CACHE_BACKEND", "memory")

	out, err := execute(t, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "expires entries on its own")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Equal(t, logrus.StandardLogger(), loggerFromContext(context.Background()))

	l := newLogger(logrus.DebugLevel)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestPrintPortfolio(t *testing.T) {
	var out bytes.Buffer
	printPortfolio(&out, &models.Portfolio{
		User: &models.User{Login: "octocat", Name: "The Octocat", Bio: "Mascot"},
		Stats: models.Stats{
			TotalRepos: 3,
			TotalStars: 42,
			MostUsedLanguages: []models.LanguageStat{
				{Name: "Go", Repos: 2, Percentage: 66.7},
				{Name: "Shell", Repos: 1, Percentage: 33.3},
			},
		},
	})

	s := out.String()
	assert.Contains(t, s, "The Octocat")
	assert.Contains(t, s, "@octocat")
	assert.Contains(t, s, "Mascot")
	assert.Contains(t, s, "42")
	assert.Contains(t, s, "Top languages")
	assert.Contains(t, s, "66.7% · 2 repos")
	assert.Contains(t, s, "Shell")
}

func TestPrintPortfolioWithoutLanguages(t *testing.T) {
	var out bytes.Buffer
	printPortfolio(&out, &models.Portfolio{Stats: models.Stats{MostUsedLanguages: []models.LanguageStat{}}})
	assert.NotContains(t, out.String(), "Top languages")
}

func TestPrintProjects(t *testing.T) {
	var out bytes.Buffer
	printProjects(&out, []models.EnrichedRepository{
		{
			Repository: models.Repository{
				Name:        "hello",
				Description: "Says hello",
				URL:         "https://github.com/octocat/hello",
				StarsCount:  5,
			},
			LanguageStats: []models.LanguageStat{
				{Name: "Go", Percentage: 80},
				{Name: "Shell", Percentage: 20},
			},
		},
	})

	s := out.String()
	assert.Contains(t, s, "hello")
	assert.Contains(t, s, "Says hello")
	assert.Contains(t, s, "https://github.com/octocat/hello")
	assert.Contains(t, s, "Go 80.0%, Shell 20.0%")

	out.Reset()
	printProjects(&out, nil)
	assert.Contains(t, out.String(), "No projects found")
}

func TestPrintArticles(t *testing.T) {
	var out bytes.Buffer
	printArticles(&out, []models.Article{
		{
			Title:       "Critical patch",
			Link:        "https://example.com/a",
			Description: "Patch now",
			PublishedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Source:      "CERT-FR",
			Category:    "vulnerabilities",
		},
	}, []string{"CNIL"})

	s := out.String()
	assert.Contains(t, s, "Critical patch")
	assert.Contains(t, s, "CERT-FR · 2026-03-01 · vulnerabilities")
	assert.Contains(t, s, "https://example.com/a")
	assert.Contains(t, s, "Unavailable feeds: CNIL")
}

type fakeReporter struct {
	ch chan *models.BatchProgress
}

func (f *fakeReporter) GetProgress() <-chan *models.BatchProgress { return f.ch }

func TestWatchProgress(t *testing.T) {
	reporter := &fakeReporter{ch: make(chan *models.BatchProgress, 1)}
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	var logs bytes.Buffer
	logger.SetOutput(&logs)

	ctx, cancel := context.WithCancel(context.Background())
	done := watchProgress(ctx, reporter, logger)

	reporter.ch <- &models.BatchProgress{TotalBatches: 2, ProcessedBatches: 1, TotalItems: 8, ProcessedItems: 6}
	require.Eventually(t, func() bool { return len(reporter.ch) == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not exit")
	}
	assert.Contains(t, logs.String(), "6/8")
	assert.Contains(t, logs.String(), "1/2")
}

func TestBar(t *testing.T) {
	assert.Equal(t, 0, countRune(bar(0), '█'))
	assert.Equal(t, barWidth, countRune(bar(100), '█'))
	assert.Equal(t, barWidth/2, countRune(bar(50), '█'))
	assert.Equal(t, barWidth, countRune(bar(150), '█'))
	assert.Equal(t, barWidth, len([]rune(bar(33.3))))
}

func countRune(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}

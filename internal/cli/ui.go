package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	styleBar         = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	barWidth = 20
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Domain Output
// =============================================================================

// printPortfolio prints the profile header, totals and top languages
func printPortfolio(w io.Writer, p *models.Portfolio) {
	if p.User != nil {
		fmt.Fprintln(w, StyleTitle.Render(p.User.DisplayName())+" "+StyleDim.Render("@"+p.User.Login))
		if p.User.Bio != "" {
			printDetail(w, "%s", p.User.Bio)
		}
		fmt.Fprintln(w)
	}

	printKeyValue(w, "Repositories", StyleNumber.Render(fmt.Sprint(p.Stats.TotalRepos)))
	printKeyValue(w, "Stars", StyleNumber.Render(fmt.Sprint(p.Stats.TotalStars)))
	printKeyValue(w, "Forks", StyleNumber.Render(fmt.Sprint(p.Stats.TotalForks)))
	printKeyValue(w, "Followers", StyleNumber.Render(fmt.Sprint(p.Stats.Followers)))
	printKeyValue(w, "Following", StyleNumber.Render(fmt.Sprint(p.Stats.Following)))
	printKeyValue(w, "Gists", StyleNumber.Render(fmt.Sprint(p.Stats.PublicGists)))

	if len(p.Stats.MostUsedLanguages) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render("Top languages"))
	for _, lang := range p.Stats.MostUsedLanguages {
		fmt.Fprintf(w, "  %s %s %s\n",
			styleKey.Render(lang.Name),
			styleBar.Render(bar(lang.Percentage)),
			StyleDim.Render(fmt.Sprintf("%5.1f%% · %d repos", lang.Percentage, lang.Repos)))
	}
}

// printProjects prints one block per project
func printProjects(w io.Writer, projects []models.EnrichedRepository) {
	if len(projects) == 0 {
		printInfo(w, "No projects found")
		return
	}
	for i, p := range projects {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, StyleTitle.Render(p.Name)+" "+StyleDim.Render(fmt.Sprintf("★ %d · ⑂ %d", p.StarsCount, p.ForksCount)))
		if p.Description != "" {
			printDetail(w, "%s", p.Description)
		}
		fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleLink.Render(p.URL))
		if langs := formatLanguages(p.LanguageStats); langs != "" {
			printDetail(w, "%s", langs)
		}
	}
}

// printArticles prints the articles followed by any feeds that failed
func printArticles(w io.Writer, articles []models.Article, failed []string) {
	if len(articles) == 0 {
		printInfo(w, "No articles in this category")
	}
	for i, a := range articles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, StyleValue.Render(a.Title))
		meta := a.Source
		if !a.PublishedAt.IsZero() {
			meta += " · " + a.PublishedAt.Format("2006-01-02")
		}
		if a.Category != "" {
			meta += " · " + a.Category
		}
		printDetail(w, "%s", meta)
		if a.Description != "" {
			printDetail(w, "%s", a.Description)
		}
		fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleLink.Render(a.Link))
	}
	if len(failed) > 0 {
		fmt.Fprintln(w)
		printWarning(w, "Unavailable feeds: %s", strings.Join(failed, ", "))
	}
}

// formatLanguages renders a breakdown as "Go 80.0%, Shell 20.0%"
func formatLanguages(stats []models.LanguageStat) string {
	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", s.Name, s.Percentage))
	}
	return strings.Join(parts, ", ")
}

// bar draws a fixed-width percentage bar
func bar(percentage float64) string {
	filled := int(percentage/100*barWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

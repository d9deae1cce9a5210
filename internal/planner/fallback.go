package planner

import (
	"strings"
	"unicode"

	"github.com/davidbz/forge/internal/domain"
)

const maxSlugLength = 40

// FallbackPlan is the deterministic plan used when no provider can produce
// one. It always describes a static three-file web project.
func FallbackPlan(description string) *domain.ProjectPlan {
	return &domain.ProjectPlan{
		ProjectName: Slugify(description),
		Description: description,
		Features:    []string{"Responsive design", "Interactive UI", "Modern styling"},
		TechStack:   []string{"html", "css", "javascript"},
		FileStructure: []domain.FileEntry{
			{Name: "index.html", Type: domain.EntryFile, FileType: "html", Description: "Main HTML structure"},
			{Name: "styles.css", Type: domain.EntryFile, FileType: "css", Description: "Styling and layout"},
			{Name: "script.js", Type: domain.EntryFile, FileType: "javascript", Description: "Application logic"},
			{Name: "assets", Type: domain.EntryDirectory, Description: "Static assets"},
		},
		Dependencies: []string{},
		Architecture: "Static web app: index.html loads styles.css and script.js",
	}
}

// Slugify turns free text into a kebab-case project name.
func Slugify(text string) string {
	var builder strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
			lastDash = false
		case !lastDash:
			builder.WriteRune('-')
			lastDash = true
		}
	}

	slug := strings.Trim(builder.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return "generated-project"
	}
	return slug
}

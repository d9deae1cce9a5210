package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/storage"
)

// packageManifest is the package.json shape emitted with every project.
type packageManifest struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Main        string            `json:"main"`
	Scripts     map[string]string `json:"scripts"`
	Keywords    []string          `json:"keywords"`
}

// writeMetadata emits package.json, README.md, and .gitignore alongside the
// generated files and returns them keyed by name.
func writeMetadata(
	ctx context.Context,
	adapter storage.Adapter,
	root string,
	plan *domain.ProjectPlan,
) (domain.FileMap, error) {
	manifest, err := packageJSON(plan)
	if err != nil {
		return nil, err
	}

	metadata := domain.FileMap{
		"package.json": manifest,
		"README.md":    readme(plan),
		".gitignore":   gitignore,
	}

	for name, content := range metadata {
		if err := adapter.SaveFile(ctx, path.Join(root, name), content); err != nil {
			return nil, err
		}
	}
	return metadata, nil
}

func packageJSON(plan *domain.ProjectPlan) (string, error) {
	manifest := packageManifest{
		Name:        plan.ProjectName,
		Version:     "1.0.0",
		Description: plan.Description,
		Main:        "index.html",
		Scripts: map[string]string{
			"start": "npx serve .",
		},
		Keywords: plan.TechStack,
	}

	encoded, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode package.json: %w", err)
	}
	return string(encoded) + "\n", nil
}

func readme(plan *domain.ProjectPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n%s\n", plan.ProjectName, plan.Description)

	if len(plan.Features) > 0 {
		b.WriteString("\n## Features\n\n")
		for _, feature := range plan.Features {
			fmt.Fprintf(&b, "- %s\n", feature)
		}
	}

	if len(plan.TechStack) > 0 {
		b.WriteString("\n## Tech Stack\n\n")
		for _, tech := range plan.TechStack {
			fmt.Fprintf(&b, "- %s\n", tech)
		}
	}

	if plan.Architecture != "" {
		fmt.Fprintf(&b, "\n## Architecture\n\n%s\n", plan.Architecture)
	}

	b.WriteString("\n## Getting Started\n\nOpen `index.html` in a browser, or run `npx serve .`\n")
	return b.String()
}

const gitignore = `node_modules/
dist/
.env
.DS_Store
*.log
`

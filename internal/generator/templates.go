package generator

import (
	"fmt"
	"strings"

	"github.com/davidbz/forge/internal/domain"
)

// FallbackContent returns a working static template for a file whose
// generation failed. Templates are keyed by file type so the project stays
// runnable end to end.
func FallbackContent(file domain.FileEntry, plan *domain.ProjectPlan) string {
	switch strings.ToLower(file.FileType) {
	case "html":
		return fallbackHTML(plan)
	case "css":
		return fallbackCSS
	case "js", "javascript":
		return fallbackJS(plan)
	case "json":
		return "{}\n"
	default:
		return fmt.Sprintf("# %s\n\n%s\n", file.Name, file.Description)
	}
}

func fallbackHTML(plan *domain.ProjectPlan) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <link rel="stylesheet" href="styles.css">
</head>
<body>
    <main class="container">
        <h1>%s</h1>
        <p>%s</p>
    </main>
    <script src="script.js"></script>
</body>
</html>
`, plan.ProjectName, plan.ProjectName, plan.Description)
}

const fallbackCSS = `:root {
    --primary: #6366f1;
    --background: #0f172a;
    --surface: rgba(255, 255, 255, 0.06);
    --text: #e2e8f0;
}

* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: 'Inter', system-ui, sans-serif;
    background: var(--background);
    color: var(--text);
    min-height: 100vh;
    display: flex;
    align-items: center;
    justify-content: center;
}

.container {
    background: var(--surface);
    backdrop-filter: blur(12px);
    border-radius: 16px;
    padding: 2rem;
    max-width: 640px;
    width: 90%;
    transition: transform 0.2s ease;
}

.container:hover {
    transform: translateY(-2px);
}
`

func fallbackJS(plan *domain.ProjectPlan) string {
	return fmt.Sprintf(`'use strict';

document.addEventListener('DOMContentLoaded', () => {
    console.log('%s ready');
});
`, plan.ProjectName)
}

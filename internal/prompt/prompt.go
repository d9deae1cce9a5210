// Package prompt builds the planning, file-generation, and refinement prompts
// and extracts structured content back out of model output. Pure functions,
// no I/O.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davidbz/forge/internal/domain"
)

// Planning builds the intent-classification and project-planning prompt.
func Planning(description string) string {
	return fmt.Sprintf(`You are Forge, an advanced AI software engineer. Analyze the user request: %q

- If it is a GREETING or GENERAL CONVERSATION:
  Return JSON: { "intent": "chat", "message": "Your friendly response as Forge" }

- If it is a request to BUILD/CREATE a project/app/tool:
  Return JSON: {
    "intent": "project",
    "plan": {
      "projectName": "kebab-case-name",
      "description": "Short description",
      "features": ["feature1", "feature2"],
      "techStack": ["html", "css", "javascript"],
      "fileStructure": [
        {"name": "index.html", "type": "file", "fileType": "html", "description": "Main HTML with semantic structure"},
        {"name": "styles.css", "type": "file", "fileType": "css", "description": "Modern CSS with variables, gradients, and animations"},
        {"name": "script.js", "type": "file", "fileType": "javascript", "description": "Clean, modular logic"}
      ],
      "dependencies": [],
      "architecture": "Describe how the UI and logic interact"
    }
  }

- DESIGN GUIDELINES:
  - Use high-end, premium aesthetics (glassmorphism, vibrant gradients, shadows).
  - Use Google Fonts (e.g., Inter, Montserrat).
  - Ensure mobile-first responsiveness.
  - Add smooth transitions and hover micro-animations.

Return ONLY clean JSON.`, description)
}

// File builds the per-file generation prompt. One prompt per file, code-only
// output.
func File(file domain.FileEntry, plan *domain.ProjectPlan) string {
	return fmt.Sprintf("%s for %s. File:%s Purpose:%s Features:%s. %s Code only, no markdown.",
		strings.ToUpper(file.FileType),
		plan.Description,
		file.Name,
		file.Description,
		strings.Join(plan.Features, ","),
		requirements(file.FileType, plan),
	)
}

// requirements yields file-type-specific generation constraints.
func requirements(fileType string, plan *domain.ProjectPlan) string {
	switch strings.ToLower(fileType) {
	case "html":
		return "Semantic HTML5,mobile meta,link styles.css+script.js,accessible."
	case "css":
		return "Grid/Flexbox,CSS vars,transitions,gradients,glassmorphism,responsive,animations."
	case "js", "javascript":
		return fmt.Sprintf("ES6+,features:%s,error handling,async/await,events.", strings.Join(plan.Features, ","))
	case "json":
		return "Valid JSON."
	default:
		return "Best practices."
	}
}

// Refine builds the feedback-driven update prompt over the full current file
// map. Files are embedded in sorted path order so identical state yields an
// identical prompt.
func Refine(plan *domain.ProjectPlan, files domain.FileMap, feedback string) string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var current strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&current, "--- FILE: %s ---\n%s\n\n", path, files[path])
	}

	return fmt.Sprintf(`Context: A project named %q described as %q.
Current Code Files:
%s
User Feedback: %q

Task: Update the code files based on the feedback.
Respond with only the updated files in a JSON format:
{
  "files": {
     "filename.html": "updated content",
     ...
  }
}

Include ONLY the files that need changes. Return valid JSON only.`,
		plan.ProjectName, plan.Description, current.String(), feedback)
}

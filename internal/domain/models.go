package domain

// Operation identifies the logical call site asking for a completion. Provider
// priority is declared per operation kind.
type Operation string

const (
	// OperationPlan is the project planning round trip.
	OperationPlan Operation = "plan"

	// OperationGenerate is the per-file content generation round trip.
	OperationGenerate Operation = "generate"

	// OperationRefine is the feedback-driven file update round trip.
	OperationRefine Operation = "refine"
)

// AuthContext carries a per-call credential override. It replaces the
// provider's static API key for a single call and does not outlive it.
type AuthContext struct {
	// AccessToken is an OAuth-style bearer token.
	AccessToken string

	// APIKey overrides the provider's configured key.
	APIKey string
}

// Entry kinds in a plan's file structure.
const (
	EntryFile      = "file"
	EntryDirectory = "directory"
)

// FileEntry is one item of a plan's file structure.
type FileEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // file or directory
	FileType    string `json:"fileType,omitempty"`
	Description string `json:"description"`
}

// ProjectPlan is the structured result of the planning round trip. Immutable
// once produced; refinement yields a partial file map, not a new plan.
type ProjectPlan struct {
	ProjectName   string      `json:"projectName"`
	Description   string      `json:"description"`
	Features      []string    `json:"features"`
	TechStack     []string    `json:"techStack"`
	FileStructure []FileEntry `json:"fileStructure"`
	Dependencies  []string    `json:"dependencies"`
	Architecture  string      `json:"architecture"`
}

// Result kinds of the planning round trip.
const (
	ResultChat    = "chat"
	ResultProject = "project"
)

// PlanResult is the classified outcome of a planning request: either a
// conversational reply or a project plan.
type PlanResult struct {
	Type    string       `json:"type"`
	Message string       `json:"message,omitempty"`
	Plan    *ProjectPlan `json:"plan,omitempty"`
}

// FileMap maps normalized file paths to file content.
type FileMap map[string]string

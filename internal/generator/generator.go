// Package generator walks a project plan and produces every file through the
// completion core, falling back to static templates when providers fail.
package generator

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/observability"
	"github.com/davidbz/forge/internal/prompt"
	"github.com/davidbz/forge/internal/resilience"
	"github.com/davidbz/forge/internal/storage"
)

// DefaultFileDelay is the pause between consecutive file generations.
const DefaultFileDelay = 3 * time.Second

// Event kinds emitted while a project is generated.
const (
	EventDirectory = "directory"
	EventFile      = "file"
	EventMetadata  = "metadata"
)

// Event reports one unit of generation progress.
type Event struct {
	Kind     string `json:"kind"`
	Path     string `json:"path"`
	Content  string `json:"content,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// EventFunc receives progress events in generation order. May be nil.
type EventFunc func(event Event)

// Generator produces project files sequentially from a plan.
type Generator struct {
	completer domain.Completer
	delay     time.Duration
	sleep     resilience.SleepFunc
}

// NewGenerator creates a generator with the given inter-file delay.
func NewGenerator(completer domain.Completer, delay time.Duration) *Generator {
	return &Generator{
		completer: completer,
		delay:     delay,
		sleep:     resilience.SleepContext,
	}
}

// WithSleep replaces the inter-file sleep. Tests use this to run instantly.
func (g *Generator) WithSleep(sleep resilience.SleepFunc) *Generator {
	g.sleep = sleep
	return g
}

// Generate creates the project described by the plan through the adapter,
// directories first, then files in plan order, then project metadata. The
// returned map holds every generated file keyed by its path relative to the
// project root. A provider failure on one file never aborts the project: the
// file falls back to a static template and generation continues.
func (g *Generator) Generate(
	ctx context.Context,
	plan *domain.ProjectPlan,
	adapter storage.Adapter,
	auth *domain.AuthContext,
	emit EventFunc,
) (domain.FileMap, error) {
	if plan == nil {
		return nil, errors.New("plan is required")
	}
	if plan.ProjectName == "" {
		return nil, errors.New("plan has no project name")
	}
	if emit == nil {
		emit = func(Event) {}
	}

	ctx = observability.WithProject(ctx, plan.ProjectName)
	logger := observability.FromContext(ctx)

	root := plan.ProjectName
	if err := adapter.EnsureDir(ctx, root); err != nil {
		return nil, err
	}

	directories, files := splitEntries(plan.FileStructure)

	for _, dir := range directories {
		if err := adapter.EnsureDir(ctx, path.Join(root, dir.Name)); err != nil {
			return nil, err
		}
		emit(Event{Kind: EventDirectory, Path: dir.Name})
	}

	generated := make(domain.FileMap, len(files))
	for i, file := range files {
		if i > 0 && g.delay > 0 {
			if err := g.sleep(ctx, g.delay); err != nil {
				return nil, err
			}
		}

		content, fallback := g.generateFile(ctx, file, plan, auth)
		if err := adapter.SaveFile(ctx, path.Join(root, file.Name), content); err != nil {
			return nil, err
		}

		generated[file.Name] = content
		emit(Event{Kind: EventFile, Path: file.Name, Content: content, Fallback: fallback})
		logger.Info("file generated",
			observability.String("file", file.Name),
			observability.Bool("fallback", fallback))
	}

	metadata, err := writeMetadata(ctx, adapter, root, plan)
	if err != nil {
		return nil, err
	}
	for name, content := range metadata {
		generated[name] = content
		emit(Event{Kind: EventMetadata, Path: name, Content: content})
	}

	logger.Info("project generated", observability.Int("files", len(generated)))
	return generated, nil
}

// generateFile resolves one file's content, or its fallback template when the
// whole provider cascade fails or the output is unusable.
func (g *Generator) generateFile(
	ctx context.Context,
	file domain.FileEntry,
	plan *domain.ProjectPlan,
	auth *domain.AuthContext,
) (content string, fallback bool) {
	text, err := g.completer.Complete(ctx, domain.OperationGenerate, prompt.File(file, plan), auth)
	if err == nil {
		if code := prompt.Code(text, file.FileType); code != "" {
			return code, false
		}
		err = fmt.Errorf("empty content for %s", file.Name)
	}

	observability.FromContext(ctx).Warn("file generation failed, using fallback template",
		observability.String("file", file.Name),
		observability.Error(err))
	return FallbackContent(file, plan), true
}

// splitEntries orders directories before files, keeping plan order within each
// group.
func splitEntries(entries []domain.FileEntry) (directories, files []domain.FileEntry) {
	sorted := make([]domain.FileEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Type == domain.EntryDirectory && sorted[j].Type != domain.EntryDirectory
	})

	for _, entry := range sorted {
		if entry.Type == domain.EntryDirectory {
			directories = append(directories, entry)
		} else {
			files = append(files, entry)
		}
	}
	return directories, files
}

package generator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/generator"
	"github.com/davidbz/forge/internal/storage"
)

type stubCompleter struct {
	completeFunc func(op domain.Operation, prompt string) (string, error)
	calls        int
}

func (s *stubCompleter) Complete(_ context.Context, op domain.Operation, prompt string, _ *domain.AuthContext) (string, error) {
	s.calls++
	return s.completeFunc(op, prompt)
}

func noSleep(_ context.Context, _ time.Duration) error {
	return nil
}

func calculatorPlan() *domain.ProjectPlan {
	return &domain.ProjectPlan{
		ProjectName: "simple-calculator",
		Description: "a simple calculator app",
		Features:    []string{"addition", "subtraction"},
		TechStack:   []string{"html", "css", "javascript"},
		FileStructure: []domain.FileEntry{
			{Name: "index.html", Type: domain.EntryFile, FileType: "html", Description: "main page"},
			{Name: "styles.css", Type: domain.EntryFile, FileType: "css", Description: "styling"},
			{Name: "assets", Type: domain.EntryDirectory, Description: "static assets"},
			{Name: "script.js", Type: domain.EntryFile, FileType: "javascript", Description: "calculator logic"},
		},
	}
}

func TestGenerate(t *testing.T) {
	t.Run("should generate every planned file plus metadata", func(t *testing.T) {
		completer := &stubCompleter{completeFunc: func(_ domain.Operation, prompt string) (string, error) {
			return "content for " + prompt[:4], nil
		}}
		adapter := storage.NewMemory()
		g := generator.NewGenerator(completer, 0).WithSleep(noSleep)

		files, err := g.Generate(context.Background(), calculatorPlan(), adapter, nil, nil)

		require.NoError(t, err)
		require.Equal(t, 3, completer.calls)
		require.Contains(t, files, "index.html")
		require.Contains(t, files, "styles.css")
		require.Contains(t, files, "script.js")
		require.Contains(t, files, "package.json")
		require.Contains(t, files, "README.md")
		require.Contains(t, files, ".gitignore")

		saved := adapter.Files()
		require.Contains(t, saved, "simple-calculator/index.html")
		require.Contains(t, saved, "simple-calculator/package.json")
	})

	t.Run("should create directories before generating files", func(t *testing.T) {
		completer := &stubCompleter{completeFunc: func(domain.Operation, string) (string, error) {
			return "ok", nil
		}}
		g := generator.NewGenerator(completer, 0).WithSleep(noSleep)

		var order []string
		_, err := g.Generate(context.Background(), calculatorPlan(), storage.NewMemory(), nil, func(e generator.Event) {
			order = append(order, e.Kind+":"+e.Path)
		})

		require.NoError(t, err)
		require.Equal(t, "directory:assets", order[0])
		require.Equal(t, "file:index.html", order[1])
		require.Equal(t, "file:styles.css", order[2])
		require.Equal(t, "file:script.js", order[3])
	})

	t.Run("should strip markdown fences from generated code", func(t *testing.T) {
		completer := &stubCompleter{completeFunc: func(domain.Operation, string) (string, error) {
			return "```css\nbody { margin: 0; }\n```", nil
		}}
		g := generator.NewGenerator(completer, 0).WithSleep(noSleep)

		files, err := g.Generate(context.Background(), calculatorPlan(), storage.NewMemory(), nil, nil)

		require.NoError(t, err)
		require.Equal(t, "body { margin: 0; }", files["styles.css"])
	})

	t.Run("should fall back to templates when all providers fail", func(t *testing.T) {
		completer := &stubCompleter{completeFunc: func(domain.Operation, string) (string, error) {
			return "", errors.New("all providers failed for operation generate")
		}}
		g := generator.NewGenerator(completer, 0).WithSleep(noSleep)

		var fallbacks int
		files, err := g.Generate(context.Background(), calculatorPlan(), storage.NewMemory(), nil, func(e generator.Event) {
			if e.Fallback {
				fallbacks++
			}
		})

		require.NoError(t, err)
		require.Equal(t, 3, fallbacks)
		require.Contains(t, files["index.html"], "<!DOCTYPE html>")
		require.Contains(t, files["index.html"], "simple-calculator")
		require.Contains(t, files["styles.css"], ":root")
		require.Contains(t, files["script.js"], "DOMContentLoaded")
	})

	t.Run("should pause between consecutive file generations", func(t *testing.T) {
		completer := &stubCompleter{completeFunc: func(domain.Operation, string) (string, error) {
			return "ok", nil
		}}
		var delays []time.Duration
		g := generator.NewGenerator(completer, 3*time.Second).WithSleep(func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		})

		_, err := g.Generate(context.Background(), calculatorPlan(), storage.NewMemory(), nil, nil)

		require.NoError(t, err)
		require.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second}, delays)
	})

	t.Run("should stop when the context is cancelled between files", func(t *testing.T) {
		completer := &stubCompleter{completeFunc: func(domain.Operation, string) (string, error) {
			return "ok", nil
		}}
		g := generator.NewGenerator(completer, time.Second).WithSleep(func(ctx context.Context, _ time.Duration) error {
			return context.Canceled
		})

		_, err := g.Generate(context.Background(), calculatorPlan(), storage.NewMemory(), nil, nil)

		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, completer.calls)
	})

	t.Run("should embed plan details in package.json and README", func(t *testing.T) {
		completer := &stubCompleter{completeFunc: func(domain.Operation, string) (string, error) {
			return "ok", nil
		}}
		g := generator.NewGenerator(completer, 0).WithSleep(noSleep)

		files, err := g.Generate(context.Background(), calculatorPlan(), storage.NewMemory(), nil, nil)

		require.NoError(t, err)
		require.Contains(t, files["package.json"], `"name": "simple-calculator"`)
		require.Contains(t, files["package.json"], `"description": "a simple calculator app"`)
		require.Contains(t, files["README.md"], "# simple-calculator")
		require.Contains(t, files["README.md"], "- addition")
		require.True(t, strings.Contains(files[".gitignore"], "node_modules/"))
	})

	t.Run("should reject a nil plan", func(t *testing.T) {
		g := generator.NewGenerator(&stubCompleter{}, 0)

		_, err := g.Generate(context.Background(), nil, storage.NewMemory(), nil, nil)

		require.Error(t, err)
	})
}

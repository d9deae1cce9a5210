// Package planner turns a free-text request into a structured project plan and
// applies feedback-driven refinements to generated files.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/observability"
	"github.com/davidbz/forge/internal/prompt"
)

// Planner drives the planning and refinement round trips through the
// completion core.
type Planner struct {
	completer domain.Completer
}

// NewPlanner creates a planner on top of a completer.
func NewPlanner(completer domain.Completer) *Planner {
	return &Planner{completer: completer}
}

// planEnvelope is the classified JSON shape models are instructed to return.
type planEnvelope struct {
	Intent  string              `json:"intent"`
	Message string              `json:"message"`
	Plan    *domain.ProjectPlan `json:"plan"`
}

// refineEnvelope is the refinement JSON shape: only the changed files.
type refineEnvelope struct {
	Files domain.FileMap `json:"files"`
}

// CreatePlan classifies the request and produces either a chat reply or a
// project plan. When every provider fails or the response cannot be parsed, a
// deterministic fallback plan is returned so generation always has something
// to build.
func (p *Planner) CreatePlan(ctx context.Context, description string, auth *domain.AuthContext) (*domain.PlanResult, error) {
	if description == "" {
		return nil, errors.New("description is required")
	}

	logger := observability.FromContext(ctx)

	text, err := p.completer.Complete(ctx, domain.OperationPlan, prompt.Planning(description), auth)
	if err != nil {
		logger.Warn("planning failed, using fallback plan", observability.Error(err))
		return &domain.PlanResult{
			Type: domain.ResultProject,
			Plan: FallbackPlan(description),
		}, nil
	}

	result, err := parsePlanResult(text)
	if err != nil {
		logger.Warn("unparseable plan response, using fallback plan", observability.Error(err))
		return &domain.PlanResult{
			Type: domain.ResultProject,
			Plan: FallbackPlan(description),
		}, nil
	}

	logger.Info("plan created",
		observability.String("intent", result.Type),
		observability.String("project", projectName(result)))
	return result, nil
}

// Refine asks for updated content for files affected by the feedback. Unlike
// planning there is no fallback: a refinement that cannot be resolved is an
// error the caller reports.
func (p *Planner) Refine(ctx context.Context, plan *domain.ProjectPlan, files domain.FileMap, feedback string, auth *domain.AuthContext) (domain.FileMap, error) {
	if plan == nil {
		return nil, errors.New("plan is required")
	}
	if feedback == "" {
		return nil, errors.New("feedback is required")
	}

	text, err := p.completer.Complete(ctx, domain.OperationRefine, prompt.Refine(plan, files, feedback), auth)
	if err != nil {
		return nil, fmt.Errorf("refinement failed: %w", err)
	}

	block, err := prompt.JSONBlock(text)
	if err != nil {
		return nil, err
	}

	var envelope refineEnvelope
	if err := json.Unmarshal([]byte(block), &envelope); err != nil {
		return nil, &domain.ParseError{Reason: "refinement response is not valid JSON"}
	}
	if len(envelope.Files) == 0 {
		return nil, &domain.ParseError{Reason: "refinement response contains no files"}
	}

	observability.FromContext(ctx).Info("refinement resolved",
		observability.Int("changed_files", len(envelope.Files)))
	return envelope.Files, nil
}

func parsePlanResult(text string) (*domain.PlanResult, error) {
	block, err := prompt.JSONBlock(text)
	if err != nil {
		return nil, err
	}

	var envelope planEnvelope
	if err := json.Unmarshal([]byte(block), &envelope); err != nil {
		return nil, &domain.ParseError{Reason: "plan response is not valid JSON"}
	}

	switch envelope.Intent {
	case domain.ResultChat:
		if envelope.Message == "" {
			return nil, &domain.ParseError{Reason: "chat response has no message"}
		}
		return &domain.PlanResult{Type: domain.ResultChat, Message: envelope.Message}, nil
	case domain.ResultProject:
		if envelope.Plan == nil || len(envelope.Plan.FileStructure) == 0 {
			return nil, &domain.ParseError{Reason: "project response has no file structure"}
		}
		return &domain.PlanResult{Type: domain.ResultProject, Plan: envelope.Plan}, nil
	default:
		return nil, &domain.ParseError{Reason: fmt.Sprintf("unknown intent %q", envelope.Intent)}
	}
}

func projectName(result *domain.PlanResult) string {
	if result.Plan == nil {
		return ""
	}
	return result.Plan.ProjectName
}

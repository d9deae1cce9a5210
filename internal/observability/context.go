package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey holds the unique request identifier.
	RequestIDKey contextKey = "request_id"

	// ProviderKey holds the provider name for this request.
	ProviderKey contextKey = "provider"

	// OperationKey holds the logical operation kind (plan, generate, refine).
	OperationKey contextKey = "operation"

	// ProjectKey holds the project name being scaffolded.
	ProjectKey contextKey = "project"
)

// WithRequestID injects request ID into context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithProvider injects provider name into context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// WithOperation injects the operation kind into context.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

// WithProject injects the project name into context.
func WithProject(ctx context.Context, project string) context.Context {
	return context.WithValue(ctx, ProjectKey, project)
}

// GetRequestID extracts request ID from context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetProvider extracts provider name from context.
func GetProvider(ctx context.Context) string {
	if provider, ok := ctx.Value(ProviderKey).(string); ok {
		return provider
	}
	return ""
}

// GetOperation extracts the operation kind from context.
func GetOperation(ctx context.Context) string {
	if operation, ok := ctx.Value(OperationKey).(string); ok {
		return operation
	}
	return ""
}

// GetProject extracts the project name from context.
func GetProject(ctx context.Context) string {
	if project, ok := ctx.Value(ProjectKey).(string); ok {
		return project
	}
	return ""
}

// GenerateRequestID generates a unique request identifier (UUID).
func GenerateRequestID() string {
	return uuid.New().String()
}

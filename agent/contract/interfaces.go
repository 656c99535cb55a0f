package contract

import "context"

// KnowledgeStore is the ranked-snippet search boundary. Search returns up to
// limit notes ordered by relevance; implementations own ranking entirely.
type KnowledgeStore interface {
	Search(ctx context.Context, query string, limit int) ([]Note, error)
	Add(ctx context.Context, id, content, source string) error
}

// Augmenter is an optional generative-text capability. An empty string is a
// valid "no augmentation available" result; callers must treat both errors
// and empty output as augmentation being absent, never as a run failure.
type Augmenter interface {
	Augment(ctx context.Context, role, instructions, prompt string) (string, error)
}

// ToolGateway discovers, describes, and invokes tools on a remote server
// whose wire convention is unknown until probed.
type ToolGateway interface {
	Enabled() bool
	ListTools(ctx context.Context) ([]ToolDescriptor, error)
	DescribeTool(ctx context.Context, name string) (map[string]any, error)
	InvokeTool(ctx context.Context, name string, arguments map[string]any) (map[string]any, error)
}

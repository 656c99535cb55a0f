// Package augment wraps the optional generative model behind the
// contract.Augmenter boundary. The swarm must behave identically with or
// without a model, so every failure surfaces as an error the pipeline is
// free to ignore.
package augment

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
	openrouterx "github.com/swarmdesk/support-swarm/pkg/openrouter"
)

// Noop is the augmenter used when no model is configured. It always reports
// "no augmentation available".
type Noop struct{}

func (Noop) Augment(ctx context.Context, role, instructions, prompt string) (string, error) {
	return "", nil
}

// ModelAugmenter runs a single prompt->model graph per call and returns the
// trimmed completion text.
type ModelAugmenter struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var (
	_ contractx.Augmenter = Noop{}
	_ contractx.Augmenter = (*ModelAugmenter)(nil)
)

func NewModelAugmenter(ctx context.Context, builder openrouterx.LLMBuilder) (*ModelAugmenter, error) {
	if builder == nil {
		return nil, fmt.Errorf("%w: llm builder is required", contractx.ErrValidation)
	}

	chatModel, err := builder.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: build chat model: %v", contractx.ErrModelInvoke, err)
	}

	runner, err := compileAugmentGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}

	return &ModelAugmenter{runner: runner}, nil
}

func (a *ModelAugmenter) Augment(ctx context.Context, role, instructions, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: augmentation prompt is required", contractx.ErrValidation)
	}

	out, err := a.runner.Invoke(ctx, map[string]any{
		"instructions": instructions,
		"input":        prompt,
	})
	if err != nil {
		log.Debug().Err(err).Str("role", role).Msg("augmentation invoke failed")
		return "", fmt.Errorf("%w: augment %s: %v", contractx.ErrModelInvoke, role, err)
	}
	if out == nil {
		return "", fmt.Errorf("%w: augment %s: empty model message", contractx.ErrModelInvoke, role)
	}

	return strings.TrimSpace(out.Content), nil
}

package tool

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/swarmdesk/support-swarm/agent/contract"
)

// SafeInvoke describes the tool before invoking it and absorbs every gateway
// failure. A nil result means "no action taken"; tool augmentation is always
// optional, so callers degrade quality rather than fail.
func SafeInvoke(ctx context.Context, gateway contract.ToolGateway, name string, arguments map[string]any) map[string]any {
	if _, err := gateway.DescribeTool(ctx, name); err != nil {
		log.Warn().Str("tool", name).Err(err).Msg("tool describe failed, skipping invocation")
		return nil
	}

	out, err := gateway.InvokeTool(ctx, name, arguments)
	if err != nil {
		log.Warn().Str("tool", name).Err(err).Msg("tool invocation failed")
		return nil
	}
	return out
}

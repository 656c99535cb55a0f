// Package tool maps semantic intents to concrete remote tool names and wraps
// invocation in the describe-then-invoke gate, so pipeline stages never
// hard-code tool names or see gateway failures.
package tool

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/swarmdesk/support-swarm/agent/contract"
)

// FindByKeywords returns the name of the first tool whose name or description
// contains any keyword, matched case-insensitively as a substring. Empty
// string when nothing matches.
func FindByKeywords(tools []contract.ToolDescriptor, keywords ...string) string {
	for _, t := range tools {
		haystack := strings.ToLower(t.Name + " " + t.Description)
		for _, word := range keywords {
			if word == "" {
				continue
			}
			if strings.Contains(haystack, strings.ToLower(word)) {
				return t.Name
			}
		}
	}
	return ""
}

// Resolve lists the gateway's live tools and matches them against the
// keywords. Listing failures resolve to "no tool found".
func Resolve(ctx context.Context, gateway contract.ToolGateway, keywords ...string) string {
	tools, err := gateway.ListTools(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("tool listing unavailable during resolve")
		return ""
	}
	return FindByKeywords(tools, keywords...)
}

// Package autoload initializes the global logger from the LOG_* environment
// on import. Blank-import it from the composition root.
package autoload

import (
	configx "github.com/swarmdesk/support-swarm/pkg/config"
	logx "github.com/swarmdesk/support-swarm/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}

package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/zxsyn/internal/config"
	"github.com/kegliz/zxsyn/internal/logger"
	"github.com/kegliz/zxsyn/internal/server"
	"github.com/kegliz/zxsyn/internal/server/router"
	"github.com/kegliz/zxsyn/internal/zxservice"
)

type (
	ServerOptions struct {
		C       *config.Config
		Version string
	}

	appServer struct {
		logger  *logger.Logger
		router  *router.Router
		zs      zxservice.Service
		version string
	}

	appServerOptions struct {
		logger  *logger.Logger
		router  *router.Router
		zs      zxservice.Service
		version string
	}
)

// newAppServer creates a new appServer.
func newAppServer(options appServerOptions) *appServer {
	a := &appServer{
		logger:  options.logger,
		router:  options.router,
		zs:      options.zs,
		version: options.version,
	}
	a.router.SetRoutes(a.routes())
	return a
}

// Listen implements server.Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Info().
		Int("port", port).
		Bool("localOnly", localOnly).
		Str("version", a.version).
		Msg("Starting zx synthesis service")
	return a.router.Start(port, localOnly)
}

// Shutdown implements server.Server.
func (a *appServer) Shutdown(ctx context.Context) error {
	return a.router.Shutdown(ctx)
}

// NewServer assembles the HTTP surface over the synthesis service.
func NewServer(options ServerOptions) (server.Server, error) {
	l, r := server.NewLoggerAndRouter(server.EngineOptions{
		Debug: options.C.GetBool("debug"),
	})
	duoCfg, err := options.C.Duostra()
	if err != nil {
		return nil, err
	}
	zs := zxservice.NewService(zxservice.ServiceOptions{
		Logger: l,
		Store:  zxservice.NewGraphStore(),
		Config: duoCfg,
	})
	app := newAppServer(appServerOptions{
		logger:  l,
		router:  r,
		zs:      zs,
		version: options.Version,
	})
	return app, nil
}

func (a *appServer) getLoggerFromContext(c *gin.Context) (*logger.Logger, error) {
	l, ok := c.Get("logger")
	if !ok {
		return nil, fmt.Errorf("logger not found in context")
	}
	lg, ok := l.(*logger.Logger)
	if !ok {
		return nil, fmt.Errorf("logger has wrong type in context")
	}
	return lg, nil
}

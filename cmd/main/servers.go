package main

import (
	"context"

	"corona-observer/src/grpc_control"
	"corona-observer/src/interfaces"
	"corona-observer/src/logger"
	"corona-observer/src/models"
	"corona-observer/src/server"
)

// serverGroup fans dataset updates out to whichever servers are enabled.
type serverGroup struct {
	api    interfaces.IDataExchanger
	health *grpc_control.ControlService
	logger *logger.Logger
}

// -----------------------------------------------------------------------------

// startServers orchestrates the startup of all server components
func startServers(cfg *models.MConfig, app *application, appLogger *logger.Logger) *serverGroup {
	g := &serverGroup{logger: appLogger}

	// 1. HTTP API
	if cfg.Server.Enabled {
		g.api = server.NewAPIServer(cfg, app.Analyzer, appLogger.Named("APIServer"))
		go func() {
			if err := g.api.Start(); err != nil {
				appLogger.Error("Server failed: %v", err)
			}
		}()
	}

	// 2. gRPC health
	if cfg.Grpc.Enabled {
		g.health = grpc_control.NewControlService(cfg, appLogger.Named("ControlService"))
		go func() {
			if err := g.health.Start(); err != nil {
				appLogger.Error("gRPC server failed: %v", err)
			}
		}()
	}

	return g
}

// -----------------------------------------------------------------------------

func (g *serverGroup) UpdateDataset(ds *models.MDataset) {
	if g.api != nil {
		g.api.UpdateDataset(ds)
	}
	if g.health != nil {
		g.health.UpdateDataset(ds)
	}
}

func (g *serverGroup) Shutdown(ctx context.Context) {
	if g.api != nil {
		if err := g.api.Stop(ctx); err != nil {
			g.logger.Warning("API server shutdown: %v", err)
		}
	}
	if g.health != nil {
		g.health.Stop()
	}
}

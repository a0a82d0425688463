// Package main runs the metcons heatmap MCP server over stdio, for local MCP clients.
// The heatmap service mounts the same tools at /mcp when mcp_enabled is set.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/metconstats/internal/config"
	"github.com/2beens/metconstats/internal/db"
	"github.com/2beens/metconstats/internal/logging"
	"github.com/2beens/metconstats/internal/metcons"
	metconsmcp "github.com/2beens/metconstats/internal/metcons/mcp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the MCP protocol, so logs never go there
	logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogsPath,
		LogToStdout: false,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})
	if cfg.LogsPath == "" {
		log.SetOutput(os.Stderr)
	}

	ctx := context.Background()
	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		log.Fatalf("load secrets: %v", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBPassword:     secrets.PostgresPassword,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	// no redis here, snapshots are only cached in process
	heatmapService := metcons.NewService(
		metcons.NewRepo(dbPool),
		metcons.NewSnapshotCache(cfg.SnapshotCacheSizeMB, cfg.SnapshotCacheTTL(), nil, nil),
		nil,
	)
	server := metconsmcp.NewServer(metconsmcp.NewPoolSchemaRepo(dbPool), heatmapService)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}

// Command chatbot runs the sandboxed file-operation executor.
//
// It reads one invocation request per line from stdin as JSON
// ({"operation": "files.read", "arguments": {"filename": "notes.md"}}),
// executes it against the configured sandbox root, and writes the
// uniform result JSON to stdout. The LLM conversation loop that produces
// these requests lives outside this process.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/docagent/backend/internal/config"
	"github.com/docagent/backend/internal/logging"
	"github.com/docagent/backend/internal/monitoring"
	"github.com/docagent/backend/internal/providers/filesystem"
	"github.com/docagent/backend/internal/sandbox"
	"github.com/docagent/backend/internal/service"
	"github.com/docagent/backend/internal/types"
)

type invocationRequest struct {
	Operation string                 `json:"operation"`
	Arguments map[string]interface{} `json:"arguments"`
}

func main() {
	rootFlag := flag.String("root", "", "Sandbox root directory (overrides SANDBOX_ROOT)")
	listTools := flag.Bool("tools", false, "Print tool definitions as JSON and exit")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *rootFlag != "" {
		cfg.Sandbox.Root = *rootFlag
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root, err := sandbox.New(cfg.Sandbox.Root)
	if err != nil {
		logger.Fatal("failed to initialize sandbox", zap.Error(err))
	}
	logger.Info("sandbox initialized", zap.String("root", root.Path()))

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	registry := service.NewRegistry(logger, metrics)
	if err := registry.Register(filesystem.NewProvider(root, logger, cfg.Search)); err != nil {
		logger.Fatal("failed to register filesystem provider", zap.Error(err))
	}

	if *listTools {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(registry.List(nil))
		return
	}

	run(registry, logger)
}

func run(registry *service.Registry, logger *logging.Logger) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req invocationRequest
		if err := json.Unmarshal(line, &req); err != nil {
			result := types.Failure("", nil, types.KindInvalidArguments,
				fmt.Sprintf("malformed request: %v", err))
			encoder.Encode(result)
			continue
		}

		encoder.Encode(registry.Execute(ctx, req.Operation, req.Arguments))
	}

	if err := scanner.Err(); err != nil {
		logger.Error("stdin read failed", zap.Error(err))
		os.Exit(1)
	}
}

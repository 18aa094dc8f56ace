// =============================================================================
// AgentWire 主入口
// =============================================================================
// 演示宿主入口点，包含 Agent 注册、类型描述导出、Prometheus 指标
//
// 使用方法:
//
//	agentwire serve                       # 启动宿主
//	agentwire serve --config config.yaml  # 指定配置文件
//	agentwire describe                    # 导出已注册类型描述（JSON）
//	agentwire version                     # 显示版本信息
// =============================================================================
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/BaSui01/agentwire/agent"
	"github.com/BaSui01/agentwire/agent/persistence"
	"github.com/BaSui01/agentwire/config"
	"github.com/BaSui01/agentwire/internal/metrics"
	"github.com/BaSui01/agentwire/internal/telemetry"
	"github.com/BaSui01/agentwire/schedule"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe(os.Args[2:])
	case "describe":
		runDescribe(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// =============================================================================
// 🖥️ serve 命令
// =============================================================================

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	cfg := loadConfig(*configPath)

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("Starting AgentWire",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Initialize OpenTelemetry
	otelProviders, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}

	// 初始化指标
	var collector *metrics.Collector
	promRegistry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace, promRegistry, logger)
	}

	// 注册演示 Agent 类
	registry := agent.NewRegistry(logger, agent.WithRegistryMetrics(collector))
	if err := registerDemoAgents(registry); err != nil {
		logger.Fatal("Failed to register demo agents", zap.Error(err))
	}

	// 初始化快照存储
	containerOpts := []agent.ContainerOption{agent.WithMetrics(collector)}
	if cfg.Database.DSN != "" {
		store, err := persistence.Open(cfg.Database, logger)
		if err != nil {
			logger.Warn("Snapshot store not available, snapshots disabled", zap.Error(err))
		} else {
			defer store.Close()
			containerOpts = append(containerOpts, agent.WithSnapshotStore(store))
		}
	}
	if cfg.Runtime.RateLimitRPS > 0 {
		containerOpts = append(containerOpts,
			agent.WithRateLimit(rate.Limit(cfg.Runtime.RateLimitRPS), cfg.Runtime.RateLimitBurst))
	}

	container := agent.NewContainer(registry, logger, containerOpts...)

	// 初始化延迟调度
	scheduler, closeScheduler, err := openScheduler(cfg, container, logger)
	if err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer closeScheduler()

	logger.Info("Container ready",
		zap.String("container_id", container.ID()),
		zap.Int("agent_types", len(registry.AgentTypes())),
		zap.String("scheduler_backend", scheduler.Backend()),
	)

	// 启动后台服务，等待关闭信号
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		metricsServer := &http.Server{
			Addr:              cfg.Metrics.ListenAddr,
			Handler:           metricsHandler(promRegistry),
			ReadHeaderTimeout: 5 * time.Second,
		}
		group.Go(func() error {
			logger.Info("Metrics server listening", zap.String("addr", cfg.Metrics.ListenAddr))
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("Shutdown with error", zap.Error(err))
	}

	if otelProviders != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelProviders.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}

	logger.Info("AgentWire stopped")
}

func metricsHandler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})
	return mux
}

// openScheduler 根据配置构建调度后端
func openScheduler(cfg *config.Config, container *agent.Container, logger *zap.Logger) (schedule.Scheduler, func(), error) {
	switch cfg.Scheduler.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		scheduler := schedule.NewRedisScheduler(client, container, logger,
			schedule.WithKeyPrefix(cfg.Scheduler.KeyPrefix),
			schedule.WithPollInterval(cfg.Scheduler.PollInterval),
		)
		return scheduler, func() {
			scheduler.Close()
			client.Close()
		}, nil
	case "memory":
		scheduler := schedule.NewMemoryScheduler(container, logger)
		return scheduler, scheduler.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown scheduler backend: %s", cfg.Scheduler.Backend)
	}
}

// =============================================================================
// 📋 describe 命令
// =============================================================================

func runDescribe(args []string) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	cfg := loadConfig(*configPath)

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	registry := agent.NewRegistry(logger)
	if err := registerDemoAgents(registry); err != nil {
		logger.Fatal("Failed to register demo agents", zap.Error(err))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(registry.AgentTypes()); err != nil {
		logger.Fatal("Failed to encode agent types", zap.Error(err))
	}
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion() {
	fmt.Printf("AgentWire %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`AgentWire - Agent Type Mapping and Invocation Runtime

Usage:
  agentwire <command> [options]

Commands:
  serve     Start the demo agent host
  describe  Print registered agent type descriptors as JSON
  version   Show version information
  help      Show this help message

Options for 'serve' and 'describe':
  --config <path>   Path to configuration file (YAML)

Examples:
  agentwire serve
  agentwire serve --config /etc/agentwire/config.yaml
  agentwire describe
  agentwire version`)
}

// =============================================================================
// 🔧 配置与日志初始化
// =============================================================================

func loadConfig(configPath string) *config.Config {
	loader := config.NewLoader()
	if configPath != "" {
		loader = loader.WithConfigPath(configPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	// 解析日志级别
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	// 配置编码器
	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	// 构建配置
	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}
	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	}

	// 构建 logger
	logger, err := zapConfig.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		// 回退到基本 logger
		logger, _ = zap.NewProduction()
	}

	return logger
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vidtube/internal/config"
	"vidtube/internal/infra/database"
	infraES "vidtube/internal/infra/elasticsearch"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
)

// indexer 消费领域事件维护视频搜索索引；-reindex 时先全量重建再进入消费
func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	reindex := flag.Bool("reindex", false, "启动时全量重建视频索引")
	batchSize := flag.Int("batch", 500, "全量重建的批大小")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if !cfg.Elasticsearch.Enabled {
		logger.Fatal("Elasticsearch is disabled, indexer has nothing to do")
	}

	if err := database.Init(&cfg.Database, false); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	index := infraES.NewVideoIndex(nil, cfg.Elasticsearch.VideosIndex())
	if err := index.InitIndexes(); err != nil {
		logger.Fatal("Failed to ensure videos index", zap.Error(err))
	}

	db := database.Get()
	indexService := service.NewIndexService(
		repository.NewVideoRepository(db),
		repository.NewUserRepository(db),
		index,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	if *reindex {
		log := logger.With(zap.String("index", cfg.Elasticsearch.VideosIndex()), zap.Int("batch", *batchSize))
		synced, failed, err := indexService.Reindex(ctx, *batchSize)
		if err != nil {
			log.Fatal("Reindex failed", zap.Int("synced", synced), zap.Int("failed", failed), zap.Error(err))
		}
		log.Info("Reindex completed", zap.Int("synced", synced), zap.Int("failed", failed))
	}

	infraKafka.StartEventConsumer(
		ctx,
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic("domain_events"),
		cfg.App.Name+"-indexer",
		indexService.HandleEvent,
	)
}

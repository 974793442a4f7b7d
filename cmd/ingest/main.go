package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"AdmissionOfficer/internal/config"
	"AdmissionOfficer/internal/database/milvus"
	"AdmissionOfficer/internal/embedding"
	"AdmissionOfficer/internal/qa_service/rag/dataset"
	"AdmissionOfficer/internal/qa_service/rag/pipeline"
	"AdmissionOfficer/internal/qa_service/rag/storages/vectorstore"
	"AdmissionOfficer/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	datasetPath := flag.String("json", "", "dataset path, overrides the configured one")
	dryRun := flag.Bool("dry-run", false, "embed the dataset without touching the collection")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *datasetPath != "" {
		cfg.Retrieval.DatasetPath = *datasetPath
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("Ingest", "", "")

	embedder, err := embedding.NewClient(cfg.Embedding)
	if err != nil {
		log.Fatalf("Failed to create embedding client: %v", err)
	}

	ctx := context.Background()
	loader := dataset.NewLoader(cfg.Retrieval.DatasetPath)

	var (
		store *vectorstore.MilvusStore
		admin pipeline.CollectionAdmin
	)
	if !*dryRun {
		milvusClient, err := milvus.GetClient(ctx, &cfg.Databases.Milvus)
		if err != nil {
			log.Fatalf("Failed to connect to Milvus: %v", err)
		}
		defer milvusClient.Close()

		store, err = vectorstore.NewMilvusStore(milvusClient, cfg.Databases.Milvus.Schema.CollectionName, appLogger)
		if err != nil {
			log.Fatalf("Failed to create vector store: %v", err)
		}
		admin = vectorstore.NewMilvusAdmin(milvusClient)
	}

	ingest := pipeline.NewIndexingPipeline(loader, embedder, store, admin, appLogger)
	count, err := ingest.Run(ctx, *dryRun)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	appLogger.Info(fmt.Sprintf("Done: %d records processed", count))
}

// Command kddimport validates the KDD Cup 1999 CSV splits and optionally
// bulk-loads them into PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/dataset"
	"github.com/xela07ax/netsec-analytics/internal/domain"
	"github.com/xela07ax/netsec-analytics/internal/infra"
	"github.com/xela07ax/netsec-analytics/internal/repository/postgres"
)

func main() {
	kindFlag := pflag.String("kind", "all", "split to process: test, train or all")
	dirFlag := pflag.String("dir", "", "directory holding Test_data.csv and Train_data.csv (default: dataset.dir)")
	doImport := pflag.Bool("import", false, "copy the splits into PostgreSQL (database.url)")
	pflag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	kinds, err := parseKinds(*kindFlag)
	if err != nil {
		logger.Fatal("invalid --kind", zap.Error(err))
	}
	dir := cfg.Dataset.Dir
	if *dirFlag != "" {
		dir = *dirFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, dataset.NewLoader(dir, logger), kinds, *doImport); err != nil {
		logger.Error("kddimport failed", zap.Error(err))
		os.Exit(1)
	}
}

func parseKinds(s string) ([]domain.DatasetKind, error) {
	if s == "all" {
		return []domain.DatasetKind{domain.DatasetTrain, domain.DatasetTest}, nil
	}
	k, err := domain.ParseDatasetKind(s)
	if err != nil {
		return nil, err
	}
	return []domain.DatasetKind{k}, nil
}

func run(ctx context.Context, cfg *infra.Config, logger *zap.Logger, loader *dataset.Loader, kinds []domain.DatasetKind, doImport bool) error {
	var repo *postgres.DatasetRepo
	if doImport {
		if cfg.Database.URL == "" {
			return fmt.Errorf("--import needs database.url (DATABASE_URL)")
		}
		var err error
		repo, err = postgres.NewDatasetRepo(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer repo.Close()
	}

	enc := json.NewEncoder(os.Stdout)
	var failed []domain.DatasetKind

	for _, kind := range kinds {
		frame := loader.Load(kind)
		if frame == nil {
			failed = append(failed, kind)
			continue
		}
		enc.Encode(dataset.Validate(kind, frame))

		if repo == nil {
			continue
		}
		if _, err := repo.Import(ctx, kind, frame); err != nil {
			return fmt.Errorf("import %s: %w", kind, err)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("could not load %v from %s", failed, loader.Dir)
	}
	return nil
}

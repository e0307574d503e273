// Backfills payload digests on ingest receipts written before the dedup
// gate existed. Legacy rows carry an empty payload_digest, which defeats
// duplicate detection; this derives a stable surrogate digest from the
// receipt's stored content so the unique index holds.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/credfile-backend/internal/data/db"
	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
	"github.com/yungbote/credfile-backend/internal/utils"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	workers := utils.GetEnvAsInt("BACKFILL_WORKERS", 4, log)

	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	gdb := dbService.DB()

	var receipts []*types.IngestReceipt
	if err := gdb.Where("payload_digest = ?", "").Find(&receipts).Error; err != nil {
		log.Error("Loading receipts failed", "error", err)
		os.Exit(1)
	}
	if len(receipts) == 0 {
		log.Info("No receipts to backfill")
		return
	}
	log.Info("Backfilling receipt digests", "count", len(receipts), "workers", workers)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for _, receipt := range receipts {
		receipt := receipt
		g.Go(func() error {
			digest := surrogateDigest(receipt)
			err := gdb.WithContext(ctx).
				Model(&types.IngestReceipt{}).
				Where("id = ?", receipt.ID).
				Update("payload_digest", digest).Error
			if err != nil {
				return fmt.Errorf("receipt %s: %w", receipt.ID, err)
			}
			log.Debug("backfilled", "receipt_id", receipt.ID, "digest", digest)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("Backfill failed", "error", err)
		os.Exit(1)
	}
	log.Info("Backfill complete", "count", len(receipts))
}

// surrogateDigest hashes what the receipt stored about its payload. It is
// stable per receipt but never collides with a real payload digest thanks
// to the prefix.
func surrogateDigest(r *types.IngestReceipt) string {
	h := sha256.New()
	h.Write([]byte("legacy:"))
	h.Write([]byte(r.SubjectID))
	h.Write([]byte(r.ID.String()))
	h.Write(r.ImportIDs)
	h.Write(r.Summary)
	return "legacy-" + hex.EncodeToString(h.Sum(nil))
}

// Command seed loads demo patients and Knowledge Hub articles from a YAML
// file and backfills a week of synthetic vitals for each patient.
//
// Usage:
//
//	go run ./scripts/seed -file scripts/seed/seed_data.yaml
package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/config"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/database"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/logging"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/repositories"
)

type seedFile struct {
	Patients []models.Patient `yaml:"patients"`
	Articles []seedArticle    `yaml:"articles"`
}

type seedArticle struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Summary  string `yaml:"summary"`
	Content  string `yaml:"content"`
	Date     string `yaml:"date"`
}

func main() {
	file := flag.String("file", "scripts/seed/seed_data.yaml", "seed data file")
	skipLogs := flag.Bool("skip-logs", false, "do not backfill synthetic vitals")
	flag.Parse()

	cfg, err := config.Load("seed")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("Failed to read seed file", zap.String("file", *file), zap.Error(err))
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		logger.Fatal("Failed to parse seed file", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: 5,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())),
			zap.Error(err))
	}
	defer db.Close()

	patients := repositories.NewPatientRepository(db)
	logs := repositories.NewLogRepository(db)
	articles := repositories.NewArticleRepository(db)

	for i := range seed.Patients {
		p := &seed.Patients[i]
		if err := patients.UpsertPatient(ctx, p); err != nil {
			logger.Fatal("Failed to seed patient", zap.String("id", p.ID), zap.Error(err))
		}
		logger.Info("Seeded patient", zap.String("id", p.ID), zap.String("name", p.Name))

		if *skipLogs {
			continue
		}
		count, err := backfillWeek(ctx, logs, p.ID)
		if err != nil {
			logger.Fatal("Failed to backfill vitals", zap.String("patient_id", p.ID), zap.Error(err))
		}
		logger.Info("Backfilled synthetic vitals", zap.String("patient_id", p.ID), zap.Int("count", count))
	}

	for _, a := range seed.Articles {
		article := models.Article{
			ID:       a.ID,
			Title:    a.Title,
			Category: a.Category,
			Summary:  a.Summary,
			Content:  a.Content,
			Date:     a.Date,
		}
		if err := articles.UpsertArticle(ctx, &article); err != nil {
			logger.Fatal("Failed to seed article", zap.Int("id", a.ID), zap.Error(err))
		}
	}
	logger.Info("Seeded articles", zap.Int("count", len(seed.Articles)))
}

// backfillWeek inserts a trailing week of plausible readings: one glucose,
// one blood pressure, and one heart rate reading per day.
func backfillWeek(ctx context.Context, logs repositories.LogRepository, patientID string) (int, error) {
	now := time.Now()
	count := 0
	for day := 0; day < 7; day++ {
		base := now.AddDate(0, 0, -day)
		entries := []models.LogEntry{
			{
				PatientID: patientID,
				Type:      models.ReadingGlucose,
				Value:     float64(70 + rand.IntN(131)),
				Unit:      "mg/dL",
				Timestamp: base.Add(-8 * time.Hour),
			},
			{
				PatientID: patientID,
				Type:      models.ReadingBloodPressure,
				Value:     float64(110 + rand.IntN(41)),
				Unit:      "mmHg",
				Timestamp: base.Add(-6 * time.Hour),
				ExtraData: map[string]any{"diastolic": float64(70 + rand.IntN(26))},
			},
			{
				PatientID: patientID,
				Type:      models.ReadingHeartRate,
				Value:     float64(60 + rand.IntN(41)),
				Unit:      "bpm",
				Timestamp: base.Add(-4 * time.Hour),
			},
		}
		for i := range entries {
			if err := logs.InsertLog(ctx, &entries[i]); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

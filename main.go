package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/onsia-realty/auction-crawler/config"
	"github.com/onsia-realty/auction-crawler/crawler"
	"github.com/onsia-realty/auction-crawler/httputil"
	"github.com/onsia-realty/auction-crawler/logging"
	"github.com/onsia-realty/auction-crawler/models"
	"github.com/onsia-realty/auction-crawler/scheduler"
	"github.com/onsia-realty/auction-crawler/services"
	"github.com/onsia-realty/auction-crawler/storage"
	"github.com/onsia-realty/auction-crawler/workers"
)

var (
	crawlCase  = flag.String("case", "", "Crawl one case as COURT_CODE/CASE_NO and exit")
	crawlNow   = flag.Bool("batch", false, "Run the case feed once and exit")
	showCase   = flag.String("show", "", "Print the stored record for COURT_CODE/CASE_NO as JSON and exit")
	showStatus = flag.Bool("status", false, "Print the last run and its logs from the ops database and exit")
	enqueueCmd = flag.String("enqueue", "", "Queue a command for the running daemon (crawl_now, pause, resume, status, or crawl_case:COURT_CODE/CASE_NO) and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logging.Setup(cfg.LogDir)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting auction-crawler...")
	log.Printf("Source: %s", cfg.Source.BaseURL)
	log.Printf("Court roster: %d courts, feed: %d cases", len(cfg.Courts), len(cfg.Feed))

	ctx := context.Background()

	// Queue and status modes talk to the ops database and exit; no
	// Postgres or source access needed.
	if *enqueueCmd != "" || *showStatus {
		opsStore, err := storage.NewSQLiteStore(cfg.OpsDBPath)
		if err != nil {
			log.Fatalf("Failed to open ops database: %v", err)
		}
		defer opsStore.Close()
		if *showStatus {
			if err := printStatus(opsStore); err != nil {
				log.Fatalf("Status failed: %v", err)
			}
			return
		}
		if err := enqueue(opsStore, *enqueueCmd); err != nil {
			log.Fatalf("Enqueue failed: %v", err)
		}
		log.Printf("Queued command: %s", *enqueueCmd)
		return
	}

	pgStore, err := storage.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pgStore.Close()
	log.Printf("Connected to Postgres: %s", maskConnectionString(cfg.Database.URL))

	if *showCase != "" {
		courtCode, caseNo, ok := splitCaseArg(*showCase)
		if !ok {
			log.Fatalf("Invalid -show value %q, want COURT_CODE/CASE_NO", *showCase)
		}
		c, err := pgStore.GetCase(ctx, courtCode, caseNo)
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		if c == nil {
			log.Fatalf("No record for %s %s", courtCode, caseNo)
		}
		out, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			log.Fatalf("Marshal failed: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	opsStore, err := storage.NewSQLiteStore(cfg.OpsDBPath)
	if err != nil {
		log.Fatalf("Failed to open ops database: %v", err)
	}
	defer opsStore.Close()
	log.Printf("Ops database: %s", cfg.OpsDBPath)

	clients := httputil.NewClients(cfg.Timeout(), os.Getenv("CRAWL_PROXY_URL"))
	fetcher := crawler.NewFetcher(clients.Scraping, userAgent(cfg))

	caseService := services.NewCaseService(pgStore)
	c := crawler.New(fetcher, cfg.Source.BaseURL, cfg.Courts)
	orchestrator := crawler.NewOrchestrator(c, caseService, opsStore, cfg.Delay(), cfg.Feed)

	// One-shot modes
	if *crawlCase != "" {
		courtCode, caseNo, ok := splitCaseArg(*crawlCase)
		if !ok {
			log.Fatalf("Invalid -case value %q, want COURT_CODE/CASE_NO", *crawlCase)
		}
		result := orchestrator.CrawlAndPersist(ctx, courtCode, caseNo)
		if !result.Success {
			log.Fatalf("Crawl failed: %s", result.Error)
		}
		log.Printf("Saved %s %s as %s", courtCode, caseNo, result.RootID)
		return
	}
	if *crawlNow {
		batch := orchestrator.RunFeed(ctx)
		log.Printf("Feed run complete: %d/%d saved", batch.Success, batch.Total)
		if batch.Failed > 0 {
			os.Exit(1)
		}
		return
	}

	// Daemon mode
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.New(cfg, orchestrator)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	var uploader workers.Uploader = &workers.NoOpUploader{}
	if cfg.S3.Bucket != "" {
		archive, err := storage.NewPhotoArchive(ctx, storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			KeyPrefix:       cfg.S3.KeyPrefix,
		})
		if err != nil {
			log.Printf("Warning: photo archive disabled: %v", err)
		} else {
			uploader = archive
			log.Printf("Photo archive: s3://%s/%s", cfg.S3.Bucket, cfg.S3.KeyPrefix)
		}
	}
	photoWorker := workers.NewPhotoWorker(pgStore, clients.API, uploader, cfg.S3.KeyPrefix)
	go photoWorker.Run(ctx, 20, 2*time.Minute)
	log.Println("Photo worker started")

	log.Println("Daemon running. Press Ctrl+C to stop, SIGHUP for an immediate run.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigCh {
		if sig == syscall.SIGHUP {
			log.Println("SIGHUP received, triggering feed run")
			go sched.TriggerNow(ctx)
			continue
		}
		break
	}

	log.Println("Shutting down...")
	sched.Stop()
	log.Println("Goodbye!")
}

func enqueue(ops *storage.SQLiteStore, arg string) error {
	if rest, ok := strings.CutPrefix(arg, "crawl_case:"); ok {
		courtCode, caseNo, ok := splitCaseArg(rest)
		if !ok {
			return fmt.Errorf("want crawl_case:COURT_CODE/CASE_NO, got %q", arg)
		}
		return ops.EnqueueCommand(models.CmdCrawlCase, &models.CommandParams{CourtCode: courtCode, CaseNo: caseNo})
	}

	switch arg {
	case "crawl_now":
		return ops.EnqueueCommand(models.CmdCrawlNow, nil)
	case "pause":
		return ops.EnqueueCommand(models.CmdPause, nil)
	case "resume":
		return ops.EnqueueCommand(models.CmdResume, nil)
	case "status":
		return ops.EnqueueCommand(models.CmdStatus, nil)
	}
	return fmt.Errorf("unknown command %q", arg)
}

// printStatus reports the latest run and its log lines from the ops ledger.
func printStatus(ops *storage.SQLiteStore) error {
	lastCompleted, err := ops.GetLastRunTime()
	if err != nil {
		return fmt.Errorf("last run time: %w", err)
	}
	if lastCompleted.IsZero() {
		log.Println("No completed runs yet")
	} else {
		log.Printf("Last completed run: %s", lastCompleted.Format(time.RFC3339))
	}

	run, err := ops.GetLastRun()
	if err != nil {
		return fmt.Errorf("last run: %w", err)
	}
	if run == nil {
		log.Println("No runs recorded")
		return nil
	}
	log.Printf("Run %d: %s, %d/%d saved, %d failed", run.ID, run.Status, run.CasesSaved, run.CasesTotal, run.CasesFailed)

	logs, err := ops.GetLogsForRun(run.ID)
	if err != nil {
		return fmt.Errorf("run logs: %w", err)
	}
	for _, l := range logs {
		if l.CaseNo != "" {
			log.Printf("  [%s] %s: %s", l.Level, l.CaseNo, l.Message)
		} else {
			log.Printf("  [%s] %s", l.Level, l.Message)
		}
	}
	return nil
}

func userAgent(cfg *config.Config) string {
	if cfg.Source.UserAgent != "" {
		return cfg.Source.UserAgent
	}
	return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
}

func splitCaseArg(arg string) (courtCode, caseNo string, ok bool) {
	for i := 0; i < len(arg); i++ {
		if arg[i] == '/' {
			if i == 0 || i == len(arg)-1 {
				return "", "", false
			}
			return arg[:i], arg[i+1:], true
		}
	}
	return "", "", false
}

// maskConnectionString masks password in connection string for logging
func maskConnectionString(connStr string) string {
	// Simple mask - find :// and mask until @
	start := 0
	for i := 0; i < len(connStr)-3; i++ {
		if connStr[i:i+3] == "://" {
			start = i + 3
			break
		}
	}
	if start == 0 {
		return connStr
	}

	colonIdx := -1
	atIdx := -1
	for i := start; i < len(connStr); i++ {
		if connStr[i] == ':' && colonIdx == -1 {
			colonIdx = i
		}
		if connStr[i] == '@' {
			atIdx = i
			break
		}
	}

	if colonIdx > 0 && atIdx > colonIdx {
		return connStr[:colonIdx+1] + "****" + connStr[atIdx:]
	}
	return connStr
}

package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/onsia-realty/auction-crawler/models"
	"github.com/onsia-realty/auction-crawler/storage"
)

// CaseSaver persists one crawl aggregate.
type CaseSaver interface {
	Save(ctx context.Context, data *models.AuctionCrawlData) models.SaveResult
}

// Orchestrator drives crawl-and-persist for single cases and batches,
// records runs in the operational ledger, and reacts to queued operator
// commands. The ops store may be nil for one-shot CLI use.
type Orchestrator struct {
	crawler *Crawler
	saver   CaseSaver
	ops     *storage.SQLiteStore
	delay   time.Duration
	feed    []models.CaseRef

	// Pause is set by the command poller and read by the schedule
	// goroutine, so it needs atomic access.
	paused atomic.Bool
}

func NewOrchestrator(crawler *Crawler, saver CaseSaver, ops *storage.SQLiteStore, delay time.Duration, feed []models.CaseRef) *Orchestrator {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Orchestrator{
		crawler: crawler,
		saver:   saver,
		ops:     ops,
		delay:   delay,
		feed:    feed,
	}
}

// CrawlAndPersist crawls one case and saves it. Crawl failures are
// reported on the result, never returned; callers inspect Success.
func (o *Orchestrator) CrawlAndPersist(ctx context.Context, courtCode, caseNo string) models.SaveResult {
	data, err := o.crawler.Crawl(ctx, courtCode, caseNo)
	if err != nil {
		return models.SaveResult{
			CourtCode: courtCode,
			CaseNo:    caseNo,
			Error:     err.Error(),
			Timestamp: time.Now(),
		}
	}
	return o.saver.Save(ctx, data)
}

// RunBatch works through the refs sequentially with a politeness delay
// between cases. No per-case error escapes the batch boundary.
func (o *Orchestrator) RunBatch(ctx context.Context, refs []models.CaseRef) models.BatchResult {
	if o.paused.Load() {
		log.Println("Crawler is paused, skipping batch")
		return models.BatchResult{}
	}

	run := o.startRun()

	batch := models.BatchResult{Total: len(refs)}
	for i, ref := range refs {
		if i > 0 {
			select {
			case <-ctx.Done():
				o.opsLog(run, models.LogLevelWarn, "batch aborted: "+ctx.Err().Error(), "")
				o.finishRun(run, &batch, models.RunStatusFailed)
				return batch
			case <-time.After(o.delay):
			}
		}

		result := o.CrawlAndPersist(ctx, ref.CourtCode, ref.CaseNo)
		batch.Results = append(batch.Results, result)
		if result.Success {
			batch.Success++
			if result.Error != "" {
				o.opsLog(run, models.LogLevelWarn, result.Error, ref.CaseNo)
			}
		} else {
			batch.Failed++
			log.Printf("Warning: crawl %s %s: %s", ref.CourtCode, ref.CaseNo, result.Error)
			o.opsLog(run, models.LogLevelError, result.Error, ref.CaseNo)
		}
	}

	o.finishRun(run, &batch, models.RunStatusCompleted)
	log.Printf("Batch done: %d/%d saved, %d failed", batch.Success, batch.Total, batch.Failed)
	return batch
}

// RunFeed runs the configured case feed.
func (o *Orchestrator) RunFeed(ctx context.Context) models.BatchResult {
	return o.RunBatch(ctx, o.feed)
}

// ProcessCommands drains the operator command queue.
func (o *Orchestrator) ProcessCommands(ctx context.Context) {
	if o.ops == nil {
		return
	}
	cmds, err := o.ops.GetPendingCommands()
	if err != nil {
		log.Printf("Warning: read command queue: %v", err)
		return
	}
	for _, cmd := range cmds {
		if err := o.HandleCommand(ctx, &cmd); err != nil {
			log.Printf("Warning: command %s: %v", cmd.Command, err)
		}
		if err := o.ops.MarkCommandProcessed(cmd.ID); err != nil {
			log.Printf("Warning: mark command %d processed: %v", cmd.ID, err)
		}
	}
}

func (o *Orchestrator) HandleCommand(ctx context.Context, cmd *models.Command) error {
	params, err := o.ops.ParseCommandParams(cmd)
	if err != nil {
		return err
	}

	switch cmd.Command {
	case models.CmdCrawlNow:
		o.RunFeed(ctx)
	case models.CmdCrawlCase:
		if params.CourtCode == "" || params.CaseNo == "" {
			return fmt.Errorf("crawl_case needs court_code and case_no")
		}
		result := o.CrawlAndPersist(ctx, params.CourtCode, params.CaseNo)
		if !result.Success {
			return fmt.Errorf("crawl %s %s: %s", params.CourtCode, params.CaseNo, result.Error)
		}
	case models.CmdPause:
		o.paused.Store(true)
		log.Println("Crawler paused")
	case models.CmdResume:
		o.paused.Store(false)
		log.Println("Crawler resumed")
	case models.CmdStatus:
		status, err := o.MarshalStatus()
		if err != nil {
			return err
		}
		log.Printf("Status: %s", status)
	}

	return nil
}

func (o *Orchestrator) IsPaused() bool {
	return o.paused.Load()
}

func (o *Orchestrator) MarshalStatus() ([]byte, error) {
	status := map[string]interface{}{
		"paused":    o.paused.Load(),
		"feed_size": len(o.feed),
	}
	return json.Marshal(status)
}

func (o *Orchestrator) startRun() *models.CrawlRun {
	if o.ops == nil {
		return nil
	}
	run := &models.CrawlRun{StartedAt: time.Now(), Status: models.RunStatusRunning}
	id, err := o.ops.CreateRun(run)
	if err != nil {
		log.Printf("Warning: create run record: %v", err)
		return nil
	}
	run.ID = id
	return run
}

func (o *Orchestrator) finishRun(run *models.CrawlRun, batch *models.BatchResult, status models.RunStatus) {
	if run == nil {
		return
	}
	now := time.Now()
	run.FinishedAt = &now
	run.Status = status
	run.CasesTotal = batch.Total
	run.CasesSaved = batch.Success
	run.CasesFailed = batch.Failed
	if err := o.ops.UpdateRun(run); err != nil {
		log.Printf("Warning: update run record: %v", err)
	}
}

func (o *Orchestrator) opsLog(run *models.CrawlRun, level models.LogLevel, message, caseNo string) {
	if o.ops == nil {
		return
	}
	var runID *int64
	if run != nil {
		runID = &run.ID
	}
	if err := o.ops.Log(runID, level, message, caseNo); err != nil {
		log.Printf("Warning: write run log: %v", err)
	}
}

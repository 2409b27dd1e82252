// Package scanner classifies batches of messages, sequentially for small
// batches and with a bounded worker pool otherwise.
package scanner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"fjacquet/subscan/internal/classifier"
	"fjacquet/subscan/internal/currencyutils"
	"fjacquet/subscan/internal/dateutils"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/registry"
)

// SequentialThreshold is the batch size below which no workers are started.
const SequentialThreshold = 100

// ProgressFunc is called after each message with the number of messages
// done so far. Calls are serialized.
type ProgressFunc func(done, total int)

// Scanner runs the classifier over batches of messages.
type Scanner struct {
	classifier      *classifier.Classifier
	registry        *registry.Registry
	acceptThreshold int
	workerCount     int
	progress        ProgressFunc
	logger          logging.Logger
}

// New creates a Scanner. When reg is not nil, every batch is classified
// against a snapshot of it taken when the batch starts. workers <= 0 means
// one worker per CPU.
func New(cls *classifier.Classifier, reg *registry.Registry, acceptThreshold, workers int, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scanner{
		classifier:      cls,
		registry:        reg,
		acceptThreshold: acceptThreshold,
		workerCount:     workers,
		logger:          logger,
	}
}

// SetProgress registers fn to be told about progress.
func (s *Scanner) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// Scan classifies messages and returns one record per message, in input order.
// On cancellation the records are discarded and ctx's error is returned.
func (s *Scanner) Scan(ctx context.Context, messages []models.Message) ([]models.ScanRecord, error) {
	cls := s.classifier
	if s.registry != nil {
		snapshot := s.registry.Snapshot()
		cls = cls.WithSource(snapshot)
		s.logger.Debug("Registry snapshot taken",
			logging.Field{Key: logging.FieldCount, Value: snapshot.Len()})
	}

	var (
		records []models.ScanRecord
		err     error
	)
	if len(messages) < SequentialThreshold || s.workerCount == 1 {
		records, err = s.scanSequential(ctx, cls, messages)
	} else {
		records, err = s.scanConcurrent(ctx, cls, messages)
	}
	if err != nil {
		s.logger.WithError(err).Warn("Scan interrupted")
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}

	accepted := 0
	for _, r := range records {
		if r.Accepted {
			accepted++
		}
	}
	s.logger.Info("Scan completed",
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: "accepted", Value: accepted})
	return records, nil
}

func (s *Scanner) scanSequential(ctx context.Context, cls *classifier.Classifier, messages []models.Message) ([]models.ScanRecord, error) {
	records := make([]models.ScanRecord, 0, len(messages))
	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records = append(records, s.scanOne(cls, msg))
		if s.progress != nil {
			s.progress(i+1, len(messages))
		}
	}
	return records, nil
}

func (s *Scanner) scanConcurrent(ctx context.Context, cls *classifier.Classifier, messages []models.Message) ([]models.ScanRecord, error) {
	// Each worker writes only the slots of the indexes it receives.
	records := make([]models.ScanRecord, len(messages))
	indexes := make(chan int, s.workerCount)

	var (
		wg         sync.WaitGroup
		progressMu sync.Mutex
		done       int
	)
	for w := 0; w < s.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				records[i] = s.scanOne(cls, messages[i])
				if s.progress != nil {
					progressMu.Lock()
					done++
					s.progress(done, len(messages))
					progressMu.Unlock()
				}
			}
		}()
	}

	var cancelled error
feed:
	for i := range messages {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case indexes <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	s.logger.Debug("Concurrent scan completed",
		logging.Field{Key: logging.FieldCount, Value: len(messages)},
		logging.Field{Key: logging.FieldWorkers, Value: s.workerCount})
	if cancelled != nil {
		return nil, cancelled
	}
	return records, nil
}

func (s *Scanner) scanOne(cls *classifier.Classifier, msg models.Message) models.ScanRecord {
	result, extraction := cls.AnalyzeWithExtraction(msg.Text, msg.Sender)
	return ToScanRecord(msg, result, extraction, s.acceptThreshold)
}

// ToScanRecord flattens a classification into a CSV row. A message is
// accepted when it matched with a confidence of at least acceptThreshold.
func ToScanRecord(msg models.Message, r models.PatternMatchResult, e models.ExtractionResult, acceptThreshold int) models.ScanRecord {
	record := models.ScanRecord{
		ID:                msg.ID,
		Sender:            msg.Sender,
		Matched:           r.Matched,
		Confidence:        r.Confidence,
		Accepted:          r.Matched && r.Confidence >= acceptThreshold,
		Service:           r.ExtractedData.ServiceName,
		Currency:          r.ExtractedData.Currency,
		BillingCycle:      r.ExtractedData.BillingCycle,
		OverallConfidence: e.OverallConfidence,
	}
	if r.PatternType != nil {
		record.PatternType = string(*r.PatternType)
	}
	if r.ExtractedData.Price != nil {
		record.Amount = currencyutils.FormatPlain(*r.ExtractedData.Price)
	}
	if r.ExtractedData.Date != nil {
		record.Date = dateutils.ToISODate(*r.ExtractedData.Date)
	}
	if r.ExtractedData.NextBillingDate != nil {
		record.NextBillingDate = dateutils.ToISODate(*r.ExtractedData.NextBillingDate)
	}
	if e.BillingCycle != nil {
		record.IntervalMonths = e.BillingCycle.IntervalMonths
	}
	return record
}

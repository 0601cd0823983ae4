// Package service drives the statement import pipeline: text extraction,
// parsing, sanitization, dedupe, categorization and persistence.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/parser"
	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/repository"
	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/tabular"
	"github.com/fintrack-ro/statement-ingest/internal/domain/transaction"
	"github.com/fintrack-ro/statement-ingest/pkg/metrics"
	"github.com/fintrack-ro/statement-ingest/pkg/money"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	CreateBatch(ctx context.Context, batch *repository.ImportBatch) error
	FinalizeBatch(ctx context.Context, batch *repository.ImportBatch) error
	SaveTransaction(ctx context.Context, tx *transaction.Transaction) error
	ExistsByFingerprint(ctx context.Context, fingerprint string, ownerID uuid.UUID) (bool, error)
}

// TextExtractor turns document bytes into statement text.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// CategorySession categorizes descriptions against one owner's category
// set.
type CategorySession interface {
	Categorize(description string, isIncome bool) (string, *uuid.UUID)
}

// Categorizer opens a per-owner categorization session.
type Categorizer interface {
	SessionFor(ctx context.Context, ownerID uuid.UUID) CategorySession
}

// Result is the caller-facing outcome of one import. TotalIncome and
// TotalExpense sum the imported rows only, in RON.
type Result struct {
	BatchID      uuid.UUID
	Imported     int
	Duplicates   int
	Failed       int
	Errors       []string
	TotalIncome  *money.Money
	TotalExpense *money.Money
}

// Service orchestrates imports. One call handles one document for one
// owner, synchronously.
type Service struct {
	store       Store
	extractor   TextExtractor
	categorizer Categorizer
	registry    *parser.Registry
	metrics     *metrics.ImportMetrics
	logger      *slog.Logger
}

func NewService(store Store, extractor TextExtractor, categorizer Categorizer,
	registry *parser.Registry, m *metrics.ImportMetrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       store,
		extractor:   extractor,
		categorizer: categorizer,
		registry:    registry,
		metrics:     m,
		logger:      logger,
	}
}

// errorDescriptionLimit caps how much of a candidate's description lands in
// the error log.
const errorDescriptionLimit = 60

// ImportPDF ingests a PDF statement. Extraction failure is fatal to the
// batch; everything after that degrades per candidate.
func (s *Service) ImportPDF(ctx context.Context, doc []byte, filename string, ownerID uuid.UUID, bankHint string) (*Result, error) {
	batch := &repository.ImportBatch{
		OwnerID:  ownerID,
		Filename: filename,
		FileSize: int64(len(doc)),
		Source:   transaction.SourcePDFImport,
		BankHint: bankHint,
	}
	if err := s.store.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(doc)
	if err != nil {
		s.failBatch(ctx, batch, fmt.Sprintf("text extraction failed: %v", err))
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}

	candidates := s.parseText(text, bankHint)
	s.logger.Info("parsed statement",
		slog.String("filename", filename),
		slog.String("bank_hint", bankHint),
		slog.Int("candidates", len(candidates)))

	result := s.processCandidates(ctx, batch, candidates, nil)
	s.finalize(ctx, batch, result)
	return result, nil
}

// ImportCSV ingests a CSV export using the caller's column mapping.
func (s *Service) ImportCSV(ctx context.Context, doc []byte, filename string, ownerID uuid.UUID, mapping tabular.Mapping) (*Result, error) {
	return s.importTabular(ctx, doc, filename, ownerID, mapping, transaction.SourceCSVImport, tabular.ParseCSV)
}

// ImportXLSX ingests an XLSX workbook using the caller's column mapping.
func (s *Service) ImportXLSX(ctx context.Context, doc []byte, filename string, ownerID uuid.UUID, mapping tabular.Mapping) (*Result, error) {
	return s.importTabular(ctx, doc, filename, ownerID, mapping, transaction.SourceXLSXImport, tabular.ParseXLSX)
}

func (s *Service) importTabular(ctx context.Context, doc []byte, filename string, ownerID uuid.UUID,
	mapping tabular.Mapping, source transaction.Source,
	parse func([]byte, tabular.Mapping) (*tabular.Result, error)) (*Result, error) {

	batch := &repository.ImportBatch{
		OwnerID:  ownerID,
		Filename: filename,
		FileSize: int64(len(doc)),
		Source:   source,
		Columns: repository.ColumnMapping{
			DateColumn:        mapping.DateColumn,
			AmountColumn:      mapping.AmountColumn,
			DescriptionColumn: mapping.DescriptionColumn,
			TypeColumn:        mapping.TypeColumn,
		},
	}
	if err := s.store.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	parsed, err := parse(doc, mapping)
	if err != nil {
		s.failBatch(ctx, batch, fmt.Sprintf("document parse failed: %v", err))
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}

	rowErrors := make([]string, 0, len(parsed.Errors))
	for _, re := range parsed.Errors {
		rowErrors = append(rowErrors, re.Error())
	}

	result := s.processCandidates(ctx, batch, parsed.Candidates, rowErrors)
	batch.TotalCount = parsed.TotalRows
	s.finalize(ctx, batch, result)
	return result, nil
}

// parseText routes the bank hint. An unknown-layout result of zero
// candidates retries with auto-detection before giving up.
func (s *Service) parseText(text, bankHint string) []parser.Candidate {
	bank := parser.ParseBank(bankHint)
	if bank == parser.BankAuto {
		return s.registry.AutoDetect(text)
	}
	candidates := s.registry.ForBank(bank).Parse(text)
	if len(candidates) == 0 {
		candidates = s.registry.AutoDetect(text)
	}
	return candidates
}

// processCandidates runs the per-candidate stages. Each candidate succeeds
// or fails on its own; priorErrors carries row-level parse errors from the
// tabular path so they appear in the batch error log ahead of pipeline
// errors.
func (s *Service) processCandidates(ctx context.Context, batch *repository.ImportBatch,
	candidates []parser.Candidate, priorErrors []string) *Result {

	result := &Result{
		BatchID:      batch.ID,
		Errors:       priorErrors,
		Failed:       len(priorErrors),
		TotalIncome:  money.Zero(money.RON),
		TotalExpense: money.Zero(money.RON),
	}

	sess := s.categorizer.SessionFor(ctx, batch.OwnerID)

	for _, c := range candidates {
		description := normalizer.Sanitize(c.Description)
		fingerprint := transaction.Fingerprint(c.Amount, c.Date, description)

		exists, err := s.store.ExistsByFingerprint(ctx, fingerprint, batch.OwnerID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("%q: duplicate check failed: %v", truncate(description), err))
			continue
		}
		if exists {
			result.Duplicates++
			continue
		}

		categoryName, categoryID := sess.Categorize(description, c.IsIncome)

		txType := transaction.TypeExpense
		if c.IsIncome {
			txType = transaction.TypeIncome
		}
		tx := &transaction.Transaction{
			OwnerID:     batch.OwnerID,
			Date:        c.Date,
			Amount:      c.Amount,
			Type:        txType,
			Description: description,
			CategoryID:  categoryID,
			Provenance: transaction.Provenance{
				Source:  batch.Source,
				BatchID: batch.ID,
			},
			Fingerprint: fingerprint,
		}
		if err := s.store.SaveTransaction(ctx, tx); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("%q: save failed: %v", truncate(description), err))
			continue
		}

		result.Imported++
		amount := money.NewFromDecimal(c.Amount, money.RON)
		if c.IsIncome {
			result.TotalIncome, _ = result.TotalIncome.Add(amount)
		} else {
			result.TotalExpense, _ = result.TotalExpense.Add(amount)
		}
		s.logger.Debug("imported transaction",
			slog.String("category", categoryName),
			slog.String("fingerprint", fingerprint[:12]))
	}

	return result
}

// finalize writes the terminal batch state and flips the counters into the
// metrics. A finalize failure is logged, not surfaced: the transactions are
// already committed.
func (s *Service) finalize(ctx context.Context, batch *repository.ImportBatch, result *Result) {
	if batch.TotalCount == 0 {
		batch.TotalCount = result.Imported + result.Duplicates + result.Failed
	}
	batch.Status = repository.BatchCompleted
	batch.SuccessCount = result.Imported
	batch.DuplicateCount = result.Duplicates
	batch.FailedCount = result.Failed
	batch.ErrorLog = result.Errors
	if err := s.store.FinalizeBatch(ctx, batch); err != nil {
		s.logger.Error("finalizing import batch failed",
			slog.String("batch_id", batch.ID.String()), slog.Any("error", err))
	}

	s.logger.Info("import completed",
		slog.String("batch_id", batch.ID.String()),
		slog.Int("imported", result.Imported),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("failed", result.Failed),
		slog.String("total_income", result.TotalIncome.Display()),
		slog.String("total_expense", result.TotalExpense.Display()))

	source := string(batch.Source)
	s.metrics.Imported(source, result.Imported)
	s.metrics.Duplicates(source, result.Duplicates)
	s.metrics.Failed(source, result.Failed)
	s.metrics.BatchFinalized(source, string(batch.Status))
}

// failBatch marks a batch failed before any candidate was processed.
func (s *Service) failBatch(ctx context.Context, batch *repository.ImportBatch, message string) {
	batch.Status = repository.BatchFailed
	batch.ErrorLog = []string{message}
	if err := s.store.FinalizeBatch(ctx, batch); err != nil {
		s.logger.Error("finalizing failed batch",
			slog.String("batch_id", batch.ID.String()), slog.Any("error", err))
	}
	s.metrics.BatchFinalized(string(batch.Source), string(batch.Status))
}

func truncate(s string) string {
	if len(s) <= errorDescriptionLimit {
		return s
	}
	return s[:errorDescriptionLimit] + "..."
}

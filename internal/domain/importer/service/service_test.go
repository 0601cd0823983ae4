package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/parser"
	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/repository"
	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/tabular"
	"github.com/fintrack-ro/statement-ingest/internal/domain/transaction"
)

// mockStore keeps batches and transactions in memory, with per-owner
// fingerprint lookups backed by what was actually saved.
type mockStore struct {
	batches      map[uuid.UUID]*repository.ImportBatch
	transactions []transaction.Transaction

	createErr      error
	existsErr      error
	saveErrFor     func(tx *transaction.Transaction) error
	finalizeCalled int
}

func newMockStore() *mockStore {
	return &mockStore{batches: make(map[uuid.UUID]*repository.ImportBatch)}
}

func (m *mockStore) CreateBatch(_ context.Context, batch *repository.ImportBatch) error {
	if m.createErr != nil {
		return m.createErr
	}
	batch.ID = uuid.New()
	batch.Status = repository.BatchProcessing
	snapshot := *batch
	m.batches[batch.ID] = &snapshot
	return nil
}

func (m *mockStore) FinalizeBatch(_ context.Context, batch *repository.ImportBatch) error {
	m.finalizeCalled++
	snapshot := *batch
	m.batches[batch.ID] = &snapshot
	return nil
}

func (m *mockStore) SaveTransaction(_ context.Context, tx *transaction.Transaction) error {
	if m.saveErrFor != nil {
		if err := m.saveErrFor(tx); err != nil {
			return err
		}
	}
	tx.ID = uuid.New()
	m.transactions = append(m.transactions, *tx)
	return nil
}

func (m *mockStore) ExistsByFingerprint(_ context.Context, fingerprint string, ownerID uuid.UUID) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, tx := range m.transactions {
		if tx.OwnerID == ownerID && tx.Fingerprint == fingerprint {
			return true, nil
		}
	}
	return false, nil
}

type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) Extract(_ []byte) (string, error) {
	return m.text, m.err
}

// mockCategorizer names everything "Groceries" with a fixed ID.
type mockCategorizer struct {
	categoryID uuid.UUID
}

func (m *mockCategorizer) SessionFor(_ context.Context, _ uuid.UUID) CategorySession {
	return m
}

func (m *mockCategorizer) Categorize(_ string, isIncome bool) (string, *uuid.UUID) {
	if isIncome {
		return "Salary", nil
	}
	id := m.categoryID
	return "Groceries", &id
}

func newTestService(store *mockStore, extractor *mockExtractor) (*Service, *mockCategorizer) {
	cat := &mockCategorizer{categoryID: uuid.New()}
	svc := NewService(store, extractor, cat, parser.NewRegistry(parser.Options{}), nil, nil)
	return svc, cat
}

const bcrStatement = "15.01.2024 KAUFLAND BUCURESTI 50,00 -\n" +
	"20.01.2024 SALARIU IANUARIE - 2.500,00\n"

func TestImportPDF(t *testing.T) {
	store := newMockStore()
	svc, cat := newTestService(store, &mockExtractor{text: bcrStatement})
	ownerID := uuid.New()

	result, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", ownerID, "BCR")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Duplicates)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Errors)
	assert.Equal(t, int64(5000), result.TotalExpense.Amount())
	assert.Equal(t, int64(250000), result.TotalIncome.Amount())

	require.Len(t, store.transactions, 2)
	first := store.transactions[0]
	assert.Equal(t, ownerID, first.OwnerID)
	assert.Equal(t, transaction.TypeExpense, first.Type)
	assert.Equal(t, "KAUFLAND BUCURESTI", first.Description)
	assert.Equal(t, transaction.SourcePDFImport, first.Provenance.Source)
	assert.Equal(t, result.BatchID, first.Provenance.BatchID)
	require.NotNil(t, first.CategoryID)
	assert.Equal(t, cat.categoryID, *first.CategoryID)

	assert.Equal(t, transaction.TypeIncome, store.transactions[1].Type)
	assert.Nil(t, store.transactions[1].CategoryID)

	batch := store.batches[result.BatchID]
	require.NotNil(t, batch)
	assert.Equal(t, repository.BatchCompleted, batch.Status)
	assert.Equal(t, 2, batch.SuccessCount)
	assert.Equal(t, 2, batch.TotalCount)
	assert.Equal(t, "BCR", batch.BankHint)
}

func TestImportPDF_ExtractionFailureFailsBatch(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestService(store, &mockExtractor{err: errors.New("encrypted document")})

	_, err := svc.ImportPDF(context.Background(), []byte("junk"), "broken.pdf", uuid.New(), "AUTO")
	require.Error(t, err)

	require.Len(t, store.batches, 1)
	for _, batch := range store.batches {
		assert.Equal(t, repository.BatchFailed, batch.Status)
		require.Len(t, batch.ErrorLog, 1)
		assert.Contains(t, batch.ErrorLog[0], "text extraction failed")
		assert.Zero(t, batch.SuccessCount)
	}
	assert.Empty(t, store.transactions)
	assert.Equal(t, 1, store.finalizeCalled)
}

func TestImportPDF_DedupeStability(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestService(store, &mockExtractor{text: bcrStatement})
	ownerID := uuid.New()

	first, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", ownerID, "BCR")
	require.NoError(t, err)
	require.Equal(t, 2, first.Imported)

	second, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", ownerID, "BCR")
	require.NoError(t, err)
	assert.Zero(t, second.Imported)
	assert.Equal(t, first.Imported, second.Duplicates)
	assert.Len(t, store.transactions, 2, "no new rows on the second run")
}

func TestImportPDF_DuplicatesAreScopedToOwner(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestService(store, &mockExtractor{text: bcrStatement})

	_, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", uuid.New(), "BCR")
	require.NoError(t, err)

	other, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", uuid.New(), "BCR")
	require.NoError(t, err)
	assert.Equal(t, 2, other.Imported)
	assert.Zero(t, other.Duplicates)
}

func TestImportPDF_PerCandidateIsolation(t *testing.T) {
	var lines []string
	for i := 0; i < 9; i++ {
		lines = append(lines, "15.01.2024 MAGAZIN NUMARUL "+strings.Repeat("X", i+1)+" 10,0"+string(rune('0'+i))+" -")
	}
	lines = append(lines, "16.01.2024 POISON ROW 99,99 -")

	store := newMockStore()
	store.saveErrFor = func(tx *transaction.Transaction) error {
		if strings.Contains(tx.Description, "POISON") {
			return errors.New("constraint violation")
		}
		return nil
	}
	svc, _ := newTestService(store, &mockExtractor{text: strings.Join(lines, "\n")})

	result, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", uuid.New(), "BCR")
	require.NoError(t, err)

	assert.Equal(t, 9, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "POISON ROW")
	assert.Contains(t, result.Errors[0], "save failed")

	batch := store.batches[result.BatchID]
	assert.Equal(t, repository.BatchCompleted, batch.Status, "row failures do not fail the batch")
	assert.Equal(t, 10, batch.TotalCount)
}

func TestImportPDF_SanitizesBeforePersistAndFingerprint(t *testing.T) {
	text := "15.01.2024 TRANSFER RO49AAAA1234567893840000 12,00 -\n"
	store := newMockStore()
	svc, _ := newTestService(store, &mockExtractor{text: text})

	result, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", uuid.New(), "BCR")
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)

	saved := store.transactions[0]
	assert.NotContains(t, saved.Description, "RO49")
	assert.Contains(t, saved.Description, "[IBAN]")
	assert.Equal(t, transaction.Fingerprint(saved.Amount, saved.Date, saved.Description), saved.Fingerprint)
}

func TestImportPDF_ZeroCandidatesFallsBackToAutoDetect(t *testing.T) {
	// ING-layout lines with a BCR hint: the BCR parser finds nothing, so
	// auto-detection takes over.
	text := "15-01-2024 Kaufland -50.00\n16-01-2024 Carrefour -20.00\n"
	store := newMockStore()
	svc, _ := newTestService(store, &mockExtractor{text: text})

	result, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", uuid.New(), "BCR")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
}

func TestImportCSV(t *testing.T) {
	csv := "Date,Amount,Description\n" +
		"15.01.2024,-50.00,KAUFLAND BUCURESTI\n" +
		"bad-date,-10.00,BROKEN ROW\n" +
		"16.01.2024,+3000.00,Plata salariu\n"

	store := newMockStore()
	svc, _ := newTestService(store, &mockExtractor{})
	ownerID := uuid.New()

	mapping := tabular.Mapping{DateColumn: "Date", AmountColumn: "Amount", DescriptionColumn: "Description"}
	result, err := svc.ImportCSV(context.Background(), []byte(csv), "export.csv", ownerID, mapping)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 3")

	batch := store.batches[result.BatchID]
	assert.Equal(t, repository.BatchCompleted, batch.Status)
	assert.Equal(t, 3, batch.TotalCount)
	assert.Equal(t, "Date", batch.Columns.DateColumn)
	assert.Equal(t, transaction.SourceCSVImport, batch.Source)

	assert.Equal(t, transaction.TypeExpense, store.transactions[0].Type)
	assert.Equal(t, transaction.TypeIncome, store.transactions[1].Type)
}

func TestImportCSV_UnparseableDocumentFailsBatch(t *testing.T) {
	store := newMockStore()
	svc, _ := newTestService(store, &mockExtractor{})

	mapping := tabular.Mapping{DateColumn: "Date", AmountColumn: "Missing", DescriptionColumn: "Description"}
	_, err := svc.ImportCSV(context.Background(), []byte("Date,Amount,Description\n"), "export.csv", uuid.New(), mapping)
	require.Error(t, err)

	for _, batch := range store.batches {
		assert.Equal(t, repository.BatchFailed, batch.Status)
	}
}

func TestImportPDF_CreateBatchFailureStopsImport(t *testing.T) {
	store := newMockStore()
	store.createErr = errors.New("db down")
	svc, _ := newTestService(store, &mockExtractor{text: bcrStatement})

	_, err := svc.ImportPDF(context.Background(), []byte("%PDF"), "extras.pdf", uuid.New(), "BCR")
	require.Error(t, err)
	assert.Empty(t, store.transactions)
	assert.Zero(t, store.finalizeCalled)
}

// Package transaction holds the persisted transaction model shared by the
// import pipeline and downstream consumers.
package transaction

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Source records how a transaction entered the system.
type Source string

const (
	SourceManual     Source = "manual"
	SourceCSVImport  Source = "csv_import"
	SourcePDFImport  Source = "pdf_import"
	SourceXLSXImport Source = "xlsx_import"
)

// Provenance ties an imported transaction back to the batch that created
// it. Manual transactions carry a zero BatchID.
type Provenance struct {
	Source  Source
	BatchID uuid.UUID
}

// Transaction is one persisted ledger entry. Description is stored
// sanitized; Fingerprint is set at creation and never updated.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Type        Type
	Description string
	CategoryID  *uuid.UUID
	Provenance  Provenance
	Fingerprint string
	CreatedAt   time.Time
}

// Fingerprint derives the per-owner dedupe key from a transaction's
// defining fields. Amount is fixed to two decimal places and the date to a
// calendar day so formatting differences between statement exports of the
// same transaction collapse to one key. Callers pass the sanitized
// description.
func Fingerprint(amount decimal.Decimal, date time.Time, description string) string {
	h := sha256.New()
	h.Write([]byte(amount.StringFixed(2)))
	h.Write([]byte{0})
	h.Write([]byte(date.Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(description))
	return hex.EncodeToString(h.Sum(nil))
}

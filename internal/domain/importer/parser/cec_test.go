package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCECParser_AssemblesMultiLineRecord(t *testing.T) {
	p := newTestRegistry(t).ForBank(BankCEC)

	text := "15.01.2024\n" +
		"PLATA FACTURA\n" +
		"ENEL ENERGIE\n" +
		"OP-2024-0117 -142,50\n"
	got := p.Parse(text)
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, time.January, 15), got[0].Date)
	amountEq(t, "142.50", got[0].Amount)
	assert.Equal(t, "PLATA FACTURA ENEL ENERGIE", got[0].Description)
	assert.False(t, got[0].IsIncome)
}

func TestCECParser_DiscardsNoiseLines(t *testing.T) {
	p := newTestRegistry(t).ForBank(BankCEC)

	// IBAN, BIC and numeric-artifact lines are dropped from the description
	// without closing the record.
	text := "15.01.2024\n" +
		"TRANSFER CATRE\n" +
		"RO12CECB0000001234567890\n" +
		"CECEROBU\n" +
		"1.234,56 0,00\n" +
		"POPESCU ION\n" +
		"REF-88/2024 +300,00\n"
	got := p.Parse(text)
	require.Len(t, got, 1)
	assert.Equal(t, "TRANSFER CATRE POPESCU ION", got[0].Description)
	amountEq(t, "300.00", got[0].Amount)
	assert.True(t, got[0].IsIncome)
}

func TestCECParser_AbandonsRecordPastScanBound(t *testing.T) {
	p := NewRegistry(Options{ScanBound: 3}).ForBank(BankCEC)

	// The first record never closes inside the bound. The second is complete
	// and must still come through.
	text := "15.01.2024\n" +
		"FRAGMENT ONE\n" +
		"FRAGMENT TWO\n" +
		"FRAGMENT THREE\n" +
		"FRAGMENT FOUR\n" +
		"16.01.2024\n" +
		"RETRAGERE ATM\n" +
		"ATM-0042 -200,00\n"
	got := p.Parse(text)
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, time.January, 16), got[0].Date)
	assert.Equal(t, "RETRAGERE ATM", got[0].Description)
}

func TestCECParser_NewDateLineRestartsRecord(t *testing.T) {
	p := newTestRegistry(t).ForBank(BankCEC)

	text := "15.01.2024\n" +
		"ORPHAN FRAGMENT\n" +
		"16.01.2024\n" +
		"PLATA POS\n" +
		"POS-9 -10,00\n"
	got := p.Parse(text)
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, time.January, 16), got[0].Date)
	assert.Equal(t, "PLATA POS", got[0].Description)
}

func TestCECParser_UnsignedAmountUsesKeywordsThenPolicy(t *testing.T) {
	text := "15.01.2024\n" +
		"INCASARE CHIRIE\n" +
		"OP-77/2024 500,00\n" +
		"16.01.2024\n" +
		"PLATA DIVERSA\n" +
		"OP-78/2024 40,00\n"

	got := newTestRegistry(t).ForBank(BankCEC).Parse(text)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsIncome, "incasare keyword marks income")
	assert.False(t, got[1].IsIncome, "default policy marks unsigned as expense")
}

func TestCECParser_IgnoresTextWithNoDateLines(t *testing.T) {
	p := newTestRegistry(t).ForBank(BankCEC)
	assert.Empty(t, p.Parse("Extras de cont\nSold initial 1.000,00\n"))
}

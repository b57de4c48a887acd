package diag_test

import (
	"testing"

	"whilec/internal/diag"
	"whilec/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := diag.NewBag(2)
	r := diag.BagReporter{Bag: bag}
	sp := source.Span{Start: 1, End: 2}

	diag.ReportError(r, diag.SemaUndefined, sp, "undefined variable %q", "x").Emit()
	diag.ReportError(r, diag.SemaUndefined, sp, "again").Emit()
	diag.ReportError(r, diag.SemaRedeclared, sp, "dropped").Emit()

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if bag.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Error("expected HasErrors")
	}
	if got := bag.Items()[0].Message; got != `undefined variable "x"` {
		t.Errorf("message = %q", got)
	}
	bag.Dedup()
	if bag.Len() != 1 {
		t.Errorf("after Dedup Len = %d, want 1", bag.Len())
	}
}

func TestBagSort(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaTypeMismatch, source.Span{Start: 10, End: 12}, "b"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{Start: 2, End: 3}, "a"))
	bag.Sort()
	if bag.Items()[0].Message != "a" {
		t.Errorf("first after sort = %q, want a", bag.Items()[0].Message)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[diag.Code]string{
		diag.LexUnknownChar:     "LEX1001",
		diag.SynUnexpectedToken: "SYN2001",
		diag.SemaUndefined:      "SEM3001",
		diag.IOLoadFileError:    "IO4000",
		diag.Code(9999):         "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("Code(%d).ID() = %q, want %q", code, got, want)
		}
	}
}

package core

import "fmt"

// ExpandInstallments turns a validated transaction draft into the records
// to persist. With total <= 1 the draft is stored as-is with no
// installment marker. With total > 1 it produces total independent
// records: record i carries the description suffixed with "(i/total)", the
// full per-installment amount (the entered amount is the per-installment
// value, not a total to divide), and the original date advanced by i-1
// calendar months. Installment 1 keeps the draft's paid flag; later
// installments are future-dated, so they start unpaid and never recur.
//
// Ids are left empty; the caller assigns one per record. Expansion applies
// only to drafts without an id: editing an existing transaction must not
// re-expand, even when the installment count changed in the form.
func ExpandInstallments(draft Transaction, total int) []Transaction {
	if total <= 1 {
		draft.Installments = nil
		return []Transaction{draft}
	}

	records := make([]Transaction, 0, total)
	base := draft.Description
	for i := 1; i <= total; i++ {
		t := draft
		t.ID = ""
		t.Description = fmt.Sprintf("%s (%d/%d)", base, i, total)
		t.Date = draft.Date.AddMonths(i - 1)
		t.Installments = &Installments{Current: i, Total: total}
		if i > 1 {
			t.Paid = false
			t.IsFixed = false
		}
		records = append(records, t)
	}
	return records
}

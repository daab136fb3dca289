package domain

// FieldDiff holds both values of a single field that differs between the two
// sides of a comparison.
type FieldDiff struct {
	Field string `json:"field"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Difference describes one transaction id present on both sides whose
// records differ, with the per-field discrepancies and both full records.
type Difference struct {
	TransactionID uint64      `json:"transaction_id"`
	Fields        []FieldDiff `json:"fields"`
	Left          Transaction `json:"left"`
	Right         Transaction `json:"right"`
}

// CompareReport is the three-category output of a comparison. All lists are
// sorted by ascending transaction id so output is reproducible regardless of
// input file order. The source labels are presentation only; the diff itself
// is symmetric.
type CompareReport struct {
	LeftSource     string       `json:"left_source"`
	RightSource    string       `json:"right_source"`
	MissingInRight []uint64     `json:"missing_in_right"`
	MissingInLeft  []uint64     `json:"missing_in_left"`
	Differing      []Difference `json:"differing"`
}

// Identical reports whether the two sides contained the same transactions.
func (r *CompareReport) Identical() bool {
	return len(r.MissingInRight) == 0 && len(r.MissingInLeft) == 0 && len(r.Differing) == 0
}

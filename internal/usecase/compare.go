package usecase

import (
	"context"
	"fmt"

	"banktx/internal/codec"
	"banktx/internal/domain"
)

// Source names one side of a comparison: a file path and its format tag.
type Source struct {
	Path   string
	Format codec.Format
}

// ComparerUseCase orchestrates the comparison of two transaction files.
type ComparerUseCase struct {
	repo TransactionRepository
}

// NewComparerUseCase creates a new instance of the usecase.
func NewComparerUseCase(repo TransactionRepository) *ComparerUseCase {
	return &ComparerUseCase{repo: repo}
}

// Compare loads both sides and produces the three-category report. The only
// errors are propagated codec errors from either side; a report full of
// differences is still a successful comparison.
func (uc *ComparerUseCase) Compare(ctx context.Context, left, right Source) (*domain.CompareReport, error) {
	leftCollection, err := uc.repo.GetTransactions(ctx, left.Path, left.Format)
	if err != nil {
		return nil, fmt.Errorf("could not get left transactions: %w", err)
	}
	rightCollection, err := uc.repo.GetTransactions(ctx, right.Path, right.Format)
	if err != nil {
		return nil, fmt.Errorf("could not get right transactions: %w", err)
	}
	return buildReport(left.Path, right.Path, leftCollection, rightCollection), nil
}

// buildReport diffs two collections by transaction id. All three categories
// come out sorted by ascending id, so the report is reproducible regardless
// of input file order. The labels are presentation only: swapping sides
// swaps the missing lists and the per-field value columns, nothing else.
func buildReport(leftLabel, rightLabel string, left, right *domain.Collection) *domain.CompareReport {
	report := &domain.CompareReport{
		LeftSource:     leftLabel,
		RightSource:    rightLabel,
		MissingInRight: make([]uint64, 0),
		MissingInLeft:  make([]uint64, 0),
		Differing:      make([]domain.Difference, 0),
	}

	for _, id := range left.SortedIDs() {
		leftTx, _ := left.Get(id)
		rightTx, ok := right.Get(id)
		if !ok {
			report.MissingInRight = append(report.MissingInRight, id)
			continue
		}
		fields := leftTx.Diff(rightTx)
		if len(fields) == 0 {
			continue
		}
		diffs := make([]domain.FieldDiff, 0, len(fields))
		for _, name := range fields {
			diffs = append(diffs, domain.FieldDiff{
				Field: name,
				Left:  leftTx.FieldValue(name),
				Right: rightTx.FieldValue(name),
			})
		}
		report.Differing = append(report.Differing, domain.Difference{
			TransactionID: id,
			Fields:        diffs,
			Left:          leftTx,
			Right:         rightTx,
		})
	}

	for _, id := range right.SortedIDs() {
		if _, ok := left.Get(id); !ok {
			report.MissingInLeft = append(report.MissingInLeft, id)
		}
	}
	return report
}

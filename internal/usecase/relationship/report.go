package relationship

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

const MaxReportReasonLength = 1000

// CreateReport appends a report against accountID.
func (uc *RelationshipUseCase) CreateReport(ctx context.Context, accountID int, reason string) (*domain.Report, error) {
	reason = strings.TrimSpace(reason)
	switch n := utf8.RuneCountInString(reason); {
	case n == 0:
		return nil, domain.NewValidationError("reason", domain.CodeRequired, "reason is required")
	case n > MaxReportReasonLength:
		return nil, domain.NewValidationError("reason", domain.CodeTooLong,
			fmt.Sprintf("reason must be at most %d characters", MaxReportReasonLength))
	}
	if err := uc.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		AccountID:  accountID,
		Reason:     reason,
		ReportedAt: uc.now().UTC(),
	}
	if err := uc.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}
	uc.logger.InfoContext(ctx, "account reported", "account_id", accountID, "report_id", report.ID)
	return report, nil
}

func (uc *RelationshipUseCase) ListReports(ctx context.Context, accountID int, page Page) ([]*domain.Report, error) {
	page = page.normalize()
	reports, err := uc.reports.ListByAccount(ctx, accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (uc *RelationshipUseCase) GetReport(ctx context.Context, reportID int) (*domain.Report, error) {
	return uc.reports.GetByID(ctx, reportID)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Siva2k2k/ES-TM-sub001/internal/metrics"
	"github.com/Siva2k2k/ES-TM-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BulkVerifyTimesheets freezes each timesheet independently. One item's
// failure is recorded and the loop moves on.
func (s *approvalService) BulkVerifyTimesheets(ctx context.Context, timesheetIDs []string, verifierID string) (BatchResult, error) {
	actorID, err := parseID("verifier_id", verifierID)
	if err != nil {
		return BatchResult{}, err
	}
	return s.runBatch(ctx, "bulk_verify", timesheetIDs, func() map[string]interface{} {
		return model.VerificationFields(actorID, s.now())
	}), nil
}

// BulkBillTimesheets marks each timesheet billed independently.
func (s *approvalService) BulkBillTimesheets(ctx context.Context, timesheetIDs []string, billerID string) (BatchResult, error) {
	if _, err := parseID("biller_id", billerID); err != nil {
		return BatchResult{}, err
	}
	return s.runBatch(ctx, "bulk_bill", timesheetIDs, model.BillingFields), nil
}

// runBatch never shares a transaction across items.
func (s *approvalService) runBatch(ctx context.Context, operation string, rawIDs []string, fields func() map[string]interface{}) BatchResult {
	result := BatchResult{Failures: []BatchFailure{}}

	for _, raw := range rawIDs {
		if err := s.updateOne(ctx, raw, fields()); err != nil {
			code := ErrorCode(err)
			s.log.Error().Err(err).
				Str("operation", operation).
				Str("timesheet_id", raw).
				Str("code", code).
				Msg("batch item failed")
			result.FailedCount++
			result.Failures = append(result.Failures, BatchFailure{
				TimesheetID: raw,
				Code:        code,
				Reason:      err.Error(),
			})
			continue
		}
		result.ProcessedCount++
	}

	metrics.ObserveBatch(operation, result.ProcessedCount, result.FailedCount)
	s.log.Info().
		Str("operation", operation).
		Int("processed_count", result.ProcessedCount).
		Int("failed_count", result.FailedCount).
		Msg("batch finished")
	return result
}

func (s *approvalService) updateOne(ctx context.Context, raw string, fields map[string]interface{}) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return validationErr("invalid timesheet_id %q", raw)
	}
	if err := s.timesheetRepo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("timesheet not found: %w", ErrNotFound)
		}
		return storageErr("update timesheet", err)
	}
	return nil
}

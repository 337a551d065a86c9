package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"onetask-api/internal/docstore"
	"onetask-api/internal/models"
)

// Preview-code failure codes returned to clients.
const (
	CodeInvalid     = "INVALID_CODE"
	CodeAlreadyUsed = "CODE_ALREADY_USED"
)

// CodeValidationResult is the outcome of a redemption attempt. Business
// failures (unknown or spent code) are results, not errors.
type CodeValidationResult struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

// PreviewCodeStats summarizes code usage for the admin surface.
type PreviewCodeStats struct {
	TotalCodes     int               `json:"total_codes"`
	UsedCodes      int               `json:"used_codes"`
	RemainingCodes int               `json:"remaining_codes"`
	UsageRate      float64           `json:"usage_rate"`
	RecentUsage    []CodeUsageRecord `json:"recent_usage"`
}

type CodeUsageRecord struct {
	Code   string     `json:"code"`
	UsedBy *string    `json:"used_by"`
	UsedAt *time.Time `json:"used_at"`
}

// BulkLoadResult reports a bulk create that continues past individual
// failures.
type BulkLoadResult struct {
	CreatedCount int      `json:"created_count"`
	Errors       []string `json:"errors"`
}

// ResetResult reports how many codes a reset touched.
type ResetResult struct {
	Success       bool   `json:"success"`
	AffectedCount int    `json:"affected_count"`
	Message       string `json:"message"`
}

// PreviewCodeRepository manages single-use invitation codes, keyed and
// partitioned by the normalized code string itself.
type PreviewCodeRepository struct {
	store  docstore.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewPreviewCodeRepository(p Params) *PreviewCodeRepository {
	return &PreviewCodeRepository{store: p.Store, logger: p.Logger, now: time.Now}
}

// Create stores a new unused code.
func (r *PreviewCodeRepository) Create(ctx context.Context, code string) (*models.PreviewCode, error) {
	preview := models.NewPreviewCode(code)
	now := r.now().UTC()
	preview.CreatedAt = now
	preview.UpdatedAt = now

	created, err := r.store.Create(ctx, docstore.CollectionPreviewCodes, preview.Code, preview.ToRecord())
	if err != nil {
		return nil, fmt.Errorf("failed to create preview code %s: %w", preview.Code, err)
	}
	return models.PreviewCodeFromRecord(created)
}

// Get looks a code up by its normalized string.
func (r *PreviewCodeRepository) Get(ctx context.Context, code string) (*models.PreviewCode, error) {
	normalized := models.NormalizePreviewCode(code)
	rec, err := r.store.Read(ctx, docstore.CollectionPreviewCodes, normalized, normalized)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read preview code: %w", err)
	}
	return models.PreviewCodeFromRecord(rec)
}

// ValidateAndUse redeems a code for a user: normalize, look up, reject
// unknown or spent codes, otherwise mark used and write back. The check
// and the write are separate store calls with no conditional update, so
// two concurrent redemptions of the same fresh code can both pass the
// is_used check; the original system carries the same race.
func (r *PreviewCodeRepository) ValidateAndUse(ctx context.Context, code, userID string) (CodeValidationResult, error) {
	normalized := models.NormalizePreviewCode(code)

	preview, err := r.Get(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CodeValidationResult{
				Valid:     false,
				Message:   "Invalid preview code. Please check your code and try again.",
				ErrorCode: CodeInvalid,
			}, nil
		}
		return CodeValidationResult{}, err
	}

	if preview.IsUsed {
		return CodeValidationResult{
			Valid:     false,
			Message:   "This preview code has already been used",
			ErrorCode: CodeAlreadyUsed,
		}, nil
	}

	now := r.now().UTC()
	preview.IsUsed = true
	preview.UsedByUserID = &userID
	preview.UsedAt = &now
	preview.UpdatedAt = now

	if _, err := r.store.Replace(ctx, docstore.CollectionPreviewCodes, preview.Code, preview.Code, preview.ToRecord()); err != nil {
		return CodeValidationResult{}, fmt.Errorf("failed to mark preview code used: %w", err)
	}

	r.logger.Info("preview code redeemed",
		zap.String("code", normalized), zap.String("user_id", userID))
	return CodeValidationResult{Valid: true, Message: "Preview code is valid"}, nil
}

// ListAll returns every code across partitions.
func (r *PreviewCodeRepository) ListAll(ctx context.Context) ([]*models.PreviewCode, error) {
	records, err := r.store.Query(ctx, docstore.CollectionPreviewCodes, docstore.Query{
		Filters: map[string]any{
			"document_type": string(models.DocumentTypePreviewCode),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query preview codes: %w", err)
	}

	codes := make([]*models.PreviewCode, 0, len(records))
	for _, rec := range records {
		code, err := models.PreviewCodeFromRecord(rec)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// Stats aggregates usage counts and the last ten redemptions.
func (r *PreviewCodeRepository) Stats(ctx context.Context) (PreviewCodeStats, error) {
	codes, err := r.ListAll(ctx)
	if err != nil {
		return PreviewCodeStats{}, err
	}

	var used []*models.PreviewCode
	for _, code := range codes {
		if code.IsUsed {
			used = append(used, code)
		}
	}
	sort.Slice(used, func(i, j int) bool {
		var ti, tj time.Time
		if used[i].UsedAt != nil {
			ti = *used[i].UsedAt
		}
		if used[j].UsedAt != nil {
			tj = *used[j].UsedAt
		}
		return ti.After(tj)
	})

	recent := make([]CodeUsageRecord, 0, 10)
	for i, code := range used {
		if i == 10 {
			break
		}
		recent = append(recent, CodeUsageRecord{
			Code:   code.Code,
			UsedBy: code.UsedByUserID,
			UsedAt: code.UsedAt,
		})
	}

	stats := PreviewCodeStats{
		TotalCodes:     len(codes),
		UsedCodes:      len(used),
		RemainingCodes: len(codes) - len(used),
		RecentUsage:    recent,
	}
	if stats.TotalCodes > 0 {
		rate := float64(stats.UsedCodes) / float64(stats.TotalCodes) * 100
		stats.UsageRate = math.Round(rate*100) / 100
	}
	return stats, nil
}

// BulkLoad creates many codes, continuing past per-item failures and
// reporting them.
func (r *PreviewCodeRepository) BulkLoad(ctx context.Context, codes []string) BulkLoadResult {
	result := BulkLoadResult{Errors: []string{}}
	for _, code := range codes {
		if _, err := r.Create(ctx, code); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to create code %s: %v", code, err))
			continue
		}
		result.CreatedCount++
	}
	if len(result.Errors) > 0 {
		r.logger.Warn("bulk load finished with errors",
			zap.Int("created", result.CreatedCount), zap.Int("errors", len(result.Errors)))
	}
	return result
}

// Reset either marks every used code unused again or deletes all codes,
// continuing past individual failures.
func (r *PreviewCodeRepository) Reset(ctx context.Context, resetType string) (ResetResult, error) {
	codes, err := r.ListAll(ctx)
	if err != nil {
		return ResetResult{Message: fmt.Sprintf("Reset failed: %v", err)}, err
	}

	affected := 0
	if resetType == "delete_all" {
		for _, code := range codes {
			if err := r.store.Delete(ctx, docstore.CollectionPreviewCodes, code.Code, code.Code); err != nil {
				r.logger.Error("failed to delete preview code",
					zap.String("code", code.Code), zap.Error(err))
				continue
			}
			affected++
		}
		return ResetResult{
			Success:       true,
			AffectedCount: affected,
			Message:       fmt.Sprintf("Deleted %d preview codes", affected),
		}, nil
	}

	for _, code := range codes {
		if !code.IsUsed {
			continue
		}
		code.IsUsed = false
		code.UsedByUserID = nil
		code.UsedAt = nil
		code.UpdatedAt = r.now().UTC()
		if _, err := r.store.Replace(ctx, docstore.CollectionPreviewCodes, code.Code, code.Code, code.ToRecord()); err != nil {
			r.logger.Error("failed to reset preview code",
				zap.String("code", code.Code), zap.Error(err))
			continue
		}
		affected++
	}
	return ResetResult{
		Success:       true,
		AffectedCount: affected,
		Message:       fmt.Sprintf("Reset %d preview codes to unused state", affected),
	}, nil
}

package transformer

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/validation"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
)

const (
	inventoryCreatedBy      = "ETL_INV"
	inventoryVarianceSuffix = "_VAR"

	movementTypeReceipt    = "RCV"
	movementTypeIssue      = "ISS"
	movementTypeTransfer   = "TRF"
	movementTypeAdjustment = "ADJ"
	movementTypeCount      = "CNT"
	movementTypeCostUpdate = "CST"

	costMethodStandard = "STD"
	costMethodAverage  = "AVG"

	sourceDocTypePO = "PO"
)

var inventoryMandatoryFields = []string{
	"source_doc_type", "source_doc_id", "source_line_id",
	"accounting_date", "segment_account", "quantity",
}

var movementTypeLabels = map[string]string{
	movementTypeReceipt:    "Receipt",
	movementTypeIssue:      "Issue",
	movementTypeTransfer:   "Transfer",
	movementTypeAdjustment: "Adjustment",
	movementTypeCount:      "Cycle Count",
	movementTypeCostUpdate: "Cost Update",
}

type inventoryTransformer struct {
	baseLandingTransformer
}

// Transform returns the movement record, followed by a variance record when
// the movement carries a non-zero variance.
func (t inventoryTransformer) Transform(ctx context.Context, batchID string, rec models.SourceRecord) []models.LandingRecord {
	mv := models.NewInventoryMovement(rec)
	id := recordIdentity{
		system:         models.SourceSystemInventory,
		docType:        mv.MovementType,
		docID:          mv.MovementID,
		lineID:         mv.MovementLineID,
		eventTimestamp: mv.MovementTimestamp,
		createdBy:      t.createdBy(),
	}

	return t.safeTransform(ctx, batchID, id, func() ([]models.LandingRecord, error) {
		main, err := t.transformMovement(ctx, batchID, id, mv)
		if err != nil {
			return nil, err
		}

		out := []models.LandingRecord{main}
		if variance, ok := t.createVarianceEntry(ctx, main, mv); ok {
			out = append(out, variance)
		}

		return out, nil
	})
}

func (t inventoryTransformer) transformMovement(
	ctx context.Context,
	batchID string,
	id recordIdentity,
	mv models.InventoryMovement,
) (out models.LandingRecord, err error) {
	accountingDate, err := parseOptionalDate(mv.MovementTimestamp)
	if err != nil {
		return out, err
	}

	quantity, err := common.RequireAmount("quantity", mv.Quantity)
	if err != nil {
		return out, err
	}

	unitCost, err := unitCost(mv)
	if err != nil {
		return out, err
	}

	out = t.newRecord(batchID, id)

	out.ExchangeRate, err = t.exchangeRate(ctx, mv.ExchangeRate, mv.CurrencyCode, accountingDate)
	if err != nil {
		return out, err
	}

	movementType := common.UpperTrim(mv.MovementType)
	movementAmount := quantity.Mul(unitCost).Abs()

	out.AccountingDate = accountingDate
	out.PeriodName = common.FormatPeriodName(accountingDate)
	out.JournalCategory = inventoryJournalCategory(
		movementType,
		t.tables.JournalCategory(config.SourceSystemInventory, movementType, config.DefaultJournalCategoryInventory),
	)
	out.CurrencyCode = mv.CurrencyCode

	out.SegmentAccount = t.tables.Account(config.SourceSystemInventory, movementType, false, config.DefaultInventoryAccount)
	out.SegmentDepartment = t.inventoryDepartment(ctx, mv.InventoryOrg)
	out.SegmentProduct = common.UpperTrim(mv.ItemCode)
	out.SegmentProject = mv.ProjectCode
	out.SegmentCustom1 = mv.InventoryOrg
	out.SegmentCustom2 = mv.SubinventoryCode

	if common.UpperTrim(mv.SourceDocType) == sourceDocTypePO {
		out.SupplierID = "SUPP_" + common.TruncateRunes(mv.SourceDocID, 10)
		out.POID = mv.SourceDocID
	}
	if movementType == movementTypeReceipt {
		out.ReceiptID = mv.MovementID
	}
	out.ProjectID = mv.ProjectCode

	out.Quantity = decimal.NewNullDecimal(quantity)
	out.UOMCode = mv.UOMCode

	out.Description = t.movementDescription(ctx, movementType, mv)
	out.Reference1 = common.CleanString(ctx, mv.SourceDocID, config.ReferenceMaxLength)
	out.Reference2 = common.CleanString(ctx, mv.WIPJobID, config.ReferenceMaxLength)
	out.Reference3 = common.CleanString(ctx, mv.LotNo, config.ReferenceMaxLength)
	out.Reference4 = common.CleanString(ctx, mv.SerialNo, config.ReferenceMaxLength)
	out.Reference5 = common.CleanString(ctx, mv.ReasonCode, config.ReferenceMaxLength)

	reason := strings.ToUpper(mv.ReasonCode)
	out.ReversalFlag = strings.Contains(reason, "REVERSAL") || strings.Contains(reason, "CANCEL")

	switch movementType {
	case movementTypeReceipt:
		postDebit(&out, movementAmount)
		out.SegmentAccount = config.InventoryAssetAccount
	case movementTypeIssue:
		postDebit(&out, movementAmount)
		out.SegmentAccount = config.CostOfGoodsSoldAccount
	case movementTypeAdjustment, movementTypeCount:
		postDebit(&out, movementAmount)
		if quantity.IsNegative() {
			out.SegmentAccount = config.InventoryVarianceAccount
		} else {
			out.SegmentAccount = config.InventoryAssetAccount
		}
	case movementTypeTransfer:
		postDebit(&out, movementAmount)
	case movementTypeCostUpdate:
		if movementAmount.IsPositive() {
			postDebit(&out, movementAmount)
			out.SegmentAccount = config.DefaultInventoryAccount
		} else {
			postNothing(&out)
		}
	default:
		postNothing(&out)
	}

	violations := validation.ValidateMandatoryFields(out, inventoryMandatoryFields...)
	if quantity.IsZero() {
		violations = append(violations, msgQuantityZero)
	}
	violations = append(violations, amountViolations(out)...)
	finalize(&out, violations)

	return out, nil
}

// createVarianceEntry books a cost variance: unfavorable (positive) on the
// debit side, favorable (negative) on the credit side.
func (t inventoryTransformer) createVarianceEntry(ctx context.Context, main models.LandingRecord, mv models.InventoryMovement) (models.LandingRecord, bool) {
	variance := common.ValidateAmount(mv.VarianceAmount)
	if !variance.Valid || variance.Decimal.IsZero() {
		return models.LandingRecord{}, false
	}

	out := main
	out.SourceLineID = mv.MovementLineID + inventoryVarianceSuffix
	out.SegmentAccount = config.InventoryVarianceAccount
	out.JournalCategory = config.JournalCategoryVariance
	out.Description = common.CleanString(ctx, "Inventory Variance - "+main.Description, config.DescriptionMaxLength)

	if variance.Decimal.IsPositive() {
		postDebit(&out, variance.Decimal)
	} else {
		postCredit(&out, variance.Decimal.Abs())
	}

	return out, true
}

func unitCost(mv models.InventoryMovement) (decimal.Decimal, error) {
	switch common.UpperTrim(mv.CostMethod) {
	case costMethodStandard:
		return common.RequireAmount("std_cost", mv.StdCost)
	case costMethodAverage:
		return common.RequireAmount("avg_cost", mv.AvgCost)
	default:
		return common.RequireAmount("unit_cost", mv.UnitCost)
	}
}

func inventoryJournalCategory(movementType, mapped string) string {
	switch movementType {
	case movementTypeReceipt:
		return config.DefaultJournalCategoryInventory
	case movementTypeIssue:
		return config.JournalCategoryCost
	case movementTypeAdjustment, movementTypeCount:
		return config.JournalCategoryAdjustment
	case movementTypeTransfer:
		return config.JournalCategoryTransfer
	default:
		return mapped
	}
}

func (t inventoryTransformer) inventoryDepartment(ctx context.Context, org string) string {
	if org == "" {
		return ""
	}
	if dept, ok := t.masterData.GetInventoryOrgDepartment(ctx, org); ok {
		return dept
	}
	return "DEPT_" + org
}

func (t inventoryTransformer) movementDescription(ctx context.Context, movementType string, mv models.InventoryMovement) string {
	label, ok := movementTypeLabels[movementType]
	if !ok {
		label = mv.MovementType
	}

	return common.CleanString(ctx, common.JoinNonEmpty(descriptionSeparator,
		label,
		common.TruncateRunes(mv.ItemDescription, 50),
		labelled("Location: ", mv.LocationCode),
	), config.DescriptionMaxLength)
}

func (t inventoryTransformer) createdBy() string {
	return firstNonEmpty(t.config.Inventory.CreatedBy, inventoryCreatedBy)
}

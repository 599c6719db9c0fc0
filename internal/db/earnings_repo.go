package db

import (
	"context"
	"time"

	"github.com/golang-sql/civil"

	"holocene/internal/types"
)

// EarningsRepository covers earnings details, previews and the street event
// calendar.
type EarningsRepository struct {
	exec TxExecutor
}

// NewEarningsRepository creates a repository over the Holocene executor.
func NewEarningsRepository(exec TxExecutor) *EarningsRepository {
	return &EarningsRepository{exec: exec}
}

// GetEarningsDetails returns earnings details for a symbol and analyst.
func (r *EarningsRepository) GetEarningsDetails(ctx context.Context, symbol, username string) ([]types.EarningsDetails, error) {
	params := Params{}.
		Add("Symbol", symbol).
		Add("Username", username)
	return queryList[types.EarningsDetails](ctx, r.exec, "GetEarningsDetails", Proc("research.GetEarningsDetails"), params)
}

// GetEarningsPreviews looks previews up by id when previewID is non-zero and
// by symbol and analyst otherwise.
func (r *EarningsRepository) GetEarningsPreviews(ctx context.Context, symbol, username string, previewID int64) ([]types.EarningsPreview, error) {
	var params Params
	if previewID != 0 {
		params = params.Add("EarningsPreviewId", previewID)
	} else {
		params = params.Add("Symbol", symbol).Add("Username", username)
	}
	return queryList[types.EarningsPreview](ctx, r.exec, "GetEarningsPreviews", Proc("research.GetEarningsPreviews"), params)
}

// GetEarningsPreviewMetrics returns the metric rows of one preview.
func (r *EarningsRepository) GetEarningsPreviewMetrics(ctx context.Context, previewID int64) ([]types.PreviewMetric, error) {
	params := Params{}.AddIfNotZero("EarningsPreviewId", previewID)
	return queryList[types.PreviewMetric](ctx, r.exec, "GetEarningsPreviewMetrics",
		Proc("research.GetEarningsPreviewMetrics"), params)
}

// SubmitEarningsPreview writes the preview and its key metrics in one
// transaction and returns the preview id.
func (r *EarningsRepository) SubmitEarningsPreview(ctx context.Context, sub types.EarningsPreviewSubmission) (int64, error) {
	const op = "SubmitEarningsPreview"
	p := sub.Preview

	var previewID int64
	err := r.exec.InTx(ctx, func(tx Executor) error {
		id := p.EarningsPreviewID
		params := Params{}.
			Add("Symbol", p.Symbol).
			Add("Username", sub.Username).
			Add("Status", p.Status).
			Add("Filename", sub.Filename).
			Add("EarningsDate", sqlDate(p.EarningsDate)).
			Add("EarningsTime", p.EarningsTime).
			Add("CurrentSEMVDesk", p.CurrentSEMVDesk).
			Add("CurrentSEMVFund", p.CurrentSEMVFund).
			Add("RecommendedSEMVDesk", p.RecommendedSEMVDesk).
			Add("RecommendationDesk", p.RecommendationDesk).
			Add("EVLive", sub.ExpectedValue.Price).
			Add("ERLive", sub.ExpectedValue.Upside).
			Add("ThesisTypeId", p.ThesisTypeID).
			Add("ThesisNotes", p.ThesisNotes).
			Add("ConvictionLevelId", p.ConvictionLevelID).
			Add("MgmtInteractionId", p.MgmtInteractionID).
			Add("NumbersExpectationsId", p.NumbersExpectationsID).
			Add("BigPictureNotes", p.BigPictureNotes).
			Add("PrintOutlookNotes", p.PrintOutlookNotes).
			Add("ConsensusId", p.ConsensusID).
			Add("ShortInterestId", p.ShortInterestID).
			Add("KeyRisksNotes", p.KeyRisksNotes).
			Add("ExitPositionNotes", p.ExitPositionNotes).
			Add("PctVolMoveIfWrong", p.PctVolMoveIfWrong).
			Add("OptionsImpliedVol", p.OptionsImpliedVol).
			Add("MgmtCheckId", p.MgmtCheckID).
			Add("MgmtCheckNotes", p.MgmtCheckNotes).
			Add("DataCheckId", p.DataCheckID).
			Add("DataCheckNotes", p.DataCheckNotes).
			Add("ExpertCheckId", p.ExpertCheckID).
			Add("ExpertCheckNotes", p.ExpertCheckNotes).
			Add("CompsReadThruCheckId", p.CompsReadThruCheckID).
			Add("CompsReadThruCheckNotes", p.CompsReadThruCheckNotes).
			Add("ReviewTranscriptsId", p.ReviewTranscriptsID).
			Add("ReviewTranscriptsNotes", p.ReviewTranscriptsNotes).
			Add("ReviewSellSideId", p.ReviewSellSideID).
			Add("ReviewSellSideNotes", p.ReviewSellSideNotes).
			Add("TeamReviewId", p.TeamReviewID).
			Add("TeamReviewNotes", p.TeamReviewNotes).
			Add("SetupPostEarningsCallId", p.SetupPostEarningsCallID).
			Add("SetupPostEarningsCallNotes", p.SetupPostEarningsCallNotes).
			Add("AdditionalNotes", sub.AdditionalNotes).
			Add("PostTradeNotes", p.PostTradeNotes).
			InOut("EarningsPreviewId", &id).
			AddIfNotZero("ExpectedValueId", sub.ExpectedValue.ExpectedValueID).
			AddIfNotZero("ExpectedValueIdFTE", sub.ExpectedValueFTE.ExpectedValueID)

		var err error
		previewID, err = scalarID(ctx, tx, op, Proc("research.SubmitEarningsPreview"), params, &id)
		if err != nil {
			return err
		}
		if previewID == 0 {
			return types.NewAppError(types.ErrCodeInternalDB, "earnings preview was not assigned an id", nil)
		}

		for _, m := range sub.Metrics {
			mp := Params{}.
				Add("EarningsPreviewId", previewID).
				Add("KeyMetric", m.KeyMetric).
				Add("KeyMetricOther", m.KeyMetricOther).
				Add("HoaEst", m.HoaEst).
				Add("ConsensusEst", m.ConsensusEst)
			if _, err := execCmd(ctx, tx, op, Proc("research.SubmitEarningsPreviewMetric"), mp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, opError(op, err)
	}
	return previewID, nil
}

// SnoozePreview defers the preview reminder for a symbol's upcoming print.
func (r *EarningsRepository) SnoozePreview(ctx context.Context, symbol, earningsDate, username, notes string) error {
	params := Params{}.
		Add("Symbol", symbol).
		Add("EarningsDate", earningsDate).
		Add("Username", username).
		Add("Notes", notes)
	_, err := execCmd(ctx, r.exec, "SnoozePreview", Proc("research.SnoozePreview"), params)
	return err
}

// GetStreetEvents returns street events of the given type.
func (r *EarningsRepository) GetStreetEvents(ctx context.Context, eventTypeCode string) ([]types.StreetEvent, error) {
	params := Params{}.Add("EventTypeCode", eventTypeCode)
	return queryList[types.StreetEvent](ctx, r.exec, "GetStreetEvents", Proc("core.GetStreetEvents"), params)
}

// sqlDate sends a date without a time component, or NULL.
func sqlDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return civil.DateOf(*t)
}

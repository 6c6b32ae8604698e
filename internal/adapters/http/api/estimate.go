package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/okian/taxifare/internal/domain/estimate"
	"github.com/okian/taxifare/internal/domain/fare"
)

// estimateResponse is the body of a successful POST /api/v1/estimate.
type estimateResponse struct {
	ID string `json:"id"`
	estimate.Result
	PointText string       `json:"point_text"`
	RangeText string       `json:"range_text"`
	Request   fare.Request `json:"request"`
}

// EstimateHandler serves fare estimates as JSON.
type EstimateHandler struct {
	est          Estimator
	maxBodyBytes int64
}

// NewEstimateHandler creates a new estimate handler.
func NewEstimateHandler(est Estimator, maxBodyBytes int64) *EstimateHandler {
	return &EstimateHandler{est: est, maxBodyBytes: maxBodyBytes}
}

// HandlePostEstimate handles POST /api/v1/estimate. Fields missing from the
// body take the form defaults; numeric fields are clamped to the form ranges.
func (h *EstimateHandler) HandlePostEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_estimate"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}

	req := fare.DefaultRequest()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	req = req.Clamp()

	res, err := h.est.Estimate(r.Context(), req)
	if err != nil {
		status, code := StatusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, estimateResponse{
		ID:        uuid.NewString(),
		Result:    res,
		PointText: res.PointText(),
		RangeText: res.RangeText(),
		Request:   req,
	})
}

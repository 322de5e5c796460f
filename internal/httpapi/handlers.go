package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
	"github.com/DoyleJ11/crew-draft-backend/internal/types"
)

const maxRequestBytes = 1 << 20

// DraftService is what the HTTP and websocket layers need from a draft
// runner. *draft.Service implements it.
type DraftService interface {
	Run(ctx context.Context, req types.DraftRequest) (*types.DraftResponse, error)
	RunStream(ctx context.Context, req types.DraftRequest, emit func(types.PickView) error) (*types.DraftResponse, error)
	ListRoles(ctx context.Context) ([]types.RoleView, error)
	ListSources(ctx context.Context) ([]types.SourceView, error)
}

func CreateDraft(svc DraftService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DraftRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, logger, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed draft request"))
			return
		}

		resp, err := svc.Run(r.Context(), req)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func ListRoles(svc DraftService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := svc.ListRoles(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, roles)
	}
}

func ListSources(svc DraftService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sources, err := svc.ListSources(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, sources)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("code", code.String()), zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse(err))
}

// ErrorResponse is the wire form of err.
func ErrorResponse(err error) types.ErrorResponse {
	return types.ErrorResponse{Error: types.ErrorBody{
		Code:    errors.GetCode(err).String(),
		Message: errors.GetMessage(err),
	}}
}

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	catalogmock "github.com/DoyleJ11/crew-draft-backend/internal/catalog/mock"
	"github.com/DoyleJ11/crew-draft-backend/internal/draft"
	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
	"github.com/DoyleJ11/crew-draft-backend/internal/types"
)

type fakeService struct {
	resp    *types.DraftResponse
	err     error
	roles   []types.RoleView
	sources []types.SourceView
	got     types.DraftRequest
}

func (f *fakeService) Run(ctx context.Context, req types.DraftRequest) (*types.DraftResponse, error) {
	f.got = req
	return f.resp, f.err
}

func (f *fakeService) RunStream(ctx context.Context, req types.DraftRequest, emit func(types.PickView) error) (*types.DraftResponse, error) {
	return f.Run(ctx, req)
}

func (f *fakeService) ListRoles(ctx context.Context) ([]types.RoleView, error) {
	return f.roles, f.err
}

func (f *fakeService) ListSources(ctx context.Context) ([]types.SourceView, error) {
	return f.sources, f.err
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorBody {
	t.Helper()
	var body types.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestCreateDraft(t *testing.T) {
	svc := &fakeService{resp: &types.DraftResponse{
		DraftID: "XYZ",
		Teams:   []types.TeamView{{PlayerName: "Mal", Crew: []types.CrewView{}}},
	}}
	h := SetupRoutes(svc, nil)

	rec := do(t, h, http.MethodPost, "/drafts", `{"num_players":1,"num_crew_needed":3,"required_role_ids":[2,2],"player_names":["Mal"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp types.DraftResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "XYZ", resp.DraftID)

	require.NotNil(t, svc.got.NumCrewNeeded)
	assert.Equal(t, 3, *svc.got.NumCrewNeeded)
	assert.Equal(t, []int{2, 2}, svc.got.RequiredRoleIDs)
}

func TestCreateDraft_Errors(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed body",
			body:       `{"num_players":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "unknown field",
			body:       `{"num_teams":2}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "invalid config",
			body:       `{}`,
			svcErr:     errors.InvalidArgument("num players must be at least 1"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "catalog unavailable",
			body:       `{}`,
			svcErr:     errors.Unavailable("catalog down"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "UNAVAILABLE",
		},
		{
			name:       "catalog timeout",
			body:       `{}`,
			svcErr:     errors.New(errors.CodeDeadlineExceeded, "catalog timed out"),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "DEADLINE_EXCEEDED",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := SetupRoutes(&fakeService{err: tc.svcErr}, nil)
			rec := do(t, h, http.MethodPost, "/drafts", tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestCreateDraft_RejectsOversizedRequests(t *testing.T) {
	// No catalog calls are expected: bounds are checked first.
	gw := catalogmock.NewMockGateway(gomock.NewController(t))
	svc, err := draft.NewService(&draft.Config{Gateway: gw})
	require.NoError(t, err)
	h := SetupRoutes(svc, nil)

	cases := []struct {
		name string
		body string
	}{
		{name: "num players", body: `{"num_players":1099511627776}`},
		{name: "num crew needed", body: `{"num_crew_needed":2000000}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/drafts", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_ARGUMENT", decodeError(t, rec).Code)
		})
	}
}

func TestListEndpoints(t *testing.T) {
	svc := &fakeService{
		roles:   []types.RoleView{{ID: 1, Name: "Pilot"}},
		sources: []types.SourceView{{ID: 1, Name: "Core", Exclusions: []int{}}},
	}
	h := SetupRoutes(svc, nil)

	rec := do(t, h, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Pilot"}]`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/sources", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"source_id":1,"source_name":"Core","exclusions":[]}]`, rec.Body.String())
}

func TestListRoles_Unavailable(t *testing.T) {
	h := SetupRoutes(&fakeService{err: errors.Unavailable("down")}, nil)
	rec := do(t, h, http.MethodGet, "/roles", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := do(t, SetupRoutes(&fakeService{}, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
)

const crewJSON = `[
	{"id":"1","crew_name":"Malcolm Reynolds","leader":"1","source_id":"1","roles":[{"id":1,"name":"Captain"}],"exclusions":"4,x"},
	{"id":2,"crew_name":"Zoe Washburne","leader":0,"source_id":1,"roles":[{"id":"2","name":"Soldier"}],"exclusions":null},
	{"id":4,"crew_name":"Adelai Niska","leader":true,"source_id":2,"roles":[],"exclusions":[1]}
]`

func newTestGateway(t *testing.T, handler http.HandlerFunc) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := NewHTTPGateway(HTTPConfig{BaseURL: srv.URL + "/api/", Timeout: time.Second})
	require.NoError(t, err)
	return gw
}

func TestHTTPGateway_FetchCrew(t *testing.T) {
	var gotPath, gotQuery string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("sources")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(crewJSON))
	})

	crew, err := gw.FetchCrew(context.Background(), []int{1, 2})
	require.NoError(t, err)

	assert.Equal(t, "/api/crew/", gotPath)
	assert.Equal(t, "1,2", gotQuery)
	require.Len(t, crew, 3)

	assert.EqualValues(t, 1, crew[0].ID)
	assert.True(t, bool(crew[0].Leader))
	assert.Equal(t, []int{4}, crew[0].Exclusions.IDs)
	assert.Equal(t, []string{"x"}, crew[0].Exclusions.Dropped)
	assert.Equal(t, 2, crew[1].Roles[0].ID)
	assert.False(t, bool(crew[1].Leader))
	assert.Equal(t, []int{1}, crew[2].Exclusions.IDs)
}

func TestHTTPGateway_NoSourceFilter(t *testing.T) {
	var rawQuery string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":1,"name":"Pilot"}]`))
	})

	roles, err := gw.FetchRoles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rawQuery)
	assert.Equal(t, "Pilot", roles[0].Name)
}

func TestHTTPGateway_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		code    errors.Code
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Database error"}`))
			},
			code: errors.CodeUnavailable,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>oops</html>`))
			},
			code: errors.CodeUnavailable,
		},
		{
			name: "slow upstream",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
			},
			code: errors.CodeDeadlineExceeded,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newTestGateway(t, tc.handler)
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			_, err := gw.FetchShips(ctx, []int{1})
			require.Error(t, err)
			assert.Equal(t, tc.code, errors.GetCode(err))
			assert.True(t, errors.IsUnavailable(err))
		})
	}
}

func TestNewHTTPGateway_RequiresBaseURL(t *testing.T) {
	_, err := NewHTTPGateway(HTTPConfig{BaseURL: "  "})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

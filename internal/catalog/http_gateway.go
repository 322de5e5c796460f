package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DoyleJ11/crew-draft-backend/internal/entity"
	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
)

const maxBodyBytes = 8 << 20

type HTTPConfig struct {
	BaseURL string
	// Timeout bounds each request. Zero leaves it to the caller's context.
	Timeout time.Duration
	Client  *http.Client
}

// HTTPGateway talks to the catalog's JSON API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(cfg HTTPConfig) (*HTTPGateway, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.InvalidArgument("catalog base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid catalog base url")
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPGateway{baseURL: base, client: client}, nil
}

func (g *HTTPGateway) FetchCrew(ctx context.Context, sourceIDs []int) ([]entity.CrewRecord, error) {
	var out []entity.CrewRecord
	if err := g.get(ctx, "crew", sourceIDs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *HTTPGateway) FetchShips(ctx context.Context, sourceIDs []int) ([]entity.ShipRecord, error) {
	var out []entity.ShipRecord
	if err := g.get(ctx, "ships", sourceIDs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *HTTPGateway) FetchSources(ctx context.Context) ([]entity.SourceRecord, error) {
	var out []entity.SourceRecord
	if err := g.get(ctx, "sources", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *HTTPGateway) FetchRoles(ctx context.Context) ([]entity.Role, error) {
	var out []entity.Role
	if err := g.get(ctx, "roles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get fetches {base}/{resource}/ and decodes the JSON array into dst. Every
// failure is reported as unavailable so the draft never starts on a partial
// catalog.
func (g *HTTPGateway) get(ctx context.Context, resource string, sourceIDs []int, dst any) error {
	endpoint := fmt.Sprintf("%s/%s/", g.baseURL, resource)
	if len(sourceIDs) > 0 {
		endpoint += "?sources=" + joinIDs(sourceIDs)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "build %s request", resource)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return unavailable(ctx, err, resource)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Unavailablef("catalog %s returned status %d", resource, resp.StatusCode).
			WithMeta("resource", resource).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return unavailable(ctx, err, resource)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "malformed catalog %s response", resource).
			WithMeta("resource", resource)
	}
	return nil
}

func unavailable(ctx context.Context, err error, resource string) error {
	code := errors.CodeUnavailable
	if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
		code = errors.CodeDeadlineExceeded
	}
	return errors.WrapWithCodef(err, code, "fetch catalog %s", resource).WithMeta("resource", resource)
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return stderrors.As(err, &te) && te.Timeout()
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

var _ Gateway = (*HTTPGateway)(nil)

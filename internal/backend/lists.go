package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/normalize"
)

// List fetches one page of a list screen. A body of unknown shape still
// yields an empty page, together with an error wrapping
// normalize.ErrMalformedResponse.
func (c *Client) List(ctx context.Context, q listquery.Query) (models.Page, error) {
	spec, ok := listquery.Lookup(q.Screen)
	if !ok {
		return models.EmptyPage(), fmt.Errorf("%w: %s", listquery.ErrUnknownScreen, q.Screen)
	}
	body, err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     spec.Path,
		endpoint: "list_" + string(q.Screen),
		query:    q.Params(),
	})
	if err != nil {
		return models.EmptyPage(), err
	}
	page, err := normalize.Page(body, spec.Collection)
	if err != nil {
		return page, fmt.Errorf("list %s: %w", q.Screen, err)
	}
	return page, nil
}

// Settings fetches the platform settings. A payload without a maxreward block
// returns zero settings (rate 1) and an error wrapping
// normalize.ErrMalformedResponse.
func (c *Client) Settings(ctx context.Context) (models.MaxRewardSettings, error) {
	body, err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/admin/settings",
		endpoint: "settings",
	})
	if err != nil {
		return models.MaxRewardSettings{}, err
	}
	s, err := normalize.Settings(body)
	if err != nil {
		return s, fmt.Errorf("settings: %w", err)
	}
	return s, nil
}

// FindMember looks a member up by phone number or member id.
func (c *Client) FindMember(ctx context.Context, term string) (models.Member, error) {
	body, err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/admin/members/lookup",
		endpoint: "member_lookup",
		query:    url.Values{"search": {strings.TrimSpace(term)}},
	})
	if err != nil {
		return models.Member{}, err
	}
	m := gjson.GetBytes(body, "data.member")
	if !m.Exists() {
		m = gjson.GetBytes(body, "data")
	}
	if !m.IsObject() || m.Get("id").String() == "" {
		return models.Member{}, &Error{Status: http.StatusNotFound, Message: "Member not found"}
	}
	points, err := decimal.NewFromString(m.Get("available_points").String())
	if err != nil {
		points = decimal.Zero
	}
	return models.Member{
		ID:              m.Get("id").String(),
		Name:            m.Get("name").String(),
		Phone:           m.Get("phone").String(),
		AvailablePoints: points,
	}, nil
}

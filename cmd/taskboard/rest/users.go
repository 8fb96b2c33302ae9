package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
)

func (c *client) ListUsers(ctx context.Context, name string) ([]apiusers.Detail, error) {
	query := url.Values{}
	if name = strings.TrimSpace(name); name != "" {
		query.Set("name", name)
	}
	resp, err := c.request(ctx, http.MethodGet, c.apipath("users"), query, nil)
	if err != nil {
		return nil, err
	}

	ret := []apiusers.Detail{}
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Range: map[StatusCodeRange]string{
			Status4xx: "cannot list users",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *client) GetUser(ctx context.Context, id int64) (apiusers.Detail, error) {
	resp, err := c.request(ctx, http.MethodGet, c.apipath("users", strconv.FormatInt(id, 10)), nil, nil)
	if err != nil {
		return apiusers.Detail{}, err
	}

	var ret apiusers.Detail
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Code: map[int]string{http.StatusNotFound: fmt.Sprintf("user %d is not found", id)},
		Range: map[StatusCodeRange]string{
			Status4xx: fmt.Sprintf("cannot get user %d", id),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return apiusers.Detail{}, err
	}
	return ret, nil
}

func (c *client) CreateUser(ctx context.Context, spec apiusers.Spec) (apiusers.Detail, error) {
	resp, err := c.request(ctx, http.MethodPost, c.apipath("users"), nil, spec)
	if err != nil {
		return apiusers.Detail{}, err
	}

	var ret apiusers.Detail
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Range: map[StatusCodeRange]string{
			Status4xx: "user is not created",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return apiusers.Detail{}, err
	}
	return ret, nil
}

func (c *client) UpdateUser(ctx context.Context, id int64, spec apiusers.Spec) (apiusers.Detail, error) {
	resp, err := c.request(ctx, http.MethodPut, c.apipath("users", strconv.FormatInt(id, 10)), nil, spec)
	if err != nil {
		return apiusers.Detail{}, err
	}

	var ret apiusers.Detail
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Code: map[int]string{http.StatusNotFound: fmt.Sprintf("user %d is not found", id)},
		Range: map[StatusCodeRange]string{
			Status4xx: fmt.Sprintf("user %d is not updated", id),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return apiusers.Detail{}, err
	}
	return ret, nil
}

func (c *client) DeleteUser(ctx context.Context, id int64) error {
	resp, err := c.request(ctx, http.MethodDelete, c.apipath("users", strconv.FormatInt(id, 10)), nil, nil)
	if err != nil {
		return err
	}

	return unmarshalResponseDiscardingPayload(resp, MessageFor{
		Code: map[int]string{
			http.StatusNotFound: fmt.Sprintf("user %d is not found", id),
			http.StatusConflict: fmt.Sprintf("user %d has tasks", id),
		},
		Range: map[StatusCodeRange]string{
			Status4xx: fmt.Sprintf("user %d is not deleted", id),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	})
}

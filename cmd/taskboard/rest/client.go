// Package rest is the client of the taskboard API.
package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	kprof "github.com/taskboard/taskboard/cmd/taskboard/config/profiles"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/utils"
)

type Client interface {
	// ListUsers returns users. When name is not empty, only users
	// whose first or last name contains it (ignoring case) are returned.
	ListUsers(ctx context.Context, name string) ([]apiusers.Detail, error)

	GetUser(ctx context.Context, id int64) (apiusers.Detail, error)

	CreateUser(ctx context.Context, spec apiusers.Spec) (apiusers.Detail, error)

	// UpdateUser replaces the user with id.
	UpdateUser(ctx context.Context, id int64, spec apiusers.Spec) (apiusers.Detail, error)

	// DeleteUser fails for users who create or are assigned to tasks.
	DeleteUser(ctx context.Context, id int64) error

	ListTasks(ctx context.Context) ([]apitasks.Detail, error)

	GetTask(ctx context.Context, id int64) (apitasks.Detail, error)

	CreateTask(ctx context.Context, spec apitasks.Spec) (apitasks.Detail, error)

	// UpdateTask changes fields of the task which are given in change.
	UpdateTask(ctx context.Context, id int64, change apitasks.Change) (apitasks.Detail, error)

	// UpdateTaskStatus moves the task to status, like "IN_PROGRESS".
	UpdateTaskStatus(ctx context.Context, id int64, status string) (apitasks.Detail, error)

	DeleteTask(ctx context.Context, id int64) error

	// TasksOfUser returns tasks assigned to the user.
	TasksOfUser(ctx context.Context, userId int64) ([]apitasks.Detail, error)

	// SearchTasks returns tasks having tag.
	//
	// When exact is false, tags containing tag (ignoring case) also match.
	SearchTasks(ctx context.Context, tag string, exact bool) ([]apitasks.Detail, error)

	Stats(ctx context.Context) (apitasks.Stats, error)
}

type client struct {
	httpclient *http.Client
	api        string
}

// NewClient creates a client of the API at prof.ApiRoot.
//
// It returns ErrProfileInvalid when prof is invalid.
func NewClient(prof *kprof.Profile) (Client, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}
	httpclient := new(http.Client)

	if prof.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc
	}

	return NewClientWith(prof.ApiRoot, httpclient), nil
}

// NewClientWith creates a client of the API at apiRoot, sending requests with hc.
func NewClientWith(apiRoot string, hc *http.Client) Client {
	return &client{
		httpclient: hc,
		api:        strings.TrimSuffix(apiRoot, "/"),
	}
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = utils.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{c.api}, path...), "/")
}

// request sends a request with body in JSON. nil body sends nothing.
func (c *client) request(
	ctx context.Context, method string, url string, query url.Values, body any,
) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(buf)
	}
	if len(query) != 0 {
		url = url + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpclient.Do(req)
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}
		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}

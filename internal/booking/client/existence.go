package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Kind string

const (
	KindUser  Kind = "user"
	KindCourt Kind = "court"
)

// ExistenceChecker answers whether a referenced user or court exists.
type ExistenceChecker interface {
	Exists(ctx context.Context, kind Kind, id int64) bool
}

// ExistenceClient looks entities up over HTTP at GET {base}/{id}.
//
// Exists reports false for every failure: a non-2xx answer, a timeout or an
// unreachable service all read as "does not exist". A transient outage of the
// user or court service therefore rejects bookings. Lookup keeps the reason.
type ExistenceClient struct {
	httpClient *http.Client
	baseURLs   map[Kind]string
}

func NewExistenceClient(userServiceURL, courtServiceURL string, timeout time.Duration) *ExistenceClient {
	return &ExistenceClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURLs: map[Kind]string{
			KindUser:  strings.TrimRight(userServiceURL, "/"),
			KindCourt: strings.TrimRight(courtServiceURL, "/"),
		},
	}
}

func (c *ExistenceClient) Exists(ctx context.Context, kind Kind, id int64) bool {
	ok, err := c.Lookup(ctx, kind, id)
	if err != nil {
		log.WithFields(log.Fields{"kind": kind, "id": id}).
			WithError(err).
			Warn("existence lookup failed, treating as not found")
		return false
	}
	return ok
}

// Lookup performs a single GET. It returns (false, nil) when the owning service
// answered with a non-2xx status and a non-nil error when no answer was obtained.
func (c *ExistenceClient) Lookup(ctx context.Context, kind Kind, id int64) (bool, error) {
	base, ok := c.baseURLs[kind]
	if !ok {
		return false, fmt.Errorf("unknown entity kind %q", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return false, fmt.Errorf("build %s lookup: %w", kind, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s lookup: %w", kind, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

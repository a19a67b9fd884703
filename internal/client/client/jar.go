package client

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/shopadmin/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

// persistentJar is a cookie jar mirrored to the cookies repository for one
// origin. Cookies set without a path are scoped to "/" so the session cookie
// issued by the login endpoint is sent to every API path.
type persistentJar struct {
	mu     sync.Mutex
	inner  *cookiejar.Jar
	origin *url.URL
	repo   cookies.Repository
	log    logging.Logger
}

func newPersistentJar(ctx context.Context, origin *url.URL, repo cookies.Repository, log logging.Logger) (*persistentJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	j := &persistentJar{inner: inner, origin: origin, repo: repo, log: log}
	if repo == nil {
		return j, nil
	}

	stored, err := repo.Load(ctx, origin.String())
	if err != nil {
		return nil, err
	}
	for _, c := range stored {
		c.Path = "/"
	}
	inner.SetCookies(origin, stored)
	return j, nil
}

func (j *persistentJar) SetCookies(u *url.URL, cs []*http.Cookie) {
	for _, c := range cs {
		if c.Path == "" {
			c.Path = "/"
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cs)
	j.persist()
}

func (j *persistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Reset drops every cookie, in memory and on disk.
func (j *persistentJar) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	inner, _ := cookiejar.New(nil)
	j.inner = inner
	j.persist()
}

func (j *persistentJar) persist() {
	if j.repo == nil {
		return
	}
	ctx := context.Background()
	if err := j.repo.Replace(ctx, j.origin.String(), j.inner.Cookies(j.origin)); err != nil {
		j.log.Warn(ctx, "failed to persist cookies", "error", err)
	}
}

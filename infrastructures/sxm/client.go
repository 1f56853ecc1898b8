// Package sxm talks to a local SiriusXM proxy, which handles
// authentication and hands out plain mp3 streams and json metadata.
package sxm

import (
	"net/http"
	"net/url"

	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/pkg/errors"
)

type client struct {
	httpClient *http.Client
	baseURL    *url.URL
}

func New(baseURL string) (repository.Source, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrInternal, err.Error())
	}
	return &client{
		httpClient: &http.Client{},
		baseURL:    u,
	}, nil
}

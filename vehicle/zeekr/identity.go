package zeekr

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/cod3gen/zeekr-homeassistant/util/oauth"
	"github.com/cod3gen/zeekr-homeassistant/util/request"
	"golang.org/x/oauth2"
)

// Identity provides access tokens, refreshing them with the refresh token if available
type Identity struct {
	*request.Helper
	uri          string
	refreshToken string
}

// NewIdentity creates a token source for the configured tokens
func NewIdentity(log *util.Logger, uri, accessToken, refreshToken string) (oauth2.TokenSource, error) {
	if accessToken == "" && refreshToken == "" {
		return nil, errors.New("missing token")
	}

	v := &Identity{
		Helper:       request.NewHelper(log),
		uri:          strings.TrimSuffix(uri, "/"),
		refreshToken: refreshToken,
	}

	var tok *oauth2.Token
	if accessToken != "" {
		tok = &oauth2.Token{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
		}
	}

	if refreshToken == "" {
		return oauth2.StaticTokenSource(tok), nil
	}

	return oauth2.ReuseTokenSource(tok, v), nil
}

// Token implements oauth2.TokenSource
func (v *Identity) Token() (*oauth2.Token, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {v.refreshToken},
	}

	req, err := request.New(http.MethodPost, v.uri+"/auth/token", strings.NewReader(data.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"Accept":       "application/json",
	})
	if err != nil {
		return nil, err
	}

	var res oauth.Token
	if err := v.DoJSON(req, &res); err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	if res.RefreshToken != "" {
		v.refreshToken = res.RefreshToken
	}

	return res.Token(), nil
}

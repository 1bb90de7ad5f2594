package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// Token is an OAuth2 token which support decoding the expires_in attribute and return content errors
type Token oauth2.Token

func (t *Token) UnmarshalJSON(data []byte) error {
	var s struct {
		oauth2.Token
		ExpiresIn        int64   `json:"expires_in,omitempty"`
		Error            *string `json:"error,omitempty"`
		ErrorDescription *string `json:"error_description,omitempty"`
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s.Error != nil {
		if s.ErrorDescription != nil {
			return fmt.Errorf("%s: %s", *s.Error, *s.ErrorDescription)
		}
		return errors.New(*s.Error)
	}

	*t = Token(s.Token)

	if t.Expiry.IsZero() && s.ExpiresIn != 0 {
		t.Expiry = time.Now().Add(time.Second * time.Duration(s.ExpiresIn))
	}

	return nil
}

// Token returns the oauth2 representation
func (t *Token) Token() *oauth2.Token {
	if t == nil {
		return nil
	}
	tok := oauth2.Token(*t)
	return &tok
}

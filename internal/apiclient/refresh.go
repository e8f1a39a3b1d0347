package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// RefreshToken asks the auth service for a new credential.
// It accepts {"token": ...} or {"access_token": ...}.
func (c *Client) RefreshToken(ctx context.Context, token string) (string, error) {
	r, err := c.do(ctx, token, http.MethodPost, c.refreshPath, nil, "")
	if err != nil {
		return "", err
	}
	if !r.ok() {
		return "", &APIError{Status: r.status, Message: messageFromBody(r.body)}
	}

	var body struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(r.body, &body); err != nil {
		return "", errors.Wrap(ErrUnexpectedResponse, err.Error())
	}
	switch {
	case body.Token != "":
		return body.Token, nil
	case body.AccessToken != "":
		return body.AccessToken, nil
	}
	return "", errors.Wrap(ErrUnexpectedResponse, "no token in refresh response")
}

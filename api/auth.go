package api

import (
	"context"
	"errors"
	"net/url"

	"cmsadmin/constants"
)

// Login exchanges operator credentials for a bearer token. The backend takes
// a form-encoded body on this one endpoint. A 401 here means the credentials
// were rejected and is reported as *AuthError; every other failure keeps its
// *RequestError shape.
func (c *Client) Login(ctx context.Context, identifier, secret string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", identifier)
	form.Set("password", secret)

	var result LoginResult
	if err := c.postForm(ctx, constants.LoginPath, form, &result); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.Unauthorized() {
			return nil, &AuthError{Detail: reqErr.Detail}
		}
		return nil, err
	}
	return &result, nil
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, constants.MePath, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

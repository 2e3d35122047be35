package api

import (
	"context"
	"io"

	"cmsadmin/constants"
)

// Upload sends a single file to the backend's multipart upload endpoint and
// returns the public URL the backend stored it under. The file content is
// passed through untouched.
func (c *Client) Upload(ctx context.Context, filename string, reader io.Reader) (*UploadResult, error) {
	var result UploadResult
	if err := c.postMultipart(ctx, constants.UploadPath, "file", filename, reader, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

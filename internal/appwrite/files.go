package appwrite

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/agentstation/menuseed/internal/transport"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/errors"
)

type fileList struct {
	Total int            `json:"total"`
	Files []backend.File `json:"files"`
}

// ListFiles implements backend.Files.
func (c *Client) ListFiles(ctx context.Context, limit int) ([]backend.File, error) {
	u, err := withQueries(c.filesURL(), limitQuery(limit))
	if err != nil {
		return nil, errors.WrapResource("list", "files", c.cfg.BucketID, err)
	}

	resp, err := c.transport.Get(ctx, u)
	if err != nil {
		return nil, errors.WrapResource("list", "files", c.cfg.BucketID, err)
	}

	var list fileList
	if err := transport.DecodeResponse(resp, &list); err != nil {
		return nil, errors.WrapResource("list", "files", c.cfg.BucketID, err)
	}
	return list.Files, nil
}

// DeleteFile implements backend.Files.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	resp, err := c.transport.Delete(ctx, c.filesURL()+"/"+url.PathEscape(fileID))
	if err != nil {
		return errors.WrapResource("delete", "file", fileID, err)
	}
	if err := transport.DecodeResponse(resp, nil); err != nil {
		return errors.WrapResource("delete", "file", fileID, err)
	}
	return nil
}

// CreateFile implements backend.Files. The file is sent as a single
// multipart request; chunked uploads are not needed for menu images.
func (c *Client) CreateFile(ctx context.Context, fileID string, in backend.FileInput) (*backend.File, error) {
	body, contentType, err := multipartBody(fileID, in)
	if err != nil {
		return nil, errors.WrapResource("upload", "file", in.Name, err)
	}

	resp, err := c.transport.Request(ctx, http.MethodPost, c.filesURL(), body, contentType)
	if err != nil {
		return nil, errors.WrapResource("upload", "file", in.Name, err)
	}

	var f backend.File
	if err := transport.DecodeResponse(resp, &f); err != nil {
		return nil, errors.WrapResource("upload", "file", in.Name, err)
	}
	if f.ID == "" {
		f.ID = fileID
	}
	return &f, nil
}

// FileViewURL implements backend.Files.
func (c *Client) FileViewURL(fileID string) string {
	return fmt.Sprintf("%s/%s/view?project=%s", c.filesURL(), url.PathEscape(fileID), url.QueryEscape(c.cfg.ProjectID))
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func multipartBody(fileID string, in backend.FileInput) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("fileId", fileID); err != nil {
		return nil, "", err
	}

	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(in.Name)))
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(in.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

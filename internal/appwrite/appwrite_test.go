package appwrite

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menuseed/internal/transport"
	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Config{
		Endpoint:   server.URL + "/v1",
		ProjectID:  "proj",
		APIKey:     "key",
		DatabaseID: "db",
		BucketID:   "images",
	})
	require.NoError(t, err)
	return c
}

func requireAuth(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "proj", r.Header.Get(transport.HeaderProject))
	assert.Equal(t, "key", r.Header.Get(transport.HeaderKey))
}

func TestConfigValidate(t *testing.T) {
	err := Config{Endpoint: "https://cloud.appwrite.io/v1", ProjectID: "p"}.Validate()
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "api_key")
	assert.Contains(t, cfgErr.Message, "database_id")
	assert.Contains(t, cfgErr.Message, "bucket_id")
	assert.NotContains(t, cfgErr.Message, "project_id")

	err = Config{Endpoint: "not a url", ProjectID: "p", APIKey: "k", DatabaseID: "d", BucketID: "b"}.Validate()
	assert.Error(t, err)

	_, err = New(Config{})
	assert.Error(t, err)
}

func TestListDocuments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/databases/db/collections/menu/documents", r.URL.Path)

		queries := r.URL.Query()["queries[]"]
		require.Len(t, queries, 1)
		var q query
		require.NoError(t, json.Unmarshal([]byte(queries[0]), &q))
		assert.Equal(t, "limit", q.Method)
		assert.Equal(t, []any{float64(100)}, q.Values)

		_, _ = io.WriteString(w, `{"total":2,"documents":[
			{"$id":"a","$collectionId":"menu","$createdAt":"2024-01-01","name":"Pizza"},
			{"$id":"b","$collectionId":"menu","name":"Burger"}]}`)
	})

	docs, err := c.ListDocuments(context.Background(), "menu", 100)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "menu", docs[0].CollectionID)
	assert.Equal(t, map[string]any{"name": "Pizza"}, docs[0].Data)
}

func TestCreateDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/databases/db/collections/categories/documents", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req createDocumentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cat1", req.DocumentID)
		assert.Equal(t, "Pizzas", req.Data["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"$id":"cat1","$collectionId":"categories","name":"Pizzas"}`)
	})

	doc, err := c.CreateDocument(context.Background(), "categories", "cat1", map[string]any{"name": "Pizzas"})
	require.NoError(t, err)
	assert.Equal(t, "cat1", doc.ID)
	assert.Equal(t, "Pizzas", doc.Data["name"])
}

func TestCreateDocumentConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"Document with the requested ID already exists.","code":409,"type":"document_already_exists"}`)
	})

	_, err := c.CreateDocument(context.Background(), "categories", "cat1", nil)
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	var resErr *errors.ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "create", resErr.Operation)
	assert.Equal(t, "cat1", resErr.ID)
}

func TestDeleteDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/databases/db/collections/menu/documents/a", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteDocument(context.Background(), "menu", "a"))
}

func TestListAndDeleteFiles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/v1/storage/buckets/images/files", r.URL.Path)
			_, _ = io.WriteString(w, `{"total":1,"files":[{"$id":"f1","bucketId":"images","name":"a.png","mimeType":"image/png","sizeOriginal":12}]}`)
		case http.MethodDelete:
			assert.Equal(t, "/v1/storage/buckets/images/files/f1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	})

	files, err := c.ListFiles(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, backend.File{ID: "f1", BucketID: "images", Name: "a.png", MimeType: "image/png", Size: 12}, files[0])

	assert.NoError(t, c.DeleteFile(context.Background(), "f1"))
}

func TestCreateFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requireAuth(t, r)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "file1", r.FormValue("fileId"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "pizza.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "PNGDATA", string(data))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"$id":"file1","bucketId":"images","name":"pizza.png","mimeType":"image/png","sizeOriginal":7}`)
	})

	f, err := c.CreateFile(context.Background(), "file1", backend.FileInput{
		Name:     "pizza.png",
		MimeType: "image/png",
		Data:     []byte("PNGDATA"),
	})
	require.NoError(t, err)
	assert.Equal(t, "file1", f.ID)
	assert.EqualValues(t, 7, f.Size)
}

func TestFileViewURL(t *testing.T) {
	c, err := New(Config{
		Endpoint:   "https://cloud.appwrite.io/v1/",
		ProjectID:  "proj",
		APIKey:     "key",
		DatabaseID: "db",
		BucketID:   "images",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cloud.appwrite.io/v1/storage/buckets/images/files/abc/view?project=proj", c.FileViewURL("abc"))
	assert.Equal(t, "images", c.BucketID())
	assert.Equal(t, "db", c.DatabaseID())
}

func TestWithQueries(t *testing.T) {
	u, err := withQueries("http://x/docs")
	require.NoError(t, err)
	assert.Equal(t, "http://x/docs", u)

	u, err = withQueries("http://x/docs", limitQuery(25))
	require.NoError(t, err)
	assert.Contains(t, u, "queries%5B%5D=")
	assert.Contains(t, u, "%22limit%22")
}

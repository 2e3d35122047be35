package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cmsadmin/api"
	"cmsadmin/state"
)

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, filename)
	assert.NoError(t, err)
	_, err = fw.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadRejectsNonImageExtension(t *testing.T) {
	_, done := testShell(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("The backend must not be called for a rejected extension")
	}))
	defer done()

	h := NewUploadHandler(state.GetGlobalState())

	w := httptest.NewRecorder()
	h.Upload(w, multipartUpload(t, "file", "script.exe", []byte("nope")), nil)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["detail"])
}

func TestUploadRequiresFileField(t *testing.T) {
	_, done := testShell(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer done()

	h := NewUploadHandler(state.GetGlobalState())

	w := httptest.NewRecorder()
	h.Upload(w, multipartUpload(t, "attachment", "a.png", []byte("png")), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadProxiesToBackend(t *testing.T) {
	var backendField string
	_, done := testShell(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		for name := range r.MultipartForm.File {
			backendField = name
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.UploadResult{URL: "/uploads/a.png", Filename: "a.png"})
	}))
	defer done()

	h := NewUploadHandler(state.GetGlobalState())

	w := httptest.NewRecorder()
	h.Upload(w, multipartUpload(t, "file", "a.png", []byte("png bytes")), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "file", backendField)

	var result api.UploadResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "/uploads/a.png", result.URL)
}

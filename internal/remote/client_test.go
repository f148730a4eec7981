package remote

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/season.xlsx"))
	assert.True(t, IsURL("http://localhost:8000/a.xlsx"))
	assert.False(t, IsURL("season.xlsx"))
	assert.False(t, IsURL("/tmp/season.xlsx"))
	assert.False(t, IsURL("C:/stats/season.xlsx"))
	assert.False(t, IsURL("ftp://example.com/a.xlsx"))
}

func TestExportURL(t *testing.T) {
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/abc_123-X/export?format=xlsx",
		ExportURL("https://docs.google.com/spreadsheets/d/abc_123-X/edit#gid=0"))
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/abc/export?format=xlsx",
		ExportURL("https://docs.google.com/spreadsheets/d/abc"))

	for _, u := range []string{
		"https://docs.google.com/spreadsheets/d/abc/export?format=csv",
		"https://example.com/spreadsheets/d/abc/edit",
		"https://docs.google.com/document/d/abc/edit",
	} {
		assert.Equal(t, u, ExportURL(u))
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("PK")) //nolint:errcheck
		case "/private":
			if r.Header.Get("Authorization") != "Bearer s3cret" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Write([]byte("PK")) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	data, err := NewClient("").Download(t.Context(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)

	_, err = NewClient("").Download(t.Context(), srv.URL+"/private")
	assert.ErrorContains(t, err, "HTTP 403")

	data, err = NewClient("s3cret").Download(t.Context(), srv.URL+"/private")
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)

	_, err = NewClient("").Download(t.Context(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "HTTP 404")
}

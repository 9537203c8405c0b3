package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

func TestSearchSendsZeroBasedPageParams(t *testing.T) {
	var gotPath string
	var gotPage, gotSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		gotSize = r.URL.Query().Get("size")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"content":[{"id":41},{"id":42},{"id":43},{"id":44},{"id":45},{"id":46},{"id":47}],"totalElements":47,"totalPages":3,"number":2,"size":20}}`))
	}))
	defer srv.Close()

	res := NewResource[widget](NewClient(srv.URL, 0, nil), "/api/imports")
	page, err := res.Search(context.Background(), nil, 3, 20)
	require.NoError(t, err)

	require.Equal(t, "/api/imports/search", gotPath)
	require.Equal(t, "2", gotPage)
	require.Equal(t, "20", gotSize)

	// The envelope is backend truth, passed through untouched.
	require.Len(t, page.Content, 7)
	require.EqualValues(t, 47, page.TotalElements)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, int64(41), page.Content[0].ID)
}

func TestSearchDefaultsPageAndSize(t *testing.T) {
	var gotPage, gotSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotSize = r.URL.Query().Get("size")
		_, _ = w.Write([]byte(`{"data":{"content":[],"totalElements":0,"totalPages":0}}`))
	}))
	defer srv.Close()

	res := NewResource[widget](NewClient(srv.URL, 0, nil), "/api/imports")
	_, err := res.Search(context.Background(), nil, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "0", gotPage)
	require.Equal(t, "20", gotSize)
}

func TestGetUnwrapsDataEnvelope(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":{"id":9,"code":"PN-0009"},"message":"OK"}`))
	}))
	defer srv.Close()

	res := NewResource[widget](NewClient(srv.URL, 0, nil), "/api/imports")
	got, err := res.Get(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, "/api/imports/9", gotPath)
	require.Equal(t, widget{ID: 9, Code: "PN-0009"}, got)
}

func TestGetAcceptsBareObjectWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":12,"code":"PN-0012"}`))
	}))
	defer srv.Close()

	res := NewResource[widget](NewClient(srv.URL, 0, nil), "/api/imports")
	got, err := res.Get(context.Background(), 12)
	require.NoError(t, err)
	require.Equal(t, widget{ID: 12, Code: "PN-0012"}, got)
}

func TestErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Không tìm thấy phiếu nhập"}`))
	}))
	defer srv.Close()

	res := NewResource[widget](NewClient(srv.URL, 0, nil), "/api/imports")
	_, err := res.Get(context.Background(), 404)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "Không tìm thấy phiếu nhập", apiErr.Message)
	require.True(t, IsNotFound(err))
	require.Equal(t, "Không tìm thấy phiếu nhập", UserMessage(err, "fallback"))
}

func TestErrorWithoutBodyUsesFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`gateway timeout`))
	}))
	defer srv.Close()

	res := NewResource[widget](NewClient(srv.URL, 0, nil), "/api/imports")
	_, err := res.Get(context.Background(), 1)
	require.Error(t, err)
	require.False(t, IsNotFound(err))
	require.Equal(t, "Không tải được dữ liệu", UserMessage(err, "Không tải được dữ liệu"))
}

func TestActSendsAuthAndIdempotencyHeaders(t *testing.T) {
	var gotAuth, gotIdem, gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":{"id":9}}`))
	}))
	defer srv.Close()

	ctx := ContextWithToken(context.Background(), "tok-123")
	res := NewResource[widget](NewClient(srv.URL, 0, nil), "/api/imports")
	_, err := res.Act(ctx, 9, "approve", nil)
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/api/imports/9/approve", gotPath)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotIdem)
}

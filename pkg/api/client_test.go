package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Format: logger.FormatJSON, Writer: &buf})
	require.NoError(t, err)
	return NewClient(srv.URL+"/", WithLogger(log)), &buf
}

func TestClientSearchSendsParams(t *testing.T) {
	var gotQuery, gotAccept string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSearch, r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		_, _ = io.WriteString(w, `{"items":[{"prompt_id":7,"name":"Seven","category":"Creative","like_count":3}],
			"total_items":1,"total_pages":1,"current_page":2}`)
	})

	page, err := c.Search(context.Background(), models.SearchParams{
		Query: "email writer", Page: 2, PageSize: 9, SortBy: DefaultSortBy, SortOrder: DefaultSortOrder,
	})
	require.NoError(t, err)
	assert.Equal(t, "query=email+writer&page=2&page_size=9&sort_by=created_at&sort_order=desc", gotQuery)
	assert.Equal(t, "application/json", gotAccept)
	require.Len(t, page.Items, 1)
	assert.Equal(t, models.PromptID("7"), page.Items[0].ID)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestClientErrorDetail(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "string detail", status: 404, body: `{"detail":"Prompt not found"}`, wantMsg: "Prompt not found"},
		{name: "list detail", status: 422, body: `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`, wantMsg: "field required; too short"},
		{name: "message field", status: 400, body: `{"message":"Prompt Already Liked"}`, wantMsg: "Prompt Already Liked"},
		{name: "no body", status: 500, body: ``, wantMsg: DefaultErrorMessage},
		{name: "html body", status: 502, body: `<html>bad gateway</html>`, wantMsg: DefaultErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetPrompt(context.Background(), "42")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantMsg, Message(err))
			assert.Equal(t, tt.status == 404, IsNotFound(err))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
			assert.Equal(t, "API Error", entry["message"])
			assert.Equal(t, "/prompts/42", entry["path"])
			assert.EqualValues(t, tt.status, entry["status"])
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.Categories(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.Equal(t, PathCategories, netErr.Path)
}

func TestClientDecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})

	_, err := c.Categories(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClientLikeEscapesID(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	resp, err := c.LikePrompt(context.Background(), "a/b")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/prompts/a%2Fb/like", gotPath)
}

func TestClientCustomize(t *testing.T) {
	t.Run("sends trimmed instruction", func(t *testing.T) {
		var body map[string]any
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, _ = io.WriteString(w, `{"customized_prompt":"rewritten"}`)
		})

		got, err := c.Customize(context.Background(), models.CustomizationRequest{
			PromptID: "3", Message: "  make it more formal  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "rewritten", got)
		assert.Equal(t, "3", body["prompt_id"])
		assert.Equal(t, "make it more formal", body["customization_message"])
	})

	t.Run("empty result is an error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{}`)
		})

		_, err := c.Customize(context.Background(), models.CustomizationRequest{
			PromptID: "3", Message: "make it more formal",
		})
		require.EqualError(t, err, "Invalid response from customization API")
	})

	t.Run("short instruction never reaches the server", func(t *testing.T) {
		called := false
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := c.Customize(context.Background(), models.CustomizationRequest{PromptID: "3", Message: "short"})
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.False(t, called)
	})
}

func TestClientCreatePromptValidates(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.CreatePrompt(context.Background(), models.CreatePromptRequest{Name: "ab"})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
	assert.False(t, called)
}

func TestClientAuthorPrompts(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"items":[],"total_items":0,"total_pages":0,"current_page":1}`)
	})

	page, err := c.AuthorPrompts(context.Background(), " demo-author ")
	require.NoError(t, err)
	assert.True(t, page.IsEmpty())
	assert.Equal(t, "/prompts/author/demo-author", gotPath)

	_, err = c.AuthorPrompts(context.Background(), "  ")
	require.Error(t, err)
}

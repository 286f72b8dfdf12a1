package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userpeek/userpeek/internal/errors"
)

func newTestClient(searchURL, thumbURL string) *Client {
	return NewClient(Config{
		BaseURL:      searchURL,
		ThumbnailURL: thumbURL,
		ProfileURL:   "https://example.com",
	})
}

func TestSearchUsers_BuildsRequestAndDecodes(t *testing.T) {
	var gotPath, gotQuery, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"roblox","displayName":"Roblox","hasVerifiedBadge":true,"previousUsernames":[]}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	users, err := c.SearchUsers(context.Background(), " ro ", 10)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/users/search", gotPath)
	assert.Equal(t, "keyword=ro&limit=10", gotQuery)
	assert.Equal(t, "application/json", gotAccept)

	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "roblox", users[0].Name)
	assert.Equal(t, "Roblox", users[0].DisplayName)
	assert.True(t, users[0].HasVerifiedBadge)
	assert.Empty(t, users[0].PreviousUsernames)
}

func TestSearchUsers_EncodesKeyword(t *testing.T) {
	var gotKeyword string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKeyword = r.URL.Query().Get("keyword")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.SearchUsers(context.Background(), "two words&more", 10)
	require.NoError(t, err)
	assert.Equal(t, "two words&more", gotKeyword)
}

func TestSearchUsers_MissingDataIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	users, err := c.SearchUsers(context.Background(), "ro", 10)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSearchUsers_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.SearchUsers(context.Background(), "ro", 10)
	require.Error(t, err)

	assert.Equal(t, errors.ErrCodeSearchStatus, errors.GetCode(err))
	assert.Contains(t, err.Error(), "429")
}

func TestAvatarHeadshots_BatchesIDs(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/v1/users/avatar-headshot", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"targetId":1,"state":"Completed","imageUrl":"https://img/1.png"},{"targetId":2,"state":"Pending","imageUrl":""}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	shots, err := c.AvatarHeadshots(context.Background(), []int64{1, 2}, "150x150", "Png")
	require.NoError(t, err)

	assert.Equal(t, []string{"1,2"}, gotQuery["userIds"])
	assert.Equal(t, []string{"150x150"}, gotQuery["size"])
	assert.Equal(t, []string{"Png"}, gotQuery["format"])

	require.Len(t, shots, 2)
	assert.Equal(t, HeadshotStateCompleted, shots[0].State)
	assert.Equal(t, "https://img/1.png", shots[0].ImageURL)
}

func TestAvatarHeadshots_EmptyIDsSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty id set")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	shots, err := c.AvatarHeadshots(context.Background(), nil, "150x150", "Png")
	require.NoError(t, err)
	assert.Nil(t, shots)
}

func TestAvatarHeadshots_FailureIsWarningSeverity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.URL)
	_, err := c.AvatarHeadshots(context.Background(), []int64{1}, "150x150", "Png")
	require.Error(t, err)
	assert.True(t, errors.IsWarning(err))
}

func TestProfileURL(t *testing.T) {
	c := newTestClient("https://users.example.com", "https://thumbs.example.com")
	assert.Equal(t, "https://example.com/users/42/profile", c.ProfileURL(42))
}

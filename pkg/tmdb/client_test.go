package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidplus-go/pkg/config"
	"vidplus-go/pkg/httpclient"
	"vidplus-go/pkg/logging"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{TMDBBaseURL: server.URL + "/3/", TMDBAPIKey: apiKey}
	log := logging.Discard()
	return NewClient(cfg, httpclient.New(cfg, log), log)
}

func TestClient_SearchMulti(t *testing.T) {
	c := newTestClient(t, "key123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/multi", r.URL.Path)
		assert.Equal(t, "key123", r.URL.Query().Get("api_key"))
		assert.Equal(t, "fight club & co", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"results":[
			{"id":550,"media_type":"movie","title":"Fight Club","poster_path":"/p.jpg"},
			{"id":1399,"media_type":"tv","name":"Game of Thrones"},
			{"id":287,"media_type":"person","name":"Brad Pitt"}
		]}`))
	})

	resp, err := c.SearchMulti(context.Background(), "fight club & co")
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, "Fight Club", resp.Results[0].DisplayTitle())
	assert.Equal(t, "Game of Thrones", resp.Results[1].DisplayTitle())
	assert.Equal(t, MediaTypePerson, resp.Results[2].MediaType)
}

func TestClient_MovieTVSeason(t *testing.T) {
	c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/movie/550":
			w.Write([]byte(`{"id":550,"overview":"A film.","runtime":139,"release_date":"1999-10-15"}`))
		case "/3/tv/1399":
			w.Write([]byte(`{"id":1399,"number_of_seasons":8,"first_air_date":"2011-04-17"}`))
		case "/3/tv/1399/season/2":
			w.Write([]byte(`{"season_number":2,"episodes":[{"episode_number":1},{"episode_number":2}]}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	movie, err := c.Movie(ctx, "550")
	require.NoError(t, err)
	assert.Equal(t, 139, movie.Runtime)
	assert.Equal(t, "1999-10-15", movie.ReleaseDate)

	show, err := c.TV(ctx, "1399")
	require.NoError(t, err)
	assert.Equal(t, 8, show.NumberOfSeasons)

	season, err := c.Season(ctx, "1399", 2)
	require.NoError(t, err)
	require.Len(t, season.Episodes, 2)
	assert.Equal(t, 2, season.Episodes[1].EpisodeNumber)

	_, err = c.Season(ctx, "1399", 9)
	var statusErr *httpclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestClient_NotConfigured(t *testing.T) {
	called := false
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Movie(context.Background(), "550")
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.False(t, called, "no request should be sent without an API key")
}

package tmdb

// Media types reported by /search/multi.
const (
	MediaTypeMovie  = "movie"
	MediaTypeTV     = "tv"
	MediaTypePerson = "person"
)

// SearchResponse is the /search/multi payload.
type SearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// SearchResult is one hit of a multi search. Movies carry Title, shows Name.
type SearchResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	Popularity   float64 `json:"popularity"`
}

// DisplayTitle returns Title for movies and Name for everything else.
func (r SearchResult) DisplayTitle() string {
	if r.MediaType == MediaTypeMovie {
		return r.Title
	}
	return r.Name
}

// MovieDetails is the /movie/{id} payload.
type MovieDetails struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	Runtime     int    `json:"runtime"`
	PosterPath  string `json:"poster_path"`
	Status      string `json:"status"`
}

// TVDetails is the /tv/{id} payload.
type TVDetails struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Overview         string `json:"overview"`
	FirstAirDate     string `json:"first_air_date"`
	NumberOfSeasons  int    `json:"number_of_seasons"`
	NumberOfEpisodes int    `json:"number_of_episodes"`
	PosterPath       string `json:"poster_path"`
	Status           string `json:"status"`
}

// SeasonDetails is the /tv/{id}/season/{n} payload.
type SeasonDetails struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	SeasonNumber int       `json:"season_number"`
	AirDate      string    `json:"air_date"`
	Episodes     []Episode `json:"episodes"`
}

// Episode is one entry of a season's episode list.
type Episode struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	EpisodeNumber int    `json:"episode_number"`
	SeasonNumber  int    `json:"season_number"`
	AirDate       string `json:"air_date"`
}

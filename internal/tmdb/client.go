// Package tmdb es un cliente mínimo de la API de The Movie Database:
// detalle de película (para sacar poster_path) y descarga de imágenes.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"cinecluster/internal/logging"
	"cinecluster/internal/metrics"
)

const (
	DefaultTimeout = 10 * time.Second
	MaxImageBytes  = 10 << 20
	breakerName    = "tmdb-api"
)

var (
	ErrNotFound      = errors.New("tmdb: película no encontrada")
	ErrUnavailable   = errors.New("tmdb: servicio no disponible")
	ErrImageTooLarge = errors.New("tmdb: imagen demasiado grande")
)

// StatusError es una respuesta HTTP inesperada de TMDB.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: status %d en %s", e.Code, e.URL)
}

type Movie struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

type Image struct {
	Data        []byte
	ContentType string
}

type Options struct {
	BaseURL      string
	ImageBaseURL string
	Token        string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

type Client struct {
	baseURL      string
	imageBaseURL string
	token        string
	http         *http.Client
	cb           *gobreaker.CircuitBreaker[any]
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	log := logging.With().Str("component", "tmdb").Logger()
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// un 404 es una respuesta válida, no una caída de TMDB
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("[tmdb] cambio de estado del circuit breaker")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(opts.ImageBaseURL, "/"),
		token:        opts.Token,
		http:         hc,
		cb:           cb,
	}
}

// ImageURL arma la URL pública del poster: {imageBase}/{size}{posterPath}.
func (c *Client) ImageURL(size, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}
	return c.imageBaseURL + "/" + size + posterPath
}

// GetMovie pide /movie/{id}?language=en-US con el token Bearer.
func (c *Client) GetMovie(ctx context.Context, tmdbID int) (*Movie, error) {
	return castResult[Movie](c.execute("movie", func() (any, error) {
		return c.getMovie(ctx, tmdbID)
	}))
}

func (c *Client) getMovie(ctx context.Context, tmdbID int) (*Movie, error) {
	url := c.baseURL + "/movie/" + strconv.Itoa(tmdbID) + "?language=en-US"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	var m Movie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("tmdb: decodificando movie %d: %w", tmdbID, err)
	}
	return &m, nil
}

// FetchImage descarga la imagen del poster (segunda llamada de red).
func (c *Client) FetchImage(ctx context.Context, url string) (*Image, error) {
	return castResult[Image](c.execute("image", func() (any, error) {
		return c.fetchImage(ctx, url)
	}))
}

func (c *Client) fetchImage(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return &Image{Data: data, ContentType: ct}, nil
}

// execute pasa la llamada por el circuit breaker y registra métricas.
func (c *Client) execute(kind string, fn func() (any, error)) (any, error) {
	start := time.Now()
	res, err := c.cb.Execute(fn)
	metrics.TMDBRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.TMDBRequests.WithLabelValues(kind, "ok").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.TMDBRequests.WithLabelValues(kind, "rejected").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	case errors.Is(err, ErrNotFound):
		metrics.TMDBRequests.WithLabelValues(kind, "not_found").Inc()
	default:
		metrics.TMDBRequests.WithLabelValues(kind, "error").Inc()
	}
	return res, err
}

func castResult[T any](result any, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("tmdb: tipo de resultado inesperado %T", result)
	}
	return typed, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

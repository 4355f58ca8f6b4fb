package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinecluster/internal/cache"
	"cinecluster/internal/dataset"
	"cinecluster/internal/models"
	"cinecluster/internal/repository"
	"cinecluster/internal/tmdb"
)

const pcaCSV = `movieId,title,genres,tmdbId,cluster
1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy,862,0
2,Jumanji (1995),Adventure|Children|Fantasy,8844,0
3,Grumpier Old Men (1995),Comedy|Romance,15602,1
4,Heat (1995),Action|Crime|Thriller,949,0
5,Sabrina (1995),Comedy|Romance,11860,1
6,Tom and Huck (1995),Adventure|Children,45325,0
7,Sudden Death (1995),Action,9091,0
8,GoldenEye (1995),Action|Adventure|Thriller,710,0
9,Balto (1995),Adventure|Animation|Children,21032,0
10,Nixon (1995),Drama,10858,2
`

const nmfCSV = `title,genres,tmdbId,cluster
Heat (1995),Action|Crime|Thriller,949,5
Only In NMF,Drama,4242,5
`

func newTestRepo(t *testing.T) *repository.MovieRepository {
	t.Helper()
	pca, err := dataset.Parse(dataset.PCA, strings.NewReader(pcaCSV))
	require.NoError(t, err)
	nmf, err := dataset.Parse(dataset.NMF, strings.NewReader(nmfCSV))
	require.NoError(t, err)
	return repository.NewMovieRepository(dataset.NewRegistryFromTables(pca, nmf))
}

// fakeSource simula TMDB: poster "/<id>.jpg", salvo los ids configurados.
type fakeSource struct {
	mu       sync.Mutex
	calls    map[int]int
	noPoster map[int]bool
	fail     map[int]error
}

func newFakeSource() *fakeSource {
	return &fakeSource{calls: map[int]int{}, noPoster: map[int]bool{}, fail: map[int]error{}}
}

func (f *fakeSource) GetMovie(_ context.Context, id int) (*tmdb.Movie, error) {
	f.mu.Lock()
	f.calls[id]++
	f.mu.Unlock()

	if err := f.fail[id]; err != nil {
		return nil, err
	}
	if f.noPoster[id] {
		return &tmdb.Movie{ID: id}, nil
	}
	return &tmdb.Movie{ID: id, PosterPath: "/" + itoa(id) + ".jpg"}, nil
}

func (f *fakeSource) FetchImage(_ context.Context, url string) (*tmdb.Image, error) {
	return &tmdb.Image{Data: []byte(url), ContentType: "image/jpeg"}, nil
}

func (f *fakeSource) ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return "https://img/" + size + path
}

func (f *fakeSource) callsFor(id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func newTestPosters(t *testing.T, src PosterSource) *PosterService {
	t.Helper()
	c, err := cache.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return NewPosterService(src, c, time.Hour)
}

type memHistory struct {
	entries []models.HistoryEntry
	err     error
}

func (h *memHistory) Insert(_ context.Context, e *models.HistoryEntry) error {
	if h.err != nil {
		return h.err
	}
	h.entries = append(h.entries, *e)
	return nil
}

func (h *memHistory) Recent(_ context.Context, limit int64) ([]models.HistoryEntry, error) {
	if int64(len(h.entries)) > limit {
		return h.entries[:limit], nil
	}
	return h.entries, nil
}

// ====== recomendaciones ======

func TestClampN(t *testing.T) {
	assert.Equal(t, 6, ClampN(0))
	assert.Equal(t, 6, ClampN(-1))
	assert.Equal(t, 3, ClampN(1))
	assert.Equal(t, 7, ClampN(7))
	assert.Equal(t, 12, ClampN(40))
}

func TestRecommend_SameClusterExcludingSelected(t *testing.T) {
	hist := &memHistory{}
	svc := NewRecommendService(newTestRepo(t), nil, hist)

	res, err := svc.Recommend(context.Background(), RecRequest{Algo: dataset.PCA, TMDBID: 862, N: 3})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Cluster)
	assert.Equal(t, "Toy Story (1995)", res.Selected.Title)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []int{8844, 949, 45325}, []int{res.Items[0].TMDBID, res.Items[1].TMDBID, res.Items[2].TMDBID})
	for _, it := range res.Items {
		assert.NotEqual(t, 862, it.TMDBID)
		assert.False(t, it.HasPoster)
	}
	require.Len(t, res.Grid, 1)

	require.Len(t, hist.entries, 1)
	assert.Equal(t, "pca", hist.entries[0].Algorithm)
	assert.Equal(t, 3, hist.entries[0].N)
	assert.Len(t, hist.entries[0].Items, 3)
}

func TestRecommend_DefaultNAndGrid(t *testing.T) {
	svc := NewRecommendService(newTestRepo(t), nil, nil)

	res, err := svc.Recommend(context.Background(), RecRequest{Algo: dataset.PCA, TMDBID: 949})
	require.NoError(t, err)

	// cluster 0 tiene 7 películas; sin Heat quedan 6 = default
	require.Len(t, res.Items, 6)
	require.Len(t, res.Grid, 2)
	assert.Len(t, res.Grid[0], 3)
	assert.Len(t, res.Grid[1], 3)
}

func TestRecommend_UsesSelectedDataset(t *testing.T) {
	svc := NewRecommendService(newTestRepo(t), nil, nil)

	res, err := svc.Recommend(context.Background(), RecRequest{Algo: dataset.NMF, TMDBID: 949})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Cluster)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Only In NMF", res.Items[0].Title)
}

func TestRecommend_NotFound(t *testing.T) {
	svc := NewRecommendService(newTestRepo(t), nil, nil)

	_, err := svc.Recommend(context.Background(), RecRequest{Algo: dataset.PCA, TMDBID: 1})
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestRecommend_HistoryErrorDoesNotFail(t *testing.T) {
	svc := NewRecommendService(newTestRepo(t), nil, &memHistory{err: errors.New("mongo down")})

	_, err := svc.Recommend(context.Background(), RecRequest{Algo: dataset.PCA, TMDBID: 862})
	assert.NoError(t, err)
}

func TestRecommend_WithPosters(t *testing.T) {
	src := newFakeSource()
	src.noPoster[8844] = true
	svc := NewRecommendService(newTestRepo(t), newTestPosters(t, src), nil)

	res, err := svc.Recommend(context.Background(), RecRequest{Algo: dataset.PCA, TMDBID: 862, N: 3, WithPosters: true})
	require.NoError(t, err)

	assert.Equal(t, "https://img/w500/862.jpg", res.Selected.PosterURL)
	assert.False(t, res.Items[0].HasPoster)
	assert.Equal(t, "https://img/w500/949.jpg", res.Items[1].PosterURL)
}

func TestRecommend_RecordAddsHistory(t *testing.T) {
	hist := &memHistory{}
	svc := NewRecommendService(newTestRepo(t), nil, hist)

	selected, err := svc.Selected(dataset.NMF, 949)
	require.NoError(t, err)
	recs, err := svc.Neighbors(dataset.NMF, *selected, 0)
	require.NoError(t, err)

	svc.Record(context.Background(), dataset.NMF, selected, recs, 0)

	require.Len(t, hist.entries, 1)
	assert.Equal(t, "nmf", hist.entries[0].Algorithm)
	assert.Equal(t, 5, hist.entries[0].Cluster)
	assert.Equal(t, DefaultN, hist.entries[0].N)
	require.Len(t, hist.entries[0].Items, 1)
	assert.Equal(t, "Only In NMF", hist.entries[0].Items[0].Title)

	// sin historial configurado no hace nada
	NewRecommendService(newTestRepo(t), nil, nil).Record(context.Background(), dataset.NMF, selected, recs, 0)
}

// ====== posters ======

func TestPosterService_CachesResult(t *testing.T) {
	src := newFakeSource()
	svc := newTestPosters(t, src)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := svc.Resolve(ctx, 862, "")
		require.NoError(t, err)
		assert.True(t, p.Available)
		assert.Equal(t, "w500", p.Size)
		assert.Equal(t, "https://img/w500/862.jpg", p.URL)
	}
	assert.Equal(t, 1, src.callsFor(862))

	// otro tamaño es otra entrada de cache
	p, err := svc.Resolve(ctx, 862, "w200")
	require.NoError(t, err)
	assert.Equal(t, "https://img/w200/862.jpg", p.URL)
	assert.Equal(t, 2, src.callsFor(862))
}

func TestPosterService_CachesMissingPoster(t *testing.T) {
	src := newFakeSource()
	src.fail[7] = tmdb.ErrNotFound
	svc := newTestPosters(t, src)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p, err := svc.Resolve(ctx, 7, "w200")
		require.NoError(t, err)
		assert.False(t, p.Available)
	}
	assert.Equal(t, 1, src.callsFor(7))
}

func TestPosterService_DoesNotCacheErrors(t *testing.T) {
	src := newFakeSource()
	src.fail[9] = errors.New("connection reset")
	svc := newTestPosters(t, src)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, 9, "")
	require.Error(t, err)
	_, err = svc.Resolve(ctx, 9, "")
	require.Error(t, err)
	assert.Equal(t, 2, src.callsFor(9))
}

// gatedSource bloquea GetMovie hasta que se cierra release (o se cancela el ctx de la llamada).
type gatedSource struct {
	*fakeSource
	release chan struct{}
	n       atomic.Int32
}

func newGatedSource() *gatedSource {
	return &gatedSource{fakeSource: newFakeSource(), release: make(chan struct{})}
}

func (g *gatedSource) GetMovie(ctx context.Context, id int) (*tmdb.Movie, error) {
	g.n.Add(1)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &tmdb.Movie{ID: id, PosterPath: "/" + itoa(id) + ".jpg"}, nil
}

func TestPosterService_CollapsesConcurrentLookups(t *testing.T) {
	src := newGatedSource()
	svc := newTestPosters(t, src)

	const callers = 8
	urls := make([]string, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := svc.Resolve(context.Background(), 862, "w500")
			assert.NoError(t, err)
			urls[i] = p.URL
		}()
	}

	require.Eventually(t, func() bool { return src.n.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.n.Load())
	for _, u := range urls {
		assert.Equal(t, "https://img/w500/862.jpg", u)
	}
}

func TestPosterService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := newGatedSource()
	svc := newTestPosters(t, src)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Resolve(ctxA, 862, "w200")
		errA <- err
	}()
	require.Eventually(t, func() bool { return src.n.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		p   models.Poster
		err error
	}
	resB := make(chan result, 1)
	go func() {
		p, err := svc.Resolve(context.Background(), 862, "w200")
		resB <- result{p, err}
	}()
	time.Sleep(50 * time.Millisecond)

	// el primer cliente se va mientras TMDB todavía no respondió
	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("el caller cancelado sigue esperando")
	}

	close(src.release)
	select {
	case r := <-resB:
		require.NoError(t, r.err)
		assert.Equal(t, "https://img/w200/862.jpg", r.p.URL)
		assert.True(t, r.p.Available)
	case <-time.After(time.Second):
		t.Fatal("el segundo caller no recibió el poster")
	}
	assert.Equal(t, int32(1), src.n.Load())
}

func TestPosterService_InvalidSize(t *testing.T) {
	svc := newTestPosters(t, newFakeSource())
	_, err := svc.Resolve(context.Background(), 862, "w9999")
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestPosterService_Image(t *testing.T) {
	src := newFakeSource()
	src.noPoster[5] = true
	svc := newTestPosters(t, src)

	img, err := svc.Image(context.Background(), 862, "w200")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.ContentType)

	_, err = svc.Image(context.Background(), 5, "w200")
	assert.ErrorIs(t, err, ErrPosterUnavailable)
}

func TestPosterService_CardsKeepOrderAndSurviveFailures(t *testing.T) {
	src := newFakeSource()
	src.fail[2] = errors.New("timeout")
	svc := newTestPosters(t, src)

	movies := []models.ClusteredMovie{{TMDBID: 1}, {TMDBID: 2}, {TMDBID: 3}}
	cards := svc.Cards(context.Background(), movies, "w200")

	require.Len(t, cards, 3)
	assert.Equal(t, 1, cards[0].TMDBID)
	assert.True(t, cards[0].HasPoster)
	assert.False(t, cards[1].HasPoster)
	assert.Equal(t, "https://img/w200/3.jpg", cards[2].PosterURL)
}

// ====== catálogo ======

func TestCatalog_Filter(t *testing.T) {
	svc := NewCatalogService(newTestRepo(t), nil)

	res, err := svc.Filter(FilterRequest{Algo: dataset.PCA, Genres: []string{"Romance", "Drama"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Summary.Matches)
	assert.Equal(t, 2, res.Summary.Clusters)
	assert.Equal(t, "Romance", res.Summary.PrimaryGenre)
	require.Len(t, res.Movies, 3)
	assert.Equal(t, "Grumpier Old Men (1995)", res.Movies[0].Title)

	paged, err := svc.Filter(FilterRequest{Algo: dataset.PCA, Genres: []string{"Romance", "Drama"}, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, paged.Summary.Matches)
	require.Len(t, paged.Movies, 1)
	assert.Equal(t, "Sabrina (1995)", paged.Movies[0].Title)

	none, err := svc.Filter(FilterRequest{Algo: dataset.PCA})
	require.NoError(t, err)
	assert.Empty(t, none.Movies)
	assert.Equal(t, 0, none.Summary.Matches)
}

func TestCatalog_ShowcaseSmallResultKeepsAll(t *testing.T) {
	svc := NewCatalogService(newTestRepo(t), newTestPosters(t, newFakeSource()))

	res, err := svc.Showcase(context.Background(), dataset.PCA, []string{"Action"}, "")
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "https://img/w200/949.jpg", res.Items[0].PosterURL)
	require.Len(t, res.Grid, 1)
}

func TestCatalog_ShowcaseSamplesFromFirstTwenty(t *testing.T) {
	var b strings.Builder
	b.WriteString("title,genres,tmdbId,cluster\n")
	for i := 1; i <= 30; i++ {
		b.WriteString("Movie " + itoa(i) + ",Drama," + itoa(i) + ",0\n")
	}
	tbl, err := dataset.Parse(dataset.PCA, strings.NewReader(b.String()))
	require.NoError(t, err)
	repo := repository.NewMovieRepository(dataset.NewRegistryFromTables(tbl))

	svc := NewCatalogService(repo, nil)
	// shuffle determinístico: invierte el pool
	svc.shuffle = func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}

	res, err := svc.Showcase(context.Background(), dataset.PCA, []string{"Drama"}, "")
	require.NoError(t, err)
	assert.Equal(t, 30, res.Summary.Matches)
	require.Len(t, res.Items, ShowcaseSize)
	assert.Equal(t, 20, res.Items[0].TMDBID)
	for _, it := range res.Items {
		assert.LessOrEqual(t, it.TMDBID, ShowcasePool)
	}
	require.Len(t, res.Grid, 2)
	assert.Len(t, res.Grid[0], 5)
}

func TestCatalog_MovieByTitle(t *testing.T) {
	svc := NewCatalogService(newTestRepo(t), nil)

	m, err := svc.MovieByTitle(dataset.PCA, "Heat (1995)")
	require.NoError(t, err)
	assert.Equal(t, 949, m.TMDBID)

	// existe solo en NMF
	_, err = svc.MovieByTitle(dataset.PCA, "Only In NMF")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestCatalog_Titles(t *testing.T) {
	svc := NewCatalogService(newTestRepo(t), nil)
	titles := svc.Titles()
	assert.Len(t, titles, 11)
	assert.Equal(t, "Only In NMF", titles[len(titles)-1])
}

// ====== admin / auth ======

func TestAdmin_HistoryDisabled(t *testing.T) {
	svc := NewAdminService(newTestRepo(t), nil)
	_, err := svc.History(context.Background(), 10)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestAdmin_HistoryDefaultsLimit(t *testing.T) {
	h := &memHistory{}
	for i := 0; i < 60; i++ {
		h.entries = append(h.entries, models.HistoryEntry{TMDBID: i})
	}
	svc := NewAdminService(newTestRepo(t), h)

	got, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

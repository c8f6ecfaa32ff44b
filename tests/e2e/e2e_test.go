package e2e

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"shorturl/cache"
	"shorturl/cache/inmemory"
	"shorturl/config"
	"shorturl/models"
	"shorturl/repository"
	"shorturl/server"
	"shorturl/shortener"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// memRepo stands in for the postgres table.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	urls   map[int64]*models.Url
}

func (m *memRepo) BaseChars(ctx context.Context) (string, error) {
	return config.DefaultBaseChars, nil
}

func (m *memRepo) Add(ctx context.Context, longURL string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.urls[m.nextID] = &models.Url{ID: m.nextID, LongURL: longURL, Created: time.Now()}
	return m.nextID, nil
}

func (m *memRepo) Get(ctx context.Context, id int64) (*models.Url, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	url, ok := m.urls[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *url
	return &copied, nil
}

func (m *memRepo) Increment(ctx context.Context, id int64, n int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	url, ok := m.urls[id]
	if !ok {
		return repository.ErrRecordNotFound
	}
	url.AccessCounter += n
	url.LastAccessed = &at
	return nil
}

func newExpect(t *testing.T) (*httpexpect.Expect, *shortener.Counter) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	// the next row gets id 1337
	repo := cache.New(&memRepo{nextID: 1336, urls: map[int64]*models.Url{}}, inmemory.New(time.Hour, time.Hour), logger)
	counter := shortener.NewCounter(repo, time.Hour, logger)
	engine := server.NewRouter(shortener.New(repo, counter, logger), logger, "http://sho.rt")

	e := httpexpect.WithConfig(httpexpect.Config{
		Client: &http.Client{
			Transport: httpexpect.NewBinder(engine),
			Jar:       httpexpect.NewJar(),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Reporter: httpexpect.NewAssertReporter(t),
		Printers: []httpexpect.Printer{
			httpexpect.NewDebugPrinter(t, true),
		},
	})
	return e, counter
}

func Test_Server_Health(t *testing.T) {
	e, _ := newExpect(t)

	e.GET("/health").
		Expect().
		Status(http.StatusOK).JSON().Object().
		ValueEqual("status", "ok").
		ValueEqual("radix", 53)
}

func Test_Server_shorten_redirect_and_info(t *testing.T) {
	e, counter := newExpect(t)

	created := e.POST("/api/v1/urls").
		WithJSON(map[string]string{"url": "example.com/page"}).
		Expect().
		Status(http.StatusOK).JSON().Object()
	created.ValueEqual("id", "An")
	created.ValueEqual("integerForm", 1337)
	created.ValueEqual("shortUrl", "http://sho.rt/An")

	e.GET("/An").
		Expect().
		Status(http.StatusFound).
		Header("Location").Equal("http://example.com/page")
	e.GET("/An").
		Expect().
		Status(http.StatusFound)

	counter.Flush(context.Background())

	info := e.GET("/api/v1/urls/An").
		Expect().
		Status(http.StatusOK).JSON().Object()
	info.ValueEqual("url", "http://example.com/page")
	info.ValueEqual("accessCounter", 2)
	info.Value("lastAccessed").String().NotEmpty()
	info.Value("created").String().NotEmpty()
}

func Test_Server_invalid_and_unknown_short_links(t *testing.T) {
	e, _ := newExpect(t)

	e.GET("/Bn").
		Expect().
		Status(http.StatusBadRequest).JSON().Object().ValueEqual("error", "invalid short link")
	e.GET("/An").
		Expect().
		Status(http.StatusNotFound)
	e.GET("/api/v1/urls/An").
		Expect().
		Status(http.StatusNotFound)
	e.POST("/api/v1/urls").
		WithJSON(map[string]string{"url": ""}).
		Expect().
		Status(http.StatusBadRequest)
}

func Test_Server_metrics(t *testing.T) {
	e, _ := newExpect(t)

	e.GET("/health").Expect().Status(http.StatusOK)
	e.GET("/metrics").
		Expect().
		Status(http.StatusOK).
		Body().Contains("shorturl_http_requests_total")
}

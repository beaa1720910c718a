package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopfront/internal/handlers"
	"shopfront/internal/models"
	"shopfront/internal/mykafka"
	"shopfront/internal/render"
	"shopfront/internal/repo"
	"shopfront/internal/service"
	"shopfront/internal/session"
	httpserver "shopfront/internal/transport/http"
	"shopfront/internal/upload"
	"shopfront/internal/validate"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Repo     *repo.GormRepo
	Sessions *session.Manager
	Uploads  *upload.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Session{}))

	r := &repo.GormRepo{DB: db}
	sessions := &session.Manager{Repo: r, TTL: time.Hour}
	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)

	renderer, err := render.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.Validator = validate.New()

	catalog := &service.CatalogService{Repo: r}
	prod := mykafka.NewProducer(nil)

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Auth: &service.AuthService{Repo: r}, Sessions: sessions, Producer: prod},
		ProductHandler: &handlers.ProductHandler{Catalog: catalog, Uploads: uploads, Producer: prod},
		SearchHandler:  &handlers.SearchHandler{Catalog: catalog},
		Sessions:       sessions,
		StaticDir:      t.TempDir(),
	}
	httpserver.Register(e, &deps)

	return &testEnv{T: t, E: e, DB: db, Repo: r, Sessions: sessions, Uploads: uploads}
}

func (env *testEnv) doGet(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// doMultipart posts fields plus an optional file part named "file". A nil
// fileBytes with an empty fileName omits the file part entirely.
func (env *testEnv) doMultipart(path string, fields map[string]string, fileName string, fileBytes []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	if fileName != "" || fileBytes != nil {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(env.T, err)
		_, err = fw.Write(fileBytes)
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "flash" && ck.Value != "" {
			return ck
		}
	}
	return nil
}

func jsonGet(path string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName && ck.Value != "" {
			return ck
		}
	}
	return nil
}

func (env *testEnv) register(email, name, password string) *http.Cookie {
	env.T.Helper()
	rec := env.doForm("/register", url.Values{
		"email":    {email},
		"name":     {name},
		"password": {password},
	})
	require.Equal(env.T, http.StatusSeeOther, rec.Code)
	ck := sessionCookie(env.T, rec)
	require.NotNil(env.T, ck)
	return ck
}

// loginAs seeds a user with the given role directly and returns a valid
// session cookie for it.
func (env *testEnv) loginAs(email, role string) *http.Cookie {
	env.T.Helper()

	user := models.User{Email: email, Name: "Test " + role, PasswordHash: "x", Role: role}
	require.NoError(env.T, env.DB.Create(&user).Error)

	ck, err := env.Sessions.Issue(env.T.Context(), user.ID)
	require.NoError(env.T, err)
	return ck
}

func (env *testEnv) productCount() int64 {
	env.T.Helper()
	var n int64
	require.NoError(env.T, env.DB.Model(&models.Product{}).Count(&n).Error)
	return n
}

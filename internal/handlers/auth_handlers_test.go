package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"shopfront/internal/models"
)

func TestRegisterCreatesUserAndLogsIn(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doForm("/register", url.Values{
		"email":    {"a@x.com"},
		"name":     {"Ann"},
		"password": {"pw1pw1"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/products", rec.Header().Get("Location"))

	ck := sessionCookie(t, rec)
	require.NotNil(t, ck, "registration should log the new user in")

	var user models.User
	require.NoError(t, env.DB.Where("email = ?", "a@x.com").First(&user).Error)
	require.Equal(t, "Ann", user.Name)
	require.Equal(t, "user", user.Role)
	require.NotEqual(t, "pw1pw1", user.PasswordHash)

	resolved, err := env.Sessions.Resolve(t.Context(), ck.Value)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register("a@x.com", "Ann", "pw1pw1")

	rec := env.doForm("/register", url.Values{
		"email":    {"a@x.com"},
		"name":     {"Other"},
		"password": {"different"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.Nil(t, sessionCookie(t, rec))

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "a duplicate registration must not create a second user")
}

func TestLoginLifecycle(t *testing.T) {
	env := newTestEnv(t)
	first := env.register("a@x.com", "Ann", "pw1pw1")

	firstUser, err := env.Sessions.Resolve(t.Context(), first.Value)
	require.NoError(t, err)

	// Log out: the session dies server-side, not just in the browser.
	rec := env.doGet("/logout", first)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	_, err = env.Sessions.Resolve(t.Context(), first.Value)
	require.Error(t, err)

	// Wrong password: anonymous, message names the password.
	rec = env.doForm("/login", url.Values{"email": {"a@x.com"}, "password": {"wrong"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Password incorrect, please try again")
	require.Nil(t, sessionCookie(t, rec))

	// Unknown email: distinct message, still anonymous.
	rec = env.doForm("/login", url.Values{"email": {"b@x.com"}, "password": {"pw1pw1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email provided")
	require.Nil(t, sessionCookie(t, rec))

	// Correct credentials: authenticated as the same user.
	rec = env.doForm("/login", url.Values{"email": {"a@x.com"}, "password": {"pw1pw1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/products", rec.Header().Get("Location"))

	second := sessionCookie(t, rec)
	require.NotNil(t, second)
	secondUser, err := env.Sessions.Resolve(t.Context(), second.Value)
	require.NoError(t, err)
	require.Equal(t, firstUser.ID, secondUser.ID)
}

func TestGuardsRedirectAnonymous(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/add_pro", "/view", "/modify?id=1", "/delete?id=1"} {
		rec := env.doGet(path)
		require.Equal(t, http.StatusFound, rec.Code, path)
		require.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestGuardsReturn401ForJSONClients(t *testing.T) {
	env := newTestEnv(t)

	req, rec := jsonGet("/add_pro")
	env.E.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardsRedirectNonStaffHome(t *testing.T) {
	env := newTestEnv(t)
	ck := env.register("user@x.com", "Plain", "pw1pw1")

	rec := env.doGet("/add_pro", ck)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestStaffReachManagementPages(t *testing.T) {
	env := newTestEnv(t)

	for _, role := range []string{"staff", "admin"} {
		ck := env.loginAs(role+"@x.com", role)

		rec := env.doGet("/add_pro", ck)
		require.Equal(t, http.StatusOK, rec.Code, role)
		require.Contains(t, rec.Body.String(), "Add product")

		rec = env.doGet("/view", ck)
		require.Equal(t, http.StatusOK, rec.Code, role)
	}
}

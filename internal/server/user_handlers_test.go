package server

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"bridgeforum/internal/models"
	"bridgeforum/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "ana", "ana@example.com", false)
	other := testutil.CreateUser(t, env.db, "luis", "luis@example.com", false)
	testutil.CreatePost(t, env.db, user, "mi semanal", 5)
	testutil.CreatePost(t, env.db, other, "la de luis", 5)

	resp := env.get(t, "/profile", env.login(t, user))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "ana@example.com")
	assert.Contains(t, body, "mi semanal")
	assert.NotContains(t, body, "la de luis")
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "ana", "ana@example.com", false)
	testutil.CreateUser(t, env.db, "luis", "luis@example.com", false)
	cookie := env.login(t, user)

	t.Run("PUT through method override with photo", func(t *testing.T) {
		resp := env.postMultipart(t, "/profile", map[string]string{
			"_method":    "PUT",
			"username":   "ana-maria",
			"country":    "España",
			"age":        "29",
			"profession": "Developer",
		}, "photo", testutil.TinyPNG(t, 16, 16), cookie)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/profile", resp.Header.Get("Location"))

		var stored models.User
		require.NoError(t, env.db.First(&stored, user.ID).Error)
		assert.Equal(t, "ana-maria", stored.Username)
		assert.Equal(t, "ana@example.com", stored.Email, "blank email keeps the current one")
		require.NotNil(t, stored.Age)
		assert.Equal(t, 29, *stored.Age)
		assert.Contains(t, stored.Photo, "/uploads/profiles/")
	})

	t.Run("Email taken", func(t *testing.T) {
		resp := env.postForm(t, "/profile", url.Values{"_method": {"PUT"}, "email": {"luis@example.com"}}, cookie)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/profile/update", resp.Header.Get("Location"))

		page := env.get(t, "/profile/update", cookie)
		assert.Equal(t, http.StatusOK, page.StatusCode)
		assert.Contains(t, readBody(t, page), `<p class="flash-error">`)
	})

	t.Run("Invalid age", func(t *testing.T) {
		resp := env.postForm(t, "/profile", url.Values{"_method": {"PUT"}, "age": {"-3"}}, cookie)
		assert.Equal(t, "/profile/update", resp.Header.Get("Location"))
	})
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "ana", "ana@example.com", false)
	testutil.CreateUser(t, env.db, "profe", "profe@example.com", true)

	resp := env.get(t, "/usuarios", env.login(t, user))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "ana@example.com")
	assert.Contains(t, body, "profe (admin)")
}

func TestListUsers_PagesPastTheDefaultLimit(t *testing.T) {
	env := newTestEnv(t)
	viewer := testutil.CreateUser(t, env.db, "ana", "ana@example.com", false)
	extra := make([]*models.User, maxPaginationLimit+4)
	for i := range extra {
		extra[i] = &models.User{Username: fmt.Sprintf("alumno%03d", i), Email: fmt.Sprintf("alumno%03d@example.com", i), Password: "x"}
	}
	require.NoError(t, env.db.CreateInBatches(extra, 50).Error)
	cookie := env.login(t, viewer)

	body := readBody(t, env.get(t, "/usuarios", cookie))
	assert.Contains(t, body, "ana@example.com")
	assert.NotContains(t, body, "alumno102@example.com")
	assert.Contains(t, body, fmt.Sprintf("offset=%d", maxPaginationLimit))
	assert.NotContains(t, body, "Anteriores")

	body = readBody(t, env.get(t, fmt.Sprintf("/usuarios?offset=%d", maxPaginationLimit), cookie))
	assert.Contains(t, body, "alumno102@example.com")
	assert.Contains(t, body, "alumno103@example.com")
	assert.Contains(t, body, "Anteriores")
	assert.NotContains(t, body, "Siguientes")
}

package handler_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"Lee_Groups/internal/model"
)

func TestRegister(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("duplicate email never creates a second user", func(t *testing.T) {
		registerUser(t, env, "ada", "lovelace", "ada@test.com", "secret1")

		w := performForm(t, env, http.MethodPost, "/register", url.Values{
			"first":    {"ada"},
			"last":     {"again"},
			"email":    {"ada@test.com"},
			"password": {"secret9"},
			"confirm":  {"secret9"},
		}, "")
		assertRedirect(t, w, http.StatusSeeOther, "/login")

		var count int64
		env.db.Model(&model.User{}).Where("email = ?", "ada@test.com").Count(&count)
		if count != 1 {
			t.Fatalf("expected 1 user, got %d", count)
		}
	})

	t.Run("allow-listed email becomes admin", func(t *testing.T) {
		admin, _ := registerUser(t, env, "root", "user", "admin@test.com", "secret1")
		if !admin.Admin {
			t.Fatal("expected allow-listed email to get admin=true")
		}

		plain, _ := registerUser(t, env, "joe", "plain", "joe@test.com", "secret1")
		if plain.Admin {
			t.Fatal("expected non-listed email to get admin=false")
		}
	})

	t.Run("names are title-cased", func(t *testing.T) {
		user, _ := registerUser(t, env, "grace", "hopper", "grace@test.com", "secret1")
		if user.FirstName != "Grace" || user.LastName != "Hopper" {
			t.Fatalf("expected title-cased names, got %q %q", user.FirstName, user.LastName)
		}
		if user.PublicID == "" {
			t.Fatal("expected a public id")
		}
		if strings.Contains(user.Password, "secret1") {
			t.Fatal("password stored in clear")
		}
		if !strings.HasPrefix(user.Password, "$2") {
			t.Fatalf("expected bcrypt hash with algorithm identifier, got %q", user.Password)
		}
	})

	t.Run("password mismatch is rejected", func(t *testing.T) {
		w := performForm(t, env, http.MethodPost, "/register", url.Values{
			"first":    {"bad"},
			"last":     {"form"},
			"email":    {"bad@test.com"},
			"password": {"secret1"},
			"confirm":  {"secret2"},
		}, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "password does not match") {
			t.Fatalf("expected field error in body, got %s", w.Body.String())
		}

		var count int64
		env.db.Model(&model.User{}).Where("email = ?", "bad@test.com").Count(&count)
		if count != 0 {
			t.Fatal("mismatched form must not create a user")
		}
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		w := performForm(t, env, http.MethodPost, "/register", url.Values{
			"first":    {"bad"},
			"last":     {"mail"},
			"email":    {"not-an-email"},
			"password": {"secret1"},
			"confirm":  {"secret1"},
		}, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestLogin(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "ada", "lovelace", "ada@test.com", "secret1")

	t.Run("unknown email redirects to register", func(t *testing.T) {
		w := performForm(t, env, http.MethodPost, "/login", url.Values{
			"email":    {"nobody@test.com"},
			"password": {"secret1"},
		}, "")
		assertRedirect(t, w, http.StatusSeeOther, "/register")
	})

	t.Run("wrong password never establishes a session", func(t *testing.T) {
		w := performForm(t, env, http.MethodPost, "/login", url.Values{
			"email":    {"ada@test.com"},
			"password": {"secret2"},
		}, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected re-rendered form, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Incorrect Password") {
			t.Fatal("expected incorrect-password notice")
		}
		if sessionCookie(t, w) != "" {
			t.Fatal("wrong password must not set a session cookie")
		}
	})

	t.Run("correct password logs in", func(t *testing.T) {
		w := performForm(t, env, http.MethodPost, "/login", url.Values{
			"email":    {"ada@test.com"},
			"password": {"secret1"},
		}, "")
		assertRedirect(t, w, http.StatusSeeOther, "/")
		if sessionCookie(t, w) == "" {
			t.Fatal("expected a session cookie")
		}
	})
}

func TestRequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("anonymous callers are redirected to login", func(t *testing.T) {
		for _, path := range []string{"/profile", "/add-groups", "/group?group=x", "/join?group=x"} {
			w := performGet(t, env, path, "")
			assertRedirect(t, w, http.StatusFound, "/login")
		}
	})

	t.Run("garbage session token is rejected", func(t *testing.T) {
		w := performGet(t, env, "/profile", "not-a-token")
		assertRedirect(t, w, http.StatusFound, "/login")
	})
}

func TestLogout(t *testing.T) {
	env := setupTestEnv(t)
	_, cookie := registerUser(t, env, "ada", "lovelace", "ada@test.com", "secret1")

	w := performGet(t, env, "/logout", cookie)
	assertRedirect(t, w, http.StatusSeeOther, "/login")

	found := false
	for _, sc := range w.Header().Values("Set-Cookie") {
		if strings.HasPrefix(sc, "session=") && strings.Contains(sc, "Max-Age=0") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected logout to expire the session cookie")
	}
}

func TestProfile(t *testing.T) {
	env := setupTestEnv(t)
	_, cookie := registerUser(t, env, "ada", "lovelace", "ada@test.com", "secret1")
	createGroup(t, env, cookie, "machines")

	w := performGet(t, env, "/profile", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Machines") {
		t.Fatal("expected owned group on profile page")
	}
}

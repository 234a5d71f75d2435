package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/panel/internal/session"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, newStore func(t *testing.T) session.Store) {
	t.Run("empty store reports absent", func(t *testing.T) {
		s := newStore(t)
		tok, ok := s.Get()
		assert.False(t, ok)
		assert.Empty(t, tok)
	})

	t.Run("set then get returns the token", func(t *testing.T) {
		s := newStore(t)
		s.Set("tok-1")
		tok, ok := s.Get()
		assert.True(t, ok)
		assert.Equal(t, session.Token("tok-1"), tok)
	})

	t.Run("set replaces the previous token", func(t *testing.T) {
		s := newStore(t)
		s.Set("tok-1")
		s.Set("tok-2")
		tok, _ := s.Get()
		assert.Equal(t, session.Token("tok-2"), tok)
	})

	t.Run("clear removes the token", func(t *testing.T) {
		s := newStore(t)
		s.Set("tok-1")
		s.Clear()
		_, ok := s.Get()
		assert.False(t, ok)
	})

	t.Run("clear on empty store is a no-op", func(t *testing.T) {
		s := newStore(t)
		s.Clear()
		s.Clear()
		tok, ok := s.Get()
		assert.False(t, ok)
		assert.Empty(t, tok)
	})

	t.Run("empty token counts as no session", func(t *testing.T) {
		s := newStore(t)
		s.Set("")
		_, ok := s.Get()
		assert.False(t, ok)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, func(t *testing.T) session.Store {
		return &session.MemoryStore{}
	})

	t.Run("constructor seeds the slot", func(t *testing.T) {
		tok, ok := session.NewMemoryStore("seed").Get()
		assert.True(t, ok)
		assert.Equal(t, session.Token("seed"), tok)
	})
}

func TestFileStore(t *testing.T) {
	storeContract(t, func(t *testing.T) session.Store {
		return session.NewFileStore(afero.NewMemMapFs(), "/home/admin/.panel/session")
	})

	t.Run("token survives a new store on the same file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		session.NewFileStore(fs, "/p/session").Set("tok-9")

		tok, ok := session.NewFileStore(fs, "/p/session").Get()
		assert.True(t, ok)
		assert.Equal(t, session.Token("tok-9"), tok)
	})

	t.Run("file is private to the owner", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		session.NewFileStore(fs, "/p/session").Set("tok-9")

		info, err := fs.Stat("/p/session")
		require.NoError(t, err)
		assert.Equal(t, "-rw-------", info.Mode().Perm().String())
	})

	t.Run("trailing whitespace is ignored", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/p/session", []byte("tok-3\n"), 0o600))

		tok, ok := session.NewFileStore(fs, "/p/session").Get()
		assert.True(t, ok)
		assert.Equal(t, session.Token("tok-3"), tok)
	})

	t.Run("unavailable storage reads as absent", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		s := session.NewFileStore(fs, "/p/session")
		s.Set("tok-1")
		_, ok := s.Get()
		assert.False(t, ok)
	})
}

// newEchoContext runs the session middleware once so c carries a store,
// the same way the server wires it.
func newEchoContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	cookieStore := sessions.NewCookieStore([]byte(testSessionSecret))

	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	_ = echosession.Middleware(cookieStore)(handler)(e.NewContext(req, rec))
	return c, rec
}

func TestCookieStore(t *testing.T) {
	storeContract(t, func(t *testing.T) session.Store {
		c, _ := newEchoContext(httptest.NewRequest(http.MethodGet, "/", nil))
		return session.ForContext(c)
	})

	t.Run("token round-trips through the response cookie", func(t *testing.T) {
		c, rec := newEchoContext(httptest.NewRequest(http.MethodGet, "/", nil))
		session.ForContext(c).Set("tok-1")

		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)

		next := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range cookies {
			next.AddCookie(ck)
		}
		c2, _ := newEchoContext(next)
		tok, ok := session.ForContext(c2).Get()
		assert.True(t, ok)
		assert.Equal(t, session.Token("tok-1"), tok)
	})

	t.Run("tampered cookie reads as absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})
		c, _ := newEchoContext(req)

		_, ok := session.ForContext(c).Get()
		assert.False(t, ok)
	})

	t.Run("missing session middleware reads as absent", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		s := session.ForContext(c)
		s.Set("tok-1")
		_, ok := s.Get()
		assert.False(t, ok)
	})
}

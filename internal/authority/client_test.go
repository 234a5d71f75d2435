package authority_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nfrund/panel/internal/authority"
	"github.com/nfrund/panel/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthority(t *testing.T, handler http.HandlerFunc) *authority.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return authority.NewClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	t.Run("returns the issued token", func(t *testing.T) {
		var got authority.Credentials
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/admins/login", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"token": "tok-1"}})
		})

		tok, err := client.Login(context.Background(), authority.Credentials{Email: "a@b.co", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, session.Token("tok-1"), tok)
		assert.Equal(t, "a@b.co", got.Email)
		assert.Equal(t, "pw", got.Password)
	})

	t.Run("surfaces the authority message verbatim", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Wrong password, try again"})
		})

		_, err := client.Login(context.Background(), authority.Credentials{Email: "a@b.co", Password: "x"})
		var loginErr *authority.LoginError
		require.ErrorAs(t, err, &loginErr)
		assert.Equal(t, "Wrong password, try again", loginErr.Message)
	})

	t.Run("success without token is an error", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		})

		_, err := client.Login(context.Background(), authority.Credentials{Email: "a@b.co", Password: "x"})
		assert.ErrorIs(t, err, authority.ErrMissingToken)
	})

	t.Run("server error without message keeps the status error", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Login(context.Background(), authority.Credentials{Email: "a@b.co", Password: "x"})
		assert.ErrorIs(t, err, authority.ErrUnexpectedStatus)
	})
}

func TestValidate(t *testing.T) {
	t.Run("success is valid and carries the user", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/validate", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"email": "root@panel.io", "role": "owner"}})
		})

		out := client.Validate(context.Background(), "tok-1")
		assert.Equal(t, authority.Valid, out.Kind)
		require.NotNil(t, out.User)
		assert.Equal(t, "root@panel.io", out.User.Email)
		assert.Equal(t, "owner", out.User.Role)
	})

	t.Run("success false is invalid", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false})
		})
		assert.Equal(t, authority.Invalid, client.Validate(context.Background(), "tok-2").Kind)
	})

	t.Run("non-2xx status is invalid", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
		})
		out := client.Validate(context.Background(), "tok-2")
		assert.Equal(t, authority.Invalid, out.Kind)
		assert.ErrorIs(t, out.Err, authority.ErrUnexpectedStatus)
	})

	t.Run("closed server is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := authority.NewClient(srv.URL)

		out := client.Validate(context.Background(), "tok-3")
		assert.Equal(t, authority.Unreachable, out.Kind)
		assert.Error(t, out.Err)
	})

	t.Run("garbage body is unreachable", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>proxy error</html>"))
		})
		assert.Equal(t, authority.Unreachable, client.Validate(context.Background(), "tok-3").Kind)
	})

	t.Run("timeout is unreachable", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(srv.Close)
		t.Cleanup(func() { close(release) })
		client := authority.NewClient(srv.URL, authority.WithTimeout(20*time.Millisecond))

		assert.Equal(t, authority.Unreachable, client.Validate(context.Background(), "tok-3").Kind)
	})
}

func TestDashboardSummary(t *testing.T) {
	t.Run("decodes the counts", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admins/dashboard", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": authority.Summary{Products: 12, Categories: 3, Brands: 4, Customers: 1500, Admins: 2, Roles: 5}})
		})

		sum, err := client.DashboardSummary(context.Background(), "tok-1")
		require.NoError(t, err)
		assert.Equal(t, 12, sum.Products)
		assert.Equal(t, 1500, sum.Customers)
		assert.Equal(t, 5, sum.Roles)
	})

	t.Run("unsuccessful envelope is an error", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "forbidden"})
		})
		_, err := client.DashboardSummary(context.Background(), "tok-1")
		assert.ErrorIs(t, err, authority.ErrUnsuccessful)
	})

	t.Run("missing data is an error", func(t *testing.T) {
		client := newAuthority(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		})
		_, err := client.DashboardSummary(context.Background(), "tok-1")
		assert.ErrorIs(t, err, authority.ErrMissingData)
	})
}

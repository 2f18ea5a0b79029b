package admin

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newProtected(verify TokenVerifier) http.Handler {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return RequireAdminToken(verify, logger)(ok)
}

func TestRequireAdminToken(t *testing.T) {
	t.Run("rejects missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newProtected(PlainToken("secret")).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("accepts plain token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(HeaderAdminToken, "secret")
		rec := httptest.NewRecorder()
		newProtected(PlainToken("secret")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("empty configured token never matches", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(HeaderAdminToken, "")
		rec := httptest.NewRecorder()
		newProtected(PlainToken("")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("accepts bcrypt hashed token", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(HeaderAdminToken, "secret")
		rec := httptest.NewRecorder()
		newProtected(HashedToken(string(hash))).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		req.Header.Set(HeaderAdminToken, "wrong")
		rec = httptest.NewRecorder()
		newProtected(HashedToken(string(hash))).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

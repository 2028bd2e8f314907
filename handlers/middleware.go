package handlers

import (
	"context"
	"net/http"
	"strings"

	gorilla "github.com/gorilla/handlers"
	log "github.com/sirupsen/logrus"

	"github.com/readmosaic/a11y-settings-api/handlers/middleware"
	"github.com/readmosaic/a11y-settings-api/users"
)

func UseCors(h http.Handler) http.Handler {
	return gorilla.CORS(gorilla.AllowedOrigins([]string{"*"}))(h)
}

func UseLogging(h http.Handler) http.Handler {
	return middleware.LoggingHandler(h)
}

func UseCompress(h http.Handler) http.Handler {
	return gorilla.CompressHandler(h)
}

func UseJson(h http.Handler) http.Handler {
	// Only PUT, POST, and PATCH requests are considered.
	return gorilla.ContentTypeHandler(h, "application/json")
}

type contextKey string

const userContextKey contextKey = "user"

// UseAuthentication resolves the Authorization bearer token to a user
// and stores it in the request context. An absent or unknown token
// leaves the request anonymous; lookup failures are logged and the
// request continues anonymously as well.
func UseAuthentication(h http.Handler, userService users.Service) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)

		user, err := userService.GetCurrentUser(r.Context(), token)
		if err != nil {
			log.WithFields(log.Fields{"error": err}).Warn("Could not resolve current user")
		}

		if user != nil {
			r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
		}

		h.ServeHTTP(rw, r)
	})
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *users.User {
	u, _ := ctx.Value(userContextKey).(*users.User)
	return u
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

package middleware

import (
	"context"
	"net/http"

	"github.com/amaumene/movieshelf/internal/models"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// Authenticator checks credentials
type Authenticator interface {
	Authenticate(username, password string) (*models.User, error)
}

type contextKey string

const userContextKey = contextKey("user")

// RequireUser authenticates the request with HTTP basic auth and stores the
// user in the request context
func RequireUser(auth Authenticator, logger *logrus.Logger, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="movieshelf"`)
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		user, err := auth.Authenticate(username, password)
		if err != nil {
			logger.WithField("username", username).Warn("Authentication failed")
			w.Header().Set("WWW-Authenticate", `Basic realm="movieshelf"`)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx), ps)
	}
}

// UserFrom returns the user stored by RequireUser, or nil
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// Package session handles the load-time bootstrap: who the local user is,
// and the category metadata that seeds the pool-selection grid.
package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Mithesh14/ipl-auction/clients"
	"github.com/Mithesh14/ipl-auction/internal/models"
)

// ErrUnauthorized means there is no valid server session; the caller
// should send the user back to the login flow.
var ErrUnauthorized = errors.New("session: not authenticated")

// API is the slice of the REST client the bootstrap needs.
type API interface {
	UserInfo(ctx context.Context) (models.User, error)
	Init(ctx context.Context) ([]string, models.CategoryInfo, error)
}

// Result is the outcome of a successful bootstrap. Categories may be empty
// when the init call failed; the grid is simply left empty in that case.
type Result struct {
	User         models.User
	Categories   []string
	CategoryInfo models.CategoryInfo
}

// Bootstrap fetches the current user and the category metadata. A failed
// or rejected user-info call is an ErrUnauthorized; a failed init call is
// logged and tolerated with no retry.
func Bootstrap(ctx context.Context, api API, log zerolog.Logger) (*Result, error) {
	user, err := api.UserInfo(ctx)
	if err != nil {
		var statusErr *clients.StatusError
		if errors.As(err, &statusErr) {
			log.Warn().Int("status", statusErr.Code).Msg("no valid session, redirecting to login")
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	result := &Result{User: user}

	categories, info, err := api.Init(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load categories")
		return result, nil
	}
	result.Categories = categories
	result.CategoryInfo = info
	return result, nil
}

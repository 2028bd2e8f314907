package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readmosaic/a11y-settings-api/datastore"
	apperrors "github.com/readmosaic/a11y-settings-api/errors"
)

// Service defines the API for user management.
type Service interface {
	// GetCurrentUser resolves an API token to a user. An empty or
	// unknown token resolves to (nil, nil): anonymous is not an error.
	GetCurrentUser(ctx context.Context, token string) (*User, error)
	Create(ctx context.Context, username string) (*User, error)
	Details(ctx context.Context, id uuid.UUID) (*User, error)
	List(limit, offset int) ([]User, error)
}

type ServiceImpl struct {
	store Store
}

// NewService initiates a new user service.
func NewService(store Store) Service {
	return &ServiceImpl{store}
}

func (svc *ServiceImpl) GetCurrentUser(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, nil
	}

	u, err := svc.store.UserByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func (svc *ServiceImpl) Create(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, &apperrors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf(`not a valid username: "%s"`, username),
		}
	}

	u := &User{
		ID:       uuid.New(),
		Username: username,
		APIToken: uuid.NewString(),
	}

	if err := svc.store.InsertUser(u); err != nil {
		return nil, err
	}

	return u, nil
}

func (svc *ServiceImpl) Details(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := svc.store.User(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.RequestError{
				StatusCode: http.StatusNotFound,
				Err:        fmt.Errorf("user not found"),
			}
		}
		return nil, err
	}

	// Details responses never carry the token
	u.APIToken = ""

	return u, nil
}

func (svc *ServiceImpl) List(limit, offset int) ([]User, error) {
	o := datastore.ParseListOptions(limit, offset)

	uu, err := svc.store.Users(o)
	if err != nil {
		return nil, err
	}

	for i := range uu {
		uu[i].APIToken = ""
	}

	return uu, nil
}

package auth

import (
	"errors"
	"net/http"

	"wealthtracker/internal/user"
)

var ErrInternalError = errors.New("internal Server Error")

type UserService interface {
	Authenticate(loginOrEmail, password string) (*user.User, error)
	GetUserByID(userID string) (*user.User, error)
}

type Service interface {
	Login(loginOrEmail, password string) (string, *user.User, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	jwtManager  JWTManagerInterface
	userService UserService
}

func NewAuthService(jwtManager JWTManagerInterface, userService UserService) Service {
	return &service{jwtManager: jwtManager, userService: userService}
}

// Login verifies credentials and issues a short-lived access token.
func (s *service) Login(loginOrEmail, password string) (string, *user.User, error) {
	existingUser, err := s.userService.Authenticate(loginOrEmail, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, defaultJWTDuration)
	if err != nil {
		return "", nil, ErrInternalError
	}
	return token, existingUser, nil
}

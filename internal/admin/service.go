package admin

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/shreepawar22/quickserve/internal/restaurant"
)

var (
	ErrPasswordMismatch   = errors.New("passwords don't match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrImageRequired      = errors.New("restaurant image is required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Defaults applied to a freshly registered restaurant.
const (
	newRestaurantDeliveryTime = "30-45 min"
	newRestaurantMinOrder     = 200
)

// StepOneInput is the account half of the two-phase registration.
type StepOneInput struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// StepTwoInput is the restaurant half, submitted as multipart form
// data. ImageFilename is the stored name of the uploaded cover image.
type StepTwoInput struct {
	StepOneInput
	RestaurantName string `validate:"required"`
	Address        string `validate:"required"`
	CuisineType    string `validate:"required"`
	PhoneNumber    string `validate:"required"`
	ImageFilename  string
}

// Registered is what the registration endpoint returns on success.
type Registered struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	RestaurantID string `json:"restaurantId"`
}

type Service struct {
	repo        Repository
	restaurants restaurant.Repository
}

func NewService(repo Repository, restaurants restaurant.Repository) *Service {
	return &Service{repo: repo, restaurants: restaurants}
}

// RegisterStepOne checks the password rules and that the username and
// email are not taken. No state is created; the caller proceeds to
// step two with the same credentials.
func (s *Service) RegisterStepOne(in StepOneInput) error {
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(in.Password) < 6 {
		return ErrPasswordTooShort
	}

	admins, err := s.repo.All()
	if err != nil {
		return err
	}
	for _, a := range admins {
		if a.Username == in.Username {
			return ErrUsernameExists
		}
		if a.Email == in.Email {
			return ErrEmailExists
		}
	}
	return nil
}

// RegisterStepTwo re-runs the step-one checks, creates the restaurant
// and the admin account, and returns the registered identity.
func (s *Service) RegisterStepTwo(in StepTwoInput) (*Registered, error) {
	if err := s.RegisterStepOne(in.StepOneInput); err != nil {
		return nil, err
	}
	if in.ImageFilename == "" {
		return nil, ErrImageRequired
	}

	restaurantID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate restaurant id: %w", err)
	}
	adminID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin id: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	r := restaurant.Restaurant{
		ID:           restaurantID.String(),
		Name:         in.RestaurantName,
		Cuisine:      in.CuisineType,
		Rating:       0,
		DeliveryTime: newRestaurantDeliveryTime,
		MinOrder:     newRestaurantMinOrder,
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		Image:        in.ImageFilename,
	}
	if err := s.restaurants.Save(r); err != nil {
		log.Error().Err(err).Str("restaurant", in.RestaurantName).Msg("failed to create restaurant during registration")
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	a := Admin{
		ID:           adminID.String(),
		Username:     in.Username,
		Email:        in.Email,
		Password:     in.Password,
		PasswordHash: string(hash),
		RestaurantID: r.ID,
		Profile: Profile{
			RestaurantName: in.RestaurantName,
			Address:        in.Address,
			CuisineType:    in.CuisineType,
			PhoneNumber:    in.PhoneNumber,
			CoverImage:     in.ImageFilename,
		},
	}
	if err := s.repo.Append(a); err != nil {
		log.Error().Err(err).Str("username", in.Username).Msg("failed to store admin during registration")
		return nil, fmt.Errorf("failed to store admin: %w", err)
	}

	log.Info().Str("username", a.Username).Str("restaurant_id", a.RestaurantID).Msg("admin registered")

	return &Registered{Username: a.Username, Email: a.Email, RestaurantID: a.RestaurantID}, nil
}

// Login compares the plaintext credential and opens a session. Unknown
// usernames and wrong passwords get the same error.
func (s *Service) Login(username, password string) (*Session, error) {
	a, err := s.repo.ByUsername(username)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if a.Password != password {
		log.Warn().Str("username", username).Msg("login rejected")
		return nil, ErrInvalidCredentials
	}

	session := Session{Username: a.Username, Email: a.Email, RestaurantID: a.RestaurantID}
	if err := s.repo.SaveSession(session); err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Msg("admin signed in")
	return &session, nil
}

func (s *Service) Logout() error {
	return s.repo.ClearSession()
}

// Current resolves the signed-in admin. A session pointing at a
// deleted admin record surfaces ErrAdminNotFound so the caller can
// redirect to a safe entry point.
func (s *Service) Current() (*Admin, error) {
	session, err := s.repo.Session()
	if err != nil {
		return nil, err
	}
	return s.repo.ByUsername(session.Username)
}

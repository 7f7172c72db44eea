package customer

import (
	"context"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/auth"
)

var (
	ErrEmailExists        = api.Conflict("email already registered")
	ErrInvalidCredentials = api.NewError(api.KindUnauthorized, "invalid email or password")
	ErrCustomerNotFound   = api.NotFound("customer not found")
	ErrGroupNotFound      = api.NotFound("group not found")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)
	GetByID(ctx context.Context, id int) (*Customer, error)
	CustomerData(ctx context.Context, lang string, all bool) ([]map[string]any, error)
	AddToGroup(ctx context.Context, customerID, groupID int) error
}

type service struct {
	repo   Repository
	tokens *auth.Issuer
}

func NewService(repo Repository, tokens *auth.Issuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, req.Email, req.FirstName, req.LastName, passwordHash)
	if err != nil {
		return nil, err
	}

	return s.issue(c)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	c, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if api.IsKind(err, api.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(c.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(c)
}

func (s *service) issue(c *Customer) (*LoginResponse, error) {
	pair, err := s.tokens.Pair(c.Identity())
	if err != nil {
		return nil, err
	}
	return &LoginResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, Customer: *c}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials.WithDetail(err.Error())
	}

	// Role may have changed since the refresh token was issued.
	c, err := s.repo.FindByID(ctx, claims.CustomerID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.Access(c.Identity())
	if err != nil {
		return nil, err
	}

	return &LoginResponse{AccessToken: accessToken, Customer: *c}, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) CustomerData(ctx context.Context, lang string, all bool) ([]map[string]any, error) {
	if lang != LangEN && lang != LangES {
		return nil, ErrUnsupportedLanguage.WithDetail(lang)
	}

	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(customers))
	for i := range customers {
		row, err := Translate(&customers[i], lang, all)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *service) AddToGroup(ctx context.Context, customerID, groupID int) error {
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		return err
	}

	ok, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGroupNotFound
	}

	return s.repo.AddToGroup(ctx, customerID, groupID)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"health_edu_backend/internal/config"
	"health_edu_backend/internal/model"
	"health_edu_backend/internal/repository"
	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"
	"health_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const revokedTokenPrefix = "revoked-token:"

type AuthService struct {
	ProfileRepo *repository.ProfileRepository
	KV          store.KV
	Cfg         *config.Config
	Now         func() time.Time
}

func NewAuthService(profileRepo *repository.ProfileRepository, kv store.KV, cfg *config.Config) *AuthService {
	return &AuthService{
		ProfileRepo: profileRepo,
		KV:          kv,
		Cfg:         cfg,
		Now:         time.Now,
	}
}

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName"`
	Age         *int   `json:"age"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
}

type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Profile   *model.Profile `json:"profile"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.Profile, error) {
	in.Email = normalizeEmail(in.Email)
	// 与请求绑定使用同一套校验规则
	if err := binding.Validator.ValidateStruct(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
	}
	email := in.Email

	existing, err := s.ProfileRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	profile := &model.Profile{
		DisplayName:  name,
		Email:        email,
		PasswordHash: string(hashed),
		Age:          in.Age,
		Gender:       in.Gender,
		Country:      in.Country,
	}
	if err := s.ProfileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	logger.Log.Info("profile registered", zap.Uint("user_id", profile.ID))
	return profile, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	profile, err := s.ProfileRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, claims, err := util.GenerateJWT(profile, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime, s.Now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, Profile: profile}, nil
}

// CurrentSession resolves a bearer token. An empty token is demo mode and
// returns (nil, nil).
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, util.ErrInvalidToken
	}
	revoked, err := s.KV.Exists(ctx, revokedTokenPrefix+claims.ID)
	if err != nil {
		// 黑名单不可用时不阻止已签名的令牌
		logger.Log.Warn("token denylist unavailable", zap.String("token_id", claims.ID), zap.Error(err))
	}
	if revoked {
		return nil, util.ErrInvalidToken
	}
	return claims.Session(), nil
}

// SignOut denylists the token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, session *model.Session) error {
	if session == nil || session.TokenID == "" {
		return nil
	}
	ttl := session.ExpiresAt.Sub(s.Now())
	if ttl <= 0 {
		return nil
	}
	return s.KV.Set(ctx, revokedTokenPrefix+session.TokenID, []byte("1"), ttl)
}

func (s *AuthService) Profile(ctx context.Context, session *model.Session) (*model.Profile, error) {
	if session == nil {
		return nil, util.ErrSessionRequired
	}
	profile, err := s.ProfileRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return profile, nil
}

type ProfileUpdate struct {
	DisplayName string `json:"displayName"`
	Age         *int   `json:"age"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
}

func (s *AuthService) UpdateProfile(ctx context.Context, session *model.Session, in ProfileUpdate) (*model.Profile, error) {
	profile, err := s.Profile(ctx, session)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.DisplayName); name != "" {
		profile.DisplayName = name
	}
	profile.Age = in.Age
	profile.Gender = in.Gender
	profile.Country = in.Country
	if err := s.ProfileRepo.UpdateDetails(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

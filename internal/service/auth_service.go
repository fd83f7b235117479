package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/user"
	rep "projectTracker/internal/repository"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type AuthService struct {
	repo     UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repo UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return AuthService{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Register создаёт пользователя. Email нормализуется к нижнему регистру,
// хэш пароля наружу не отдаётся и не логируется.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("email", "неверный формат email")
	}
	if name == "" {
		return nil, NewValidationError("name", "не может быть пустым")
	}
	if len(password) < minPasswordLen {
		return nil, NewValidationError("password", "минимальная длина 8 символов")
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("проверка email: %w", err)
	}
	if exists {
		return nil, NewEmailTaken(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("хэширование пароля: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, rep.ErrEmailTaken) {
			return nil, NewEmailTaken(email)
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	logger.Info("Service: Пользователь зарегистрирован", zap.String("user_id", u.ID.String()))
	return u, nil
}

// Login проверяет учётные данные и выдаёт подписанный токен. Неизвестный
// email и неверный пароль дают одинаковую ошибку.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return "", NewInvalidCredentials()
		}
		return "", fmt.Errorf("получение пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", NewInvalidCredentials()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.ID.String(),
		"exp": now().Add(s.tokenTTL).Unix(),
		"iat": now().Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("подпись токена: %w", err)
	}

	logger.Info("Service: Выдан токен", zap.String("user_id", u.ID.String()))
	return signed, nil
}

// ParseToken извлекает id пользователя из bearer-токена.
func (s *AuthService) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("разбор токена: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("недействительный токен")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("токен без субъекта")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("разбор id из токена: %w", err)
	}
	return id, nil
}

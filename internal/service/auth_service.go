package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Claims are carried in the bearer token.
type Claims struct {
	EmployeeID int    `json:"emplid"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// CanAccess reports whether the token holder may read or write employeeID's
// records.
func (c *Claims) CanAccess(employeeID int) bool {
	return c.EmployeeID == employeeID || c.Role == models.RoleManager
}

type AuthService struct {
	employees *repository.EmployeeRepository
	secret    []byte
	ttl       time.Duration
	logger    *zap.Logger
}

func NewAuthService(employees *repository.EmployeeRepository, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		employees: employees,
		secret:    []byte(secret),
		ttl:       ttl,
		logger:    logger,
	}
}

// Login checks the password and issues a signed token.
func (s *AuthService) Login(ctx context.Context, employeeID int, password string) (*models.LoginResponse, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login rejected", zap.Int("employee_id", employeeID))
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		EmployeeID: emp.ID,
		Role:       emp.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(emp.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("Employee logged in", zap.Int("employee_id", emp.ID), zap.String("role", emp.Role))
	return &models.LoginResponse{
		Token:      token,
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Role:       emp.Role,
	}, nil
}

// ParseToken verifies a bearer token.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RegisterEmployee creates or updates an employee with a bcrypt password hash.
func (s *AuthService) RegisterEmployee(ctx context.Context, id int, name, role, password string) error {
	if id <= 0 {
		return invalid("emplid", "is required")
	}
	if role != models.RoleStaff && role != models.RoleManager {
		return invalid("role", "must be staff or manager")
	}
	if len(password) < 8 {
		return invalid("password", "must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.employees.Upsert(ctx, models.Employee{ID: id, Name: name, Role: role, PasswordHash: string(hash)})
}

package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	JWTTTL    time.Duration
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, JWTSecret: secret, JWTTTL: ttl}
}

type LoginRes struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// Login ของพนักงาน → คืน JWT พร้อม role
func (s *AuthService) Login(email, password string) (*LoginRes, error) {
	var u entity.User
	if err := s.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Msg: "invalid email or password"}
		}
		return nil, &TransactionError{Op: "login", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, &ValidationError{Msg: "invalid email or password"}
	}

	token, err := utils.GenerateToken(u.ID, u.Role, s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, &TransactionError{Op: "sign token", Err: err}
	}

	return &LoginRes{Token: token, User: u}, nil
}

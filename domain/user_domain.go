package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessGetMe          = "success get user profile"
	MessageSuccessSendVerifyMail = "verification email sent"
	MessageSuccessVerifyEmail    = "email verified successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to get user profile"
	MessageFailedSendVerifyMail = "failed to send verification email"
	MessageFailedVerifyEmail    = "failed to verify email"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		UserName    string `json:"username" validate:"required,max=40"`
		Email       string `json:"email" validate:"required,email,max=200"`
		DisplayName string `json:"display_name" validate:"required,max=80"`
		Password    string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	UserResponse struct {
		ID          uint      `json:"id"`
		UserName    string    `json:"username"`
		Email       string    `json:"email"`
		DisplayName string    `json:"display_name"`
		IsVerified  bool      `json:"is_verified"`
		CreatedAt   time.Time `json:"created_at"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)

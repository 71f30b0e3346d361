package models

import "time"

// User is an account record. The ID is a Mongo ObjectID hex string or a
// PostgreSQL UUID, depending on the configured user backend.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	Password  string    `json:"-"` // bcrypt hash, never serialize
	CreatedAt time.Time `json:"created_at"`
}

// RegisterForm is the body of POST /register.
type RegisterForm struct {
	Username  string `form:"username"   validate:"required,min=4,max=20"`
	Email     string `form:"email"      validate:"required,email,max=254"`
	FirstName string `form:"first_name" validate:"required,min=1,max=50"`
	LastName  string `form:"last_name"  validate:"required,min=1,max=50"`
	Password  string `form:"password"   validate:"required,min=6,max=72,maxbytes=72"`
	Password2 string `form:"password2"  validate:"omitempty,eqfield=Password"`
}

// LoginForm is the body of POST /login.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ProfileForm is the body of POST /profile.
type ProfileForm struct {
	FirstName string `form:"first_name" validate:"required,min=1,max=50"`
	LastName  string `form:"last_name"  validate:"required,min=1,max=50"`
	Email     string `form:"email"      validate:"required,email,max=254"`
	Bio       string `form:"bio"        validate:"max=500"`
}

package model

import "time"

type User struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	FirstName      string    `json:"firstName" bson:"first_name"`
	LastName       string    `json:"lastName" bson:"last_name"`
	Email          string    `json:"email" bson:"email"`
	Username       string    `json:"username" bson:"username"`
	HashedPassword string    `json:"-" bson:"hashed_password"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updated_at"`
}

// PublicUser is what other users get to see (Owner, User).
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SessionUser is the signed in user's own view of their account.
type SessionUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func (u *User) Session() SessionUser {
	return SessionUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
	}
}

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,min=3,max=256"`
	Username  string `json:"username" validate:"required,min=4,max=30,not_email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Credential string `json:"credential" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

package service

import (
	"errors"
	"strings"
	"time"

	"athenaeum/data"
	"athenaeum/internal/mailer"
	"athenaeum/internal/validator"
	"athenaeum/repository"
)

type users interface {
	RegisterUser(name string, email string, password string) (*data.User, error)
	ActivateUser(token string) (*data.User, error)
	ResetUserPassword(password string, token string) error
	GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error)
	GetUserByName(name string) (*data.User, error)
	GetAccount(userID int64) (*data.User, []*data.LoanRecord, []*data.WishlistEntry, error)
}

// RegisterUser service registers a new user and mails an activation token.
func (s *service) RegisterUser(name string, email string, password string) (*data.User, error) {
	user := &data.User{
		Name:      name,
		Email:     email,
		Activated: false,
	}
	err := user.Password.Set(password)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.RegisterUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("email", "a user with this email address or name already exists")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	token, err := s.repo.CreateNewToken(user.ID, 3*24*time.Hour, data.ScopeActivation)
	if err != nil {
		return nil, err
	}
	// Send welcome email in a background goroutine to speed up response time
	s.background(func() {
		data := map[string]string{
			"userName":        strings.Split(user.Name, " ")[0],
			"activationToken": token.Plaintext,
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err := mailer.Send(user.Email, "user_welcome.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return user, nil
}

// ActivateUser service activates a newly registered user.
func (s *service) ActivateUser(token string) (*data.User, error) {
	v := validator.New()
	if data.ValidateTokenPlaintext(v, token); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	// If no user record is associated with the token, the token is invalid.
	user, err := s.repo.GetUserForToken(data.ScopeActivation, token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("token", "invalid or expired activation token")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	user.Activated = true
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	err = s.repo.DeleteAllTokensForUser(data.ScopeActivation, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResetUserPassword service resets a registered user's password.
func (s *service) ResetUserPassword(password string, token string) error {
	v := validator.New()
	data.ValidatePasswordPlaintext(v, password)
	data.ValidateTokenPlaintext(v, token)
	if !v.Valid() {
		return s.failedValidation(v.Errors)
	}
	user, err := s.repo.GetUserForToken(data.ScopePasswordReset, token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("token", "invalid or expired token")
			return s.failedValidation(v.Errors)
		default:
			return err
		}
	}
	err = user.Password.Set(password)
	if err != nil {
		return err
	}
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return ErrEditConflict
		default:
			return err
		}
	}
	err = s.repo.DeleteAllTokensForUser(data.ScopePasswordReset, user.ID)
	if err != nil {
		return err
	}
	// Send password change notification email in a background goroutine to speed up response time
	s.background(func() {
		data := map[string]string{
			"userName": strings.Split(user.Name, " ")[0],
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err = mailer.Send(user.Email, "user_password_change.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return nil
}

// GetUserForToken retrieves the user associated with a token.
func (s *service) GetUserForToken(tokenScope string, token string) (*data.User, error) {
	v := validator.New()
	user, err := s.repo.GetUserForToken(tokenScope, token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("token", "invalid or expired token")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetUserByName retrieves a user record by username.
func (s *service) GetUserByName(name string) (*data.User, error) {
	user, err := s.repo.GetUserByName(name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetAccount service retrieves a user's profile, active loans and wishlist
// for the account page.
func (s *service) GetAccount(userID int64) (*data.User, []*data.LoanRecord, []*data.WishlistEntry, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, nil, nil, ErrRecordNotFound
		default:
			return nil, nil, nil, err
		}
	}
	loans, err := s.repo.GetLoansForUser(userID)
	if err != nil {
		return nil, nil, nil, err
	}
	entries, err := s.repo.GetWishlistForUser(userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return user, loans, entries, nil
}

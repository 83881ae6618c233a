package services

import (
	"context"
	"crypto/subtle"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/thereayou/geoguess/internal/config"
	"github.com/thereayou/geoguess/internal/database"
	"github.com/thereayou/geoguess/internal/logger"
	"github.com/thereayou/geoguess/internal/models"
	"github.com/thereayou/geoguess/internal/storage"
	"github.com/thereayou/geoguess/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Surname  string
	Email    string
}

type LoginResult struct {
	Token     string
	Privilege string
}

type ResetResult struct {
	Email string
	Token string
}

type ProfileInput struct {
	Username string
	Name     string
	Surname  string
	Email    string
}

// PasswordInput CurrentPassword необязателен
type PasswordInput struct {
	CurrentPassword *string
	NewPassword     string
}

type AuthService struct {
	users     UserStore
	files     storage.FileStore
	tokens    *auth.JWTManager
	hasher    *auth.PasswordHasher
	superuser config.Superuser

	// хеш для сравнения, когда пользователь не найден: время ответа не выдаёт существование username
	dummyHash string
}

func NewAuthService(
	users UserStore,
	files storage.FileStore,
	tokens *auth.JWTManager,
	hasher *auth.PasswordHasher,
	superuser config.Superuser,
) *AuthService {
	dummyHash, err := hasher.Hash("geoguess-dummy-password")
	if err != nil {
		logger.Warningf("dummy password hash: %v", err)
	}
	return &AuthService{
		users:     users,
		files:     files,
		tokens:    tokens,
		hasher:    hasher,
		superuser: superuser,
		dummyHash: dummyHash,
	}
}

// hashPassword bcrypt ограничен 72 байтами; более длинный пароль ошибка клиента
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", invalid("password too long")
	}
	if err != nil {
		return "", pkgerrors.Wrap(err, "hash password")
	}
	return hash, nil
}

// reserved имя суперпользователя недоступно для учётных записей в БД
func (s *AuthService) reserved(username string) bool {
	return s.superuser.Username != "" && username == s.superuser.Username
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if s.reserved(in.Username) {
		return conflict("username already taken")
	}

	exists, err := s.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return storageFailure("check username", err)
	}
	if exists {
		return conflict("username already taken")
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			return conflict("username already taken")
		}
		return storageFailure("save user", err)
	}

	logger.Infof("user registered: %s", user.Username)
	return nil
}

// Login проверяет пользователя из БД, затем суперпользователя из конфигурации.
// Ошибка одна и та же, по ней не понять, какая проверка не прошла.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, lookupErr := s.users.FindUserByUsername(ctx, username)
	if lookupErr != nil {
		s.hasher.Check(password, s.dummyHash)
	} else if s.hasher.Check(password, user.PasswordHash) {
		token, err := s.tokens.Generate(user.Username, "")
		if err != nil {
			return nil, pkgerrors.Wrap(err, "issue token")
		}
		return &LoginResult{Token: token}, nil
	}

	if s.isSuperuser(username, password) {
		token, err := s.tokens.Generate(username, auth.PrivilegeAdmin)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "issue token")
		}
		logger.Infof("superuser login: %s", username)
		return &LoginResult{Token: token, Privilege: auth.PrivilegeAdmin}, nil
	}

	if lookupErr != nil && !errors.Is(lookupErr, database.ErrNotFound) {
		return nil, storageFailure("find user", lookupErr)
	}
	return nil, &Error{Kind: ErrUnauthorized, Message: "invalid credentials"}
}

func (s *AuthService) isSuperuser(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.superuser.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.superuser.Password)) == 1
	return userOK && passOK
}

// RequestPasswordReset выдаёт токен для отправки на почту пользователя
func (s *AuthService) RequestPasswordReset(ctx context.Context, username string) (*ResetResult, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, conflict("user does not exist")
		}
		return nil, storageFailure("find user", err)
	}

	token, err := s.tokens.GenerateReset(user.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "issue token")
	}
	return &ResetResult{Email: user.Email, Token: token}, nil
}

func (s *AuthService) SearchUsers(ctx context.Context, term string) ([]models.User, error) {
	users, err := s.users.SearchUsersByUsername(ctx, term)
	if err != nil {
		return nil, storageFailure("search users", err)
	}
	return users, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("user not found")
		}
		return nil, storageFailure("find user", err)
	}
	return user, nil
}

// EditProfile применяет изменения целиком или не применяет вовсе и
// перевыпускает токен под итоговый username
func (s *AuthService) EditProfile(ctx context.Context, username string, in ProfileInput) (string, error) {
	if s.reserved(in.Username) {
		return "", conflict("username already taken")
	}

	user, err := s.CurrentUser(ctx, username)
	if err != nil {
		return "", err
	}

	err = s.users.UpdateProfile(ctx, user.ID, database.ProfileUpdate{
		Username: in.Username,
		Name:     in.Name,
		Surname:  in.Surname,
		Email:    in.Email,
	})
	switch {
	case errors.Is(err, database.ErrUsernameTaken):
		return "", conflict("username already taken")
	case errors.Is(err, database.ErrNotFound):
		return "", notFound("user not found")
	case err != nil:
		return "", storageFailure("update profile", err)
	}

	token, err := s.tokens.Generate(in.Username, "")
	if err != nil {
		return "", pkgerrors.Wrap(err, "issue token")
	}
	return token, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, username string, in PasswordInput) error {
	user, err := s.CurrentUser(ctx, username)
	if err != nil {
		return err
	}

	if in.CurrentPassword != nil && !s.hasher.Check(*in.CurrentPassword, user.PasswordHash) {
		return conflict("current password does not match")
	}

	return s.setPassword(ctx, user, in.NewPassword)
}

// ResetPassword задаёт новый пароль по токену сброса; текущий пароль не спрашивается
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	user, err := s.CurrentUser(ctx, username)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, user, newPassword)
}

func (s *AuthService) setPassword(ctx context.Context, user *models.User, password string) error {
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return storageFailure("update password", err)
	}
	return nil
}

// UploadAvatar привязывает уже сохранённый файл; при отказе файл удаляется
func (s *AuthService) UploadAvatar(ctx context.Context, username, fileName string) (string, error) {
	user, err := s.CurrentUser(ctx, username)
	if err != nil {
		return "", s.discardUpload(ctx, fileName, err)
	}

	ok, err := s.users.SetAvatarIfEmpty(ctx, user.ID, fileName)
	if err != nil {
		return "", s.discardUpload(ctx, fileName, storageFailure("set avatar", err))
	}
	if !ok {
		return "", s.discardUpload(ctx, fileName, conflict("avatar already set"))
	}
	return fileName, nil
}

func (s *AuthService) discardUpload(ctx context.Context, fileName string, cause error) error {
	if err := s.files.Delete(ctx, fileName); err != nil {
		logger.Errorf("cleanup of upload %s failed: %v", fileName, err)
		return storageFailure("delete orphaned upload", err)
	}
	return cause
}

// RemoveAvatar сначала удаляет файл; если удаление не удалось, ссылка остаётся
func (s *AuthService) RemoveAvatar(ctx context.Context, username string) error {
	user, err := s.CurrentUser(ctx, username)
	if err != nil {
		return err
	}
	if !user.HasAvatar() {
		return notFound("avatar is not set")
	}

	if err := s.files.Delete(ctx, *user.Avatar); err != nil {
		return storageFailure("delete avatar", err)
	}
	if err := s.users.ClearAvatar(ctx, user.ID); err != nil {
		return storageFailure("clear avatar", err)
	}
	return nil
}

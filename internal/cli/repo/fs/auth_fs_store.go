package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSession — на диске нет сохранённого токена.
var ErrNoSession = errors.New("not logged in")

// AuthFSStore — файловое хранилище токена сессии и последнего логина для CLI.
// TokenPath задаёт путь к файлу токена; логин хранится рядом в last_login.
type AuthFSStore struct {
	TokenPath string
}

// NewAuthFSStore возвращает хранилище по пути из конфигурации.
func NewAuthFSStore(tokenPath string) AuthFSStore {
	return AuthFSStore{TokenPath: tokenPath}
}

func (s AuthFSStore) lastLoginPath() string {
	return filepath.Join(filepath.Dir(s.TokenPath), "last_login")
}

func (s AuthFSStore) write(path, value string) error {
	if s.TokenPath == "" {
		return errors.New("token path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0o600)
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n\t "), nil
}

// Save сохраняет токен сессии.
func (s AuthFSStore) Save(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return s.write(s.TokenPath, token)
}

// Load читает токен; отсутствие файла или пустой файл дают ErrNoSession.
func (s AuthFSStore) Load() (string, error) {
	token, err := readTrimmed(s.TokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// Clear удаляет токен; удаление несуществующего файла не ошибка.
func (s AuthFSStore) Clear() error {
	err := os.Remove(s.TokenPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SaveLogin сохраняет имя пользователя последнего входа.
func (s AuthFSStore) SaveLogin(username string) error {
	if username == "" {
		return errors.New("empty login")
	}
	return s.write(s.lastLoginPath(), username)
}

// LoadLogin читает имя пользователя последнего входа.
func (s AuthFSStore) LoadLogin() (string, error) {
	login, err := readTrimmed(s.lastLoginPath())
	if err != nil {
		return "", err
	}
	if login == "" {
		return "", errors.New("no stored login")
	}
	return login, nil
}

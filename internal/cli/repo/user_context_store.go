package repo

// UserContextStore хранит имя пользователя последнего входа.
type UserContextStore interface {
	SaveLogin(username string) error
	LoadLogin() (string, error)
}

// SessionStore — всё, что CLI хранит о текущей сессии.
type SessionStore interface {
	TokenStore
	UserContextStore
}

package service

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyOnce   sync.Once
	dummyDigest []byte
)

func hashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func checkPassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// burnCompare выполняет сравнение с фиктивным хешем, чтобы ответ для неизвестного
// пользователя занимал столько же времени, сколько для известного.
func burnCompare(password string) {
	dummyOnce.Do(func() {
		dummyDigest, _ = bcrypt.GenerateFromPassword([]byte("notekeeper-dummy"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyDigest, []byte(password))
}

package service

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Ограничения на входные данные.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	// bcrypt не принимает пароли длиннее 72 байт
	MaxPasswordBytes = 72
	MaxTitleLength    = 200
	MaxFolderName     = 255
	MaxTagLength      = 64

	DefaultNotesLimit = 50
	MaxNotesLimit     = 500
)

const (
	dateLayout        = "2006-01-02"
	localMinuteLayout = "2006-01-02 15:04"
)

// dateRule принимает дату YYYY-MM-DD или метку RFC3339.
var dateRule = validation.By(func(value any) error {
	return checkLayouts(value, "must be YYYY-MM-DD or RFC3339", dateLayout, time.RFC3339)
})

// reminderTimeRule принимает RFC3339 или "YYYY-MM-DD HH:MM".
var reminderTimeRule = validation.By(func(value any) error {
	return checkLayouts(value, "must be RFC3339 or YYYY-MM-DD HH:MM", time.RFC3339, localMinuteLayout)
})

func checkLayouts(value any, msg string, layouts ...string) error {
	v, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(v) {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return errors.New("must be a string")
	}
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return errors.New(msg)
}

// reminderInstant приводит время напоминания к UTC в RFC3339: в таком виде строки
// сортируются хронологически. "YYYY-MM-DD HH:MM" без зоны считается временем UTC.
func reminderInstant(s string) (string, bool) {
	for _, layout := range []string{time.RFC3339, localMinuteLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}
	return "", false
}

// normalizeTags обрезает пробелы и отбрасывает пустые имена; пустой итог даёт ErrInvalidInput.
func normalizeTags(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, invalid(errors.New("tags: at least one non-empty tag is required"))
	}
	err := validation.Validate(out, validation.Each(validation.RuneLength(1, MaxTagLength)))
	if err != nil {
		return nil, invalid(validation.Errors{"tags": err})
	}
	return out, nil
}

// trimmedPtr обрезает строку по указателю; пустая строка превращается в nil.
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

package service

import "strings"

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// validateTitle - обязательный заголовок: непустой после trim, не длиннее 200.
func validateTitle(title string) (string, *BusinessError) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", NewValidationError("title", "не может быть пустым")
	}
	if len([]rune(title)) > maxTitleLen {
		return "", NewValidationError("title", "длина не может превышать 200 символов")
	}
	return title, nil
}

// validateDescription - необязательное описание: пустое после trim хранится
// как отсутствующее, а не как пустая строка.
func validateDescription(description string) (*string, *BusinessError) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, nil
	}
	if len([]rune(description)) > maxDescriptionLen {
		return nil, NewValidationError("description", "длина не может превышать 1000 символов")
	}
	return &description, nil
}

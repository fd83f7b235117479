package repository

import "errors"

// сигнальные ошибки хранилища, сервисы проверяют их через errors.Is

var ErrNotFound = errors.New("запись не найдена")
var ErrEmailTaken = errors.New("email уже занят")

package database

import "errors"

// Сигнальные ошибки, по которым обработчики выбирают HTTP-статус
var (
	ErrNotFound         = errors.New("запись не найдена")
	ErrAccountNotFound  = errors.New("счёт не найден или не принадлежит пользователю")
	ErrCategoryNotFound = errors.New("категория не найдена или не принадлежит пользователю")
	ErrEmailTaken       = errors.New("email уже занят")
	ErrWrongPassword    = errors.New("неверный пароль")
	ErrAccountInUse     = errors.New("по счёту есть транзакции")
	ErrCategoryInUse    = errors.New("по категории есть транзакции")
)

package database

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func connString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_HOST"), 5432, os.Getenv("DB_NAME"))
}

func ConnectDB() (*pgx.Conn, error) {
	// Загрузить переменные из .env
	if err := godotenv.Load(); err != nil {
		return nil, fmt.Errorf("Error loading .env file")
	}

	conn, err := pgx.Connect(context.Background(), connString())
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// ConnectPool открывает пул соединений для сервера
func ConnectPool() (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString())
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %v", err)
	}
	return pool, nil
}

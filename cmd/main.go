package main

import (
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/routes"
)

func ScheduleBudgetRenewal(pool *pgxpool.Pool) {
	c := cron.New()
	_, err := c.AddFunc("@monthly", func() {
		if err := database.UpdateExpiredBudgets(pool); err != nil {
			log.Printf("Ошибка деактивации просроченных бюджетов: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи для бюджетов: %v", err)
	}
	c.Start()
}

func ScheduleBalanceAudit(pool *pgxpool.Pool) {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		if err := database.AuditAccountBalances(pool); err != nil {
			log.Printf("Ошибка сверки балансов: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи для сверки балансов: %v", err)
	}
	c.Start()
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf("Ошибка загрузки .env файла: %v", err)
	}

	pool, err := database.ConnectPool()
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	ScheduleBudgetRenewal(pool)
	ScheduleBalanceAudit(pool)

	r := routes.SetupRouter(pool)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Ошибка при запуске сервера: %v", err)
	}
}

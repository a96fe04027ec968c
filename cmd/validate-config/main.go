package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/babycare-helper/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.GeminiAPIKey))
	fmt.Printf("  - OpenAI API Key: %s\n", maskToken(cfg.OpenAIAPIKey))
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == config.DriverSQLite {
		fmt.Printf("  - SQLite Path: %s\n", cfg.DB.SQLitePath)
	} else {
		fmt.Printf("  - DB Host: %s:%s\n", cfg.DB.Host, cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	if cfg.Redis.Enabled() {
		fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	} else {
		fmt.Printf("  - Redis: <disabled, in-memory state>\n")
	}
	fmt.Printf("  - Timezone: %s\n", cfg.Timezone)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)

	care := cfg.Care
	fmt.Printf("🍼 Care routine:\n")
	fmt.Printf("  - Feeding every %v (cooldown %v)\n", care.FeedingInterval, care.FeedingCooldown)
	fmt.Printf("  - Sterilization every %d days, bath every %d days\n", care.SterilizationDays, care.BathingDays)
	if care.IronDoseInterval > 0 {
		fmt.Printf("  - Iron: %d doses/day, every %v", care.IronDosesPerDay, care.IronDoseInterval)
		if care.IronCourseDays > 0 {
			fmt.Printf(", %d days from %s", care.IronCourseDays, care.IronCourseStart.Format("2006-01-02"))
		}
		fmt.Println()
	} else {
		fmt.Printf("  - Iron: <disabled>\n")
	}
	fmt.Printf("  - Reminder tick: %v, undo window: %v\n", care.ReminderTick, care.UndoWindow)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

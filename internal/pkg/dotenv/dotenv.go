package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvFileVar - путь к env-файлу, если он лежит не в рабочем каталоге
// (например, ~/.config/ridersync/env на устройстве курьера).
const EnvFileVar = "RIDERSYNC_ENV_FILE"

// Load подгружает .env (или файл из RIDERSYNC_ENV_FILE), если он есть.
// Уже выставленные переменные окружения не перетираются.
func Load(files ...string) error {
	if len(files) == 0 {
		if path := os.Getenv(EnvFileVar); path != "" {
			files = []string{path}
		}
	}

	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadWithFlags - Load плюс флаги демона: -env (путь к env-файлу) и -port (перекрывает PORT).
// CLI на cobra разбирает флаги сам и зовет просто Load.
func LoadWithFlags(name string, args []string) error {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	envFile := flags.String("env", "", "path to env file (overrides "+EnvFileVar+")")
	port := flags.String("port", "", "local API port (overrides PORT)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	if err := Load(files...); err != nil {
		return err
	}

	if *port != "" {
		if err := os.Setenv("PORT", *port); err != nil {
			return fmt.Errorf("set PORT: %w", err)
		}
	}
	return nil
}

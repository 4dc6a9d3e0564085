package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"meal-dashboard/internal/api"
	"meal-dashboard/internal/app"
	"meal-dashboard/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	global := flag.NewFlagSet("meal-dashboard", flag.ExitOnError)
	configPath := global.String("config", "", "Path to a YAML config file")
	global.Usage = printUsage
	global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application := app.NewApp(cfg, api.NewClient(cfg), os.Stdout)
	err = run(application, args)
	application.Close()
	if err != nil {
		log.Fatalf("%s failed: %v", args[0], err)
	}
}

func run(application *app.App, args []string) error {
	switch args[0] {
	case "plans":
		return application.PrintDashboard()
	case "grocery":
		id, err := parseID(args, "grocery <meal-plan-id>")
		if err != nil {
			return err
		}
		return application.PrintGroceryList(id)
	case "recipe":
		id, err := parseID(args, "recipe <recipe-id>")
		if err != nil {
			return err
		}
		return application.PrintRecipe(id)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.NewFromEnv()
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("usage: meal-dashboard %s", usage)
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", args[1], err)
	}
	return id, nil
}

func printUsage() {
	fmt.Println("Usage: meal-dashboard [-config file.yaml] <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plans              Print every meal plan card")
	fmt.Println("  grocery <id>       Print the grocery list of a meal plan")
	fmt.Println("  recipe <id>        Print a recipe")
}

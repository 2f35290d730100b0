package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/appforge-ci/deployer/commands"
)

func envs(base string) []string {
	return []string{"DEPLOYER_" + base, base}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "appforge-deployer"
	app.Usage = "Generates and deploys single-page applications from briefs"
	app.Version = "1.0.0"
	app.DefaultCommand = "run"
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "listen-address", EnvVars: envs("LISTEN_ADDRESS"), Required: false, Value: ":8080"},
		&cli.StringFlag{Name: "user-secret", EnvVars: envs("USER_SECRET"), Required: false},
		&cli.StringFlag{Name: "github-token", EnvVars: envs("GITHUB_TOKEN"), Required: false},
		&cli.StringFlag{Name: "github-api-url", EnvVars: envs("GITHUB_API_URL"), Required: false, Value: "https://api.github.com"},
		&cli.StringFlag{Name: "openai-api-key", EnvVars: envs("OPENAI_API_KEY"), Required: false},
		&cli.StringFlag{Name: "openai-base-url", EnvVars: envs("OPENAI_BASE_URL"), Required: false, Value: "https://aipipe.org/openai/v1"},
		&cli.StringFlag{Name: "openai-model", EnvVars: envs("OPENAI_MODEL"), Required: false, Value: "gpt-4o"},
		&cli.StringFlag{Name: "default-evaluation-url", EnvVars: envs("DEFAULT_EVALUATION_URL"), Required: false, Value: "http://localhost:8080/evaluation_callback"},
		&cli.StringFlag{Name: "ledger-storage-mode", EnvVars: envs("LEDGER_STORAGE_MODE"), Required: false, Value: "local"},
		&cli.StringFlag{Name: "ledger-local-path", EnvVars: envs("LEDGER_LOCAL_PATH"), Required: false, Value: "deployment_state.json"},
		&cli.StringFlag{Name: "ledger-redis-url", EnvVars: envs("LEDGER_REDIS_URL"), Required: false},
		&cli.StringFlag{Name: "ledger-s3-bucket-name", EnvVars: envs("LEDGER_S3_BUCKET_NAME"), Required: false},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "run",
			Usage:  "Starts the deployment server",
			Action: commands.Run,
		},
	}

	return app
}

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Println()
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
}

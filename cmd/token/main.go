package main

import (
	"flag"
	"fmt"
	"os"

	"codeberg.org/algorave/errorhandler/internal/auth"
	"codeberg.org/algorave/errorhandler/internal/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// prints a signed bearer token for exercising the protected routes locally
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not found, using process environment")
	}

	fs := flag.NewFlagSet("token", flag.ExitOnError)
	userID := fs.String("user", "", "user ID to embed (random UUID when empty)")
	email := fs.String("email", "test@errorhandler.dev", "email to embed")
	admin := fs.Bool("admin", false, "issue an admin token")
	fs.Parse(os.Args[1:]) //nolint:errcheck,gosec // ExitOnError

	if *userID == "" {
		*userID = uuid.NewString()
	}

	token, err := auth.GenerateJWT(*userID, *email, *admin)
	if err != nil {
		logger.FatalErr(err, "failed to generate JWT")
	}

	fmt.Printf("export TEST_TOKEN=%q\n", token)
}

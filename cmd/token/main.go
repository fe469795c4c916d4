// Command token issues bearer tokens for operators and test drivers. Driver
// accounts normally get their tokens from the accounts service.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/auth"
	"github.com/ipqbbqgyy/parking-system/internal/config"
)

func main() {
	userID := flag.Int("user", 1, "account id")
	email := flag.String("email", "", "account e-mail")
	role := flag.String("role", auth.RoleAdmin, "admin or driver")
	ttl := flag.Duration("ttl", 12*time.Hour, "lifetime of an admin token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var token string
	switch *role {
	case auth.RoleAdmin:
		token, err = auth.GenerateOperatorToken(*userID, *email, cfg.JWTSecret, *ttl)
	case auth.RoleDriver:
		token, err = auth.GenerateAccessToken(*userID, *email, auth.RoleDriver, cfg.JWTSecret)
	default:
		err = fmt.Errorf("unknown role %q", *role)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}

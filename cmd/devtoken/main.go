// Command devtoken issues a bearer token for local development, signed with
// the server's configured JWT secret.
//
// Flags:
//
//	--user   user UUID to issue the token for (default: a new random UUID)
//
// The token is printed to stdout; export it as IRONLOG_ACCESS_TOKEN for the
// ironlog client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/auth"
	"github.com/heartmarshall/ironlog/internal/config"
)

func main() {
	userFlag := flag.String("user", "", "user UUID (default: random)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	userID := uuid.New()
	if *userFlag != "" {
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("parse --user: %v", err)
		}
	}

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwt.GenerateAccessToken(userID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "user_id=%s\n", userID)
	fmt.Println(token)
}

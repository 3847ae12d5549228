// Command bootstrap-host-key issues or revokes a host API key.
//
//	go run scripts/bootstrap-host-key.go -email host@example.com
//	go run scripts/bootstrap-host-key.go -revoke 01HZX...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/auth"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/repository"
)

type output struct {
	KeyID         string `json:"key_id"`
	HostEmail     string `json:"host_email"`
	Key           string `json:"key"`
	KeyPrefix     string `json:"key_prefix"`
	RateLimitTier string `json:"rate_limit_tier"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "Host email the key acts for")
		name        = flag.String("name", "bootstrap", "Key name")
		tier        = flag.String("tier", model.TierFree, "Rate limit tier (free, pro, unlimited)")
		env         = flag.String("env", auth.EnvLive, "Key environment (live or test)")
		revoke      = flag.String("revoke", "", "Revoke the key with this ID instead of issuing one")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fail("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL, repository.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		fail("connect database:", err)
	}
	defer repo.Close()

	if *revoke != "" {
		if err := repo.RevokeHostKey(ctx, *revoke); err != nil {
			fail("revoke host key:", err)
		}
		fmt.Println("revoked", *revoke)
		return
	}

	hostEmail, err := mail.ParseAddress(strings.TrimSpace(*email))
	if err != nil {
		fail("a valid -email is required")
	}
	if _, ok := model.TierConfigs[*tier]; !ok {
		fail("invalid tier:", *tier)
	}

	generated, err := auth.GenerateHostKey(*env)
	if err != nil {
		fail("generate host key:", err)
	}

	key := &model.HostKey{
		ID:            ulid.Make().String(),
		HostEmail:     hostEmail.Address,
		KeyHash:       generated.Hash,
		KeyPrefix:     generated.Prefix,
		RateLimitTier: *tier,
		Name:          *name,
		CreatedAt:     time.Now().UTC(),
	}
	if err := repo.CreateHostKey(ctx, key); err != nil {
		fail("create host key:", err)
	}

	out := output{
		KeyID:         key.ID,
		HostEmail:     key.HostEmail,
		Key:           generated.Plaintext,
		KeyPrefix:     key.KeyPrefix,
		RateLimitTier: key.RateLimitTier,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Key)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fail("invalid format; use plain or json")
	}
}

func fail(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

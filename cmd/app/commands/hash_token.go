package commands

import (
	"fmt"

	"github.com/allisson/go-pwdhash"
)

// RunHashToken hashes an API token with Argon2id and prints the hash. The
// output is the value for the API_TOKEN_HASH environment variable.
func RunHashToken(ioTuple IOTuple, token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return fmt.Errorf("failed to create hasher: %w", err)
	}

	hash, err := hasher.Hash([]byte(token))
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	fmt.Fprintln(ioTuple.Writer, hash)
	return nil
}

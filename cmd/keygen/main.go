package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
)

// keygen prints fresh random secrets for the server environment:
// SESSION_ENCRYPTION_KEY must be 64 hex chars (32 bytes for AES-256),
// JWT_SECRET can be any length but gets the same treatment.
func main() {
	hexLen := flag.Int("hex-len", 64, "random hex length (must be even)")
	flag.Parse()

	if err := validateHexLen(*hexLen); err != nil {
		log.Fatal(err)
	}

	sessionKey, err := generateRandomHex(*hexLen)
	if err != nil {
		log.Fatalf("failed to generate session key: %v", err)
	}
	jwtSecret, err := generateRandomHex(*hexLen)
	if err != nil {
		log.Fatalf("failed to generate jwt secret: %v", err)
	}

	fmt.Println("Generated server secrets")
	fmt.Printf("SESSION_ENCRYPTION_KEY=%s\n", sessionKey)
	fmt.Printf("JWT_SECRET=%s\n", jwtSecret)
}

func validateHexLen(n int) error {
	if n <= 0 || n%2 != 0 {
		return fmt.Errorf("invalid hex-len: %d (must be positive and even)", n)
	}
	return nil
}

func generateRandomHex(n int) (string, error) {
	b := make([]byte, n/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Prints a bcrypt hash for the given password. Handy for seeding the first
// admin account directly in the users collection.
//
// Usage: go run scripts/generate_password.go <password>
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 12)
	if err != nil {
		log.Fatalf("failed to generate hash: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(os.Args[1])); err != nil {
		log.Fatalf("hash verification failed: %v", err)
	}

	fmt.Println(string(hash))
}

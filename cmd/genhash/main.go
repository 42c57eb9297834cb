// Command genhash prints password hashes for seeding users rows by hand.
//
//	go run ./cmd/genhash employer1=s3cret-pass seeker1=another-pass
package main

import (
	"fmt"
	"os"
	"strings"

	"job-board-backend/pkg/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash username=password ...")
		os.Exit(2)
	}

	for _, arg := range os.Args[1:] {
		user, pass, ok := strings.Cut(arg, "=")
		if !ok || pass == "" {
			fmt.Fprintf(os.Stderr, "skipping %q: expected username=password\n", arg)
			continue
		}
		hash, err := auth.HashPassword(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("User: %s\nHash: %s\n\n", user, hash)
	}
}

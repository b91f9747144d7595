// genhash prints a bcrypt hash for seeding an admin account by hand:
//
//	go run ./scripts/genhash.go -cost 12 'S3cret!pass'
package main

import (
	"flag"
	"fmt"
	"os"

	"portfolio-cms-backend/pkg/auth"
)

func main() {
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-cost N] <password>...")
		os.Exit(2)
	}

	hasher := auth.NewPasswordHasher(*cost)
	for _, pass := range flag.Args() {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}

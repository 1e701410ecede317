// Package main implements a helper that bcrypt-hashes an API key for the
// auth.api_key_hash configuration value.
package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: hash-generator [-cost N] <api-key>")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(flag.Arg(0)), *cost)
	if err != nil {
		log.Fatalf("failed to generate hash: %v", err)
	}

	fmt.Println(string(hash))
}

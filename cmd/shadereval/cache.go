package main

import (
	"fmt"

	"shadereval/internal/cache"
)

// CacheCommand inspects the fold result cache: `cache <dialect> <dsn>
// lookup <expr>`.
func CacheCommand(args []string) error {
	if len(args) < 4 || args[2] != "lookup" {
		return fmt.Errorf("usage: shadereval cache <dialect> <dsn> lookup <expr>")
	}
	dialect, dsn, source := args[0], args[1], args[3]

	c, err := cache.Open(dialect, dsn)
	if err != nil {
		return err
	}
	defer c.Close()

	key := cache.Key(source, "")
	entry, ok, err := c.Lookup(key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("cache miss")
		return nil
	}
	if entry.ErrorText != "" {
		fmt.Printf("cached error: %s\n", entry.ErrorText)
		return nil
	}
	fmt.Printf("cached result: %s\n", entry.ResultText)
	return nil
}

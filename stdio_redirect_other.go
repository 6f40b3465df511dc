//go:build !unix

package main

import "os"

// Without Dup2 this cannot capture runtime-level stderr output such as
// panic traces, but it keeps Go-level prints in the file.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}

//go:build js && wasm

package main

// The browser has no disk to record playthroughs to.
func WriteFile(name string, data []byte) {
}

func canWriteFiles() bool {
	return false
}

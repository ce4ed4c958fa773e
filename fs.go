package main

import (
	"embed"
	"io/fs"
	"os"
)

// FS is what the game needs from a filesystem: open, read whole files and list
// folders. Both embed.FS and os.DirFS() provide it, so data can come from the
// binary or from the disk without the loaders caring which.
type FS interface {
	fs.FS
	fs.ReadFileFS
	fs.ReadDirFS
}

//go:embed data/*
var embeddedFiles embed.FS

// DataFS returns the on-disk folder if the game runs next to a data folder,
// so files can be edited while the game runs. Otherwise it returns the files
// embedded in the binary.
func DataFS() (fsys FS, onDisk bool) {
	disk := os.DirFS(".").(FS)
	if FileExists(disk, "data") {
		return disk, true
	}
	return &embeddedFiles, false
}

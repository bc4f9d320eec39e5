package filesystem

import "io/fs"

// FS is the minimal filesystem surface a traversal reads from
type FS interface {
	// Stat returns file info, following symbolic links
	Stat(name string) (fs.FileInfo, error)

	// ReadDir lists the entries of one directory
	ReadDir(name string) ([]fs.DirEntry, error)
}

// IsDir reports whether name exists and is a directory
func IsDir(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

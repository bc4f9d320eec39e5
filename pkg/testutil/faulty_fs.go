package testutil

import (
	"io/fs"

	"github.com/FrenchBear/myglob/pkg/filesystem"
	"github.com/stretchr/testify/mock"
)

// FaultyFS delegates to an inner FS but lets a test decide, through
// testify expectations, which ReadDir calls fail
type FaultyFS struct {
	mock.Mock
	Inner filesystem.FS
}

// NewFaultyFS wraps inner; every ReadDir succeeds until FailReadDir is used
func NewFaultyFS(inner filesystem.FS) *FaultyFS {
	return &FaultyFS{Inner: inner}
}

// FailReadDir makes listing path fail with err. Call it before
// PassThrough so the specific expectation is matched first.
func (f *FaultyFS) FailReadDir(path string, err error) *FaultyFS {
	f.On("ReadDir", path).Return(err)
	return f
}

// PassThrough lets every other listing reach the inner FS
func (f *FaultyFS) PassThrough() *FaultyFS {
	f.On("ReadDir", mock.Anything).Return(nil)
	return f
}

func (f *FaultyFS) Stat(name string) (fs.FileInfo, error) {
	return f.Inner.Stat(name)
}

func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	args := f.Called(name)
	if err := args.Error(0); err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Inner.ReadDir(name)
}

package fileutil

import (
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data next to filename and renames it into place, so readers
// such as the node_exporter textfile collector never observe a partial file.
// AtomicWriteFile 先写入同目录下的临时文件再重命名，读取方不会看到写了一半的文件。
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) (err error) {
	safePath := filepath.Clean(filename)
	if err := EnsureParentDir(safePath); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(safePath), "."+filepath.Base(safePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		if err != nil {
			tmpFile.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		return err
	}
	if err = tmpFile.Chmod(perm); err != nil {
		return err
	}
	if err = tmpFile.Sync(); err != nil {
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, safePath) // #nosec G703 // filename is validated by caller
}

// EnsureParentDir creates the directory holding path when it is missing.
// EnsureParentDir 在目录不存在时创建 path 所在目录。
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

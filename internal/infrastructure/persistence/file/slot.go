package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Slot 文件存储槽，每个key对应目录下的一个文件
// 写入先写临时文件再Rename，进程中途退出不会留下半个文件
type Slot struct {
	fs   afero.Fs
	path string
}

// NewSlot 创建文件存储槽，目录不存在时自动创建
func NewSlot(fsys afero.Fs, dir, key string) (*Slot, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}

	return &Slot{
		fs:   fsys,
		path: filepath.Join(dir, key+".json"),
	}, nil
}

// NewOsSlot 使用本地文件系统
func NewOsSlot(dir, key string) (*Slot, error) {
	return NewSlot(afero.NewOsFs(), dir, key)
}

// Path 槽文件路径
func (s *Slot) Path() string {
	return s.path
}

// Read 读取槽内容，文件不存在时返回(nil, nil)
func (s *Slot) Read(_ context.Context) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取存储槽失败: %w", err)
	}
	return data, nil
}

// Write 覆盖写入
func (s *Slot) Write(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("写入存储槽失败: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("替换存储槽失败: %w", err)
	}
	return nil
}

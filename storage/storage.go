// Package storage 管理票据和头像的本地文件存储
// 通过 afero 抽象文件系统，测试时可替换为内存实现
package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// URIPrefix 存储返回的文件 URI 前缀
const URIPrefix = "file://"

// Service 本地文件存储服务
type Service struct {
	fs  afero.Fs
	dir string
}

// New 创建基于操作系统文件系统的存储服务，目录不存在时自动创建
func New(dir string) (*Service, error) {
	return NewWithFs(afero.NewOsFs(), dir)
}

// NewWithFs 使用指定文件系统创建存储服务，测试用 afero.NewMemMapFs()
func NewWithFs(fs afero.Fs, dir string) (*Service, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &Service{fs: fs, dir: dir}, nil
}

// SaveReceipt 保存一张票据，文件名带随机后缀避免覆盖，返回文件 URI
func (s *Service) SaveReceipt(src io.Reader, userID uint) (string, error) {
	name := fmt.Sprintf("recibo_%d_%s.jpg", userID, uuid.NewString())
	return s.save(src, name)
}

// SaveAvatar 保存用户头像，同一用户固定文件名，新头像直接覆盖旧头像
func (s *Service) SaveAvatar(src io.Reader, userID uint) (string, error) {
	name := fmt.Sprintf("perfil_%d.jpg", userID)
	return s.save(src, name)
}

func (s *Service) save(src io.Reader, name string) (string, error) {
	path := filepath.Join(s.dir, name)
	file, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, src); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return URIPrefix + path, nil
}

// Delete 按 URI 删除文件，文件不存在视为删除成功
func (s *Service) Delete(uri string) error {
	if uri == "" {
		return nil
	}
	path := strings.TrimPrefix(uri, URIPrefix)
	if err := s.fs.Remove(path); err != nil {
		if exists, _ := afero.Exists(s.fs, path); !exists {
			return nil
		}
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

// Exists 判断 URI 对应的文件是否存在
func (s *Service) Exists(uri string) bool {
	if uri == "" {
		return false
	}
	path := strings.TrimPrefix(uri, URIPrefix)
	exists, err := afero.Exists(s.fs, path)
	return err == nil && exists
}

// Open 按 URI 打开文件，用于导出或回显
func (s *Service) Open(uri string) (io.ReadCloser, error) {
	path := strings.TrimPrefix(uri, URIPrefix)
	return s.fs.Open(path)
}

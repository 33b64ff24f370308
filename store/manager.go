package store

import (
	"sync"
)

// Manager 按用户维护 Store 实例
// 服务端一个进程服务多个用户，每个身份一份独立的列表状态
type Manager struct {
	repo    Repository
	storage ReceiptStorage

	mu     sync.Mutex
	stores map[uint]*Store
}

// NewManager 创建 Store 管理器
func NewManager(repo Repository, storage ReceiptStorage) *Manager {
	return &Manager{
		repo:    repo,
		storage: storage,
		stores:  make(map[uint]*Store),
	}
}

// For 返回指定用户的 Store，首次访问时创建并加载
func (m *Manager) For(userID uint) *Store {
	m.mu.Lock()
	s, ok := m.stores[userID]
	if !ok {
		s = New(m.repo, m.storage)
		m.stores[userID] = s
		m.mu.Unlock()
		// 首次创建时绑定身份并加载，放在锁外避免阻塞其他用户
		s.SetIdentity(userID)
		return s
	}
	m.mu.Unlock()
	return s
}

// Drop 丢弃指定用户的 Store（登出时调用），状态清空
func (m *Manager) Drop(userID uint) {
	m.mu.Lock()
	s, ok := m.stores[userID]
	if ok {
		delete(m.stores, userID)
	}
	m.mu.Unlock()
	if ok {
		s.SetIdentity(0)
	}
}

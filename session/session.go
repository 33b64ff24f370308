// Package session 维护登录身份与用户资料
// 身份变化通过可取消的订阅对外广播；首次观察到没有资料的身份时
// 自动创建一条默认资料，且只创建一次
package session

import (
	"sync"
	"sync/atomic"

	"gastos/models"
)

// Identity 已认证身份
type Identity struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Event 身份变化事件
type Event struct {
	Identity Identity
	LoggedIn bool // false 表示该身份登出
}

// Authenticator 认证服务接口，错误信息由实现方翻译成固定文案
type Authenticator interface {
	Register(email, password, displayName string) (*Identity, error)
	Login(email, password string) (*Identity, error)
	ChangePassword(userID uint, oldPassword, newPassword string) error
}

// ProfileRepository 用户资料持久化接口
type ProfileRepository interface {
	Get(userID uint) (*models.Profile, error)
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
}

// ProfileUpdate 资料更新输入，nil 字段表示不修改
type ProfileUpdate struct {
	DisplayName   *string
	MonthlyBudget *float64
	Currency      *string
	AvatarURL     *string
}

// Manager 会话管理器
type Manager struct {
	auth     Authenticator
	profiles ProfileRepository

	mu          sync.Mutex
	active      map[uint]Identity // 当前在线身份
	ensuring    map[uint]*sync.Once
	subscribers map[int]func(Event)
	nextSubID   int

	inflight atomic.Int32 // 进行中的认证调用数
}

// NewManager 创建会话管理器
func NewManager(auth Authenticator, profiles ProfileRepository) *Manager {
	return &Manager{
		auth:        auth,
		profiles:    profiles,
		active:      make(map[uint]Identity),
		ensuring:    make(map[uint]*sync.Once),
		subscribers: make(map[int]func(Event)),
	}
}

// Loading 是否有进行中的认证调用
func (m *Manager) Loading() bool {
	return m.inflight.Load() > 0
}

// Subscribe 订阅身份变化，返回取消函数
// 订阅时立即按当前在线身份各回放一次登录事件
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	current := make([]Identity, 0, len(m.active))
	for _, ident := range m.active {
		current = append(current, ident)
	}
	m.mu.Unlock()

	for _, ident := range current {
		fn(Event{Identity: ident, LoggedIn: true})
	}

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify(event Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(event)
	}
}

// Login 登录，认证错误原样返回（文案由认证实现固定）
func (m *Manager) Login(email, password string) (*Identity, error) {
	m.inflight.Add(1)
	defer m.inflight.Add(-1)

	identity, err := m.auth.Login(email, password)
	if err != nil {
		return nil, err
	}
	if err := m.ensureProfile(*identity); err != nil {
		return nil, err
	}
	m.activate(*identity)
	return identity, nil
}

// Register 注册并登录
func (m *Manager) Register(email, password, displayName string) (*Identity, error) {
	m.inflight.Add(1)
	defer m.inflight.Add(-1)

	identity, err := m.auth.Register(email, password, displayName)
	if err != nil {
		return nil, err
	}
	if err := m.ensureProfile(*identity); err != nil {
		return nil, err
	}
	m.activate(*identity)
	return identity, nil
}

// Logout 登出指定身份并广播登出事件
func (m *Manager) Logout(userID uint) {
	m.mu.Lock()
	identity, ok := m.active[userID]
	if ok {
		delete(m.active, userID)
	}
	m.mu.Unlock()
	if ok {
		m.notify(Event{Identity: identity, LoggedIn: false})
	}
}

// ChangePassword 修改密码
func (m *Manager) ChangePassword(userID uint, oldPassword, newPassword string) error {
	return m.auth.ChangePassword(userID, oldPassword, newPassword)
}

// Profile 获取资料；身份已认证但资料缺失时先补建默认资料
func (m *Manager) Profile(userID uint) (*models.Profile, error) {
	profile, err := m.profiles.Get(userID)
	if err == nil {
		return profile, nil
	}
	m.mu.Lock()
	identity, ok := m.active[userID]
	m.mu.Unlock()
	if !ok {
		return nil, err
	}
	if err := m.ensureProfile(identity); err != nil {
		return nil, err
	}
	return m.profiles.Get(userID)
}

// UpdateProfile 更新资料，只改给定的字段
func (m *Manager) UpdateProfile(userID uint, update ProfileUpdate) (*models.Profile, error) {
	profile, err := m.Profile(userID)
	if err != nil {
		return nil, err
	}
	if update.DisplayName != nil {
		profile.DisplayName = *update.DisplayName
	}
	if update.MonthlyBudget != nil {
		profile.MonthlyBudget = *update.MonthlyBudget
	}
	if update.Currency != nil {
		profile.Currency = *update.Currency
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}
	if err := m.profiles.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (m *Manager) activate(identity Identity) {
	m.mu.Lock()
	m.active[identity.UserID] = identity
	m.mu.Unlock()
	m.notify(Event{Identity: identity, LoggedIn: true})
}

// ensureProfile 资料缺失时创建默认资料
// 同一身份的并发首登通过 sync.Once 保证只创建一次
func (m *Manager) ensureProfile(identity Identity) error {
	m.mu.Lock()
	once, ok := m.ensuring[identity.UserID]
	if !ok {
		once = &sync.Once{}
		m.ensuring[identity.UserID] = once
	}
	m.mu.Unlock()

	var ensureErr error
	once.Do(func() {
		if _, err := m.profiles.Get(identity.UserID); err == nil {
			return
		}
		ensureErr = m.profiles.Create(&models.Profile{
			UserID:        identity.UserID,
			DisplayName:   identity.DisplayName,
			MonthlyBudget: models.DefaultMonthlyBudget,
			Currency:      models.DefaultCurrency,
		})
	})
	if ensureErr != nil {
		// 创建失败时允许下次重试
		m.mu.Lock()
		delete(m.ensuring, identity.UserID)
		m.mu.Unlock()
	}
	return ensureErr
}

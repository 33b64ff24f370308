// Package store 维护每个用户的消费记录内存状态
// 状态机: 空 -> 加载中 -> 就绪/出错；任何写操作成功后都整体重新拉取列表
package store

import (
	"errors"
	"io"
	"sync"
	"time"

	"gastos/daterange"
	"gastos/models"
	"gastos/service"
)

// State 列表状态
type State string

const (
	// StateEmpty 未绑定身份，列表为空
	StateEmpty State = "empty"
	// StateLoading 首次加载中
	StateLoading State = "loading"
	// StateReady 列表可用
	StateReady State = "ready"
	// StateError 最近一次操作失败，保留上一份可用列表
	StateError State = "error"
)

// 时间筛选预设
const (
	FilterTodos  = "todos"
	FilterHoy    = "hoy"
	FilterSemana = "semana"
	FilterMes    = "mes"
)

// ErrNotFound 目标消费记录不存在或不属于当前用户
var ErrNotFound = errors.New("消费记录不存在")

// Repository 消费记录持久化接口
type Repository interface {
	ListByUser(userID uint) ([]models.Expense, error)
	Create(expense *models.Expense) error
	Update(expense *models.Expense) error
	Delete(userID, expenseID uint) error
	Get(userID, expenseID uint) (*models.Expense, error)
}

// ReceiptStorage 票据文件存储接口
type ReceiptStorage interface {
	SaveReceipt(src io.Reader, userID uint) (string, error)
	Delete(uri string) error
}

// CreateExpenseInput 创建消费记录的输入
type CreateExpenseInput struct {
	Amount      float64
	Category    string
	Description string
	ExpenseDate time.Time
	Receipt     io.Reader // 可选票据，先存文件再写记录
}

// UpdateExpenseInput 更新消费记录的输入
type UpdateExpenseInput struct {
	ID          uint
	Amount      float64
	Category    string
	Description string
	ExpenseDate time.Time
	Receipt     io.Reader // 非 nil 时替换原票据
}

// Store 单个用户的消费记录状态
type Store struct {
	repo    Repository
	storage ReceiptStorage

	// opMu 串行化写操作，保证"写入+重拉"作为整体执行，
	// 避免两次并发写的重拉结果互相覆盖
	opMu sync.Mutex

	mu       sync.RWMutex
	userID   uint
	state    State
	expenses []models.Expense
	errMsg   string

	category   string // 分类筛选，todos 表示全部
	dateFilter string // 时间筛选预设
}

// New 创建一个尚未绑定身份的 Store
func New(repo Repository, storage ReceiptStorage) *Store {
	return &Store{
		repo:       repo,
		storage:    storage,
		state:      StateEmpty,
		expenses:   []models.Expense{},
		category:   FilterTodos,
		dateFilter: FilterTodos,
	}
}

// SetIdentity 绑定或清除身份
// userID 为 0 时清除: 列表清空、回到初始状态、不发请求
// 绑定新身份时立即加载该用户的列表
func (s *Store) SetIdentity(userID uint) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if userID == 0 {
		s.mu.Lock()
		s.userID = 0
		s.state = StateEmpty
		s.expenses = []models.Expense{}
		s.errMsg = ""
		s.category = FilterTodos
		s.dateFilter = FilterTodos
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.userID = userID
	s.state = StateLoading
	s.mu.Unlock()

	s.reload()
}

// Refresh 重新拉取当前身份的列表，未绑定身份时不做任何事
func (s *Store) Refresh() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.reload()
}

// reload 拉取整个列表；失败时进入出错状态但保留上一份列表
// 调用方必须持有 opMu
func (s *Store) reload() error {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == 0 {
		return nil
	}

	expenses, err := s.repo.ListByUser(userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.errMsg = "加载消费记录失败"
		return err
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	s.state = StateReady
	s.errMsg = ""
	s.expenses = expenses
	return nil
}

// Create 新建消费记录，成功后重拉列表
// 带票据时先保存票据文件，写记录失败则回收刚保存的文件
func (s *Store) Create(input CreateExpenseInput) (*models.Expense, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == 0 {
		return nil, errors.New("未登录")
	}

	receiptURL := ""
	if input.Receipt != nil {
		uri, err := s.storage.SaveReceipt(input.Receipt, userID)
		if err != nil {
			s.fail("创建消费记录失败")
			return nil, err
		}
		receiptURL = uri
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		ExpenseDate: input.ExpenseDate,
		ReceiptURL:  receiptURL,
	}
	if err := s.repo.Create(expense); err != nil {
		if receiptURL != "" {
			_ = s.storage.Delete(receiptURL)
		}
		s.fail("创建消费记录失败")
		return nil, err
	}

	_ = s.reload()
	return expense, nil
}

// Update 更新消费记录，成功后重拉列表
// 换票据时先存新票据，更新成功后再删旧票据
func (s *Store) Update(input UpdateExpenseInput) (*models.Expense, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == 0 {
		return nil, errors.New("未登录")
	}

	existing, err := s.repo.Get(userID, input.ID)
	if err != nil {
		s.fail("更新消费记录失败")
		return nil, err
	}

	oldReceipt := existing.ReceiptURL
	newReceipt := oldReceipt
	if input.Receipt != nil {
		uri, err := s.storage.SaveReceipt(input.Receipt, userID)
		if err != nil {
			s.fail("更新消费记录失败")
			return nil, err
		}
		newReceipt = uri
	}

	existing.Amount = input.Amount
	existing.Category = input.Category
	existing.Description = input.Description
	existing.ExpenseDate = input.ExpenseDate
	existing.ReceiptURL = newReceipt

	if err := s.repo.Update(existing); err != nil {
		if newReceipt != oldReceipt {
			_ = s.storage.Delete(newReceipt)
		}
		s.fail("更新消费记录失败")
		return nil, err
	}
	if input.Receipt != nil && oldReceipt != "" && oldReceipt != newReceipt {
		_ = s.storage.Delete(oldReceipt)
	}

	_ = s.reload()
	return existing, nil
}

// Delete 删除消费记录，先删票据文件再删记录，成功后重拉列表
func (s *Store) Delete(expenseID uint) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == 0 {
		return errors.New("未登录")
	}

	existing, err := s.repo.Get(userID, expenseID)
	if err != nil {
		s.fail("删除消费记录失败")
		return err
	}

	if existing.ReceiptURL != "" {
		if err := s.storage.Delete(existing.ReceiptURL); err != nil {
			s.fail("删除消费记录失败")
			return err
		}
	}

	if err := s.repo.Delete(userID, expenseID); err != nil {
		s.fail("删除消费记录失败")
		return err
	}

	_ = s.reload()
	return nil
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	s.state = StateError
	s.errMsg = msg
	s.mu.Unlock()
}

// SetCategory 设置分类筛选
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	s.category = category
	s.mu.Unlock()
}

// SetDateFilter 设置时间筛选预设，非法值按 todos 处理
func (s *Store) SetDateFilter(filter string) {
	switch filter {
	case FilterTodos, FilterHoy, FilterSemana, FilterMes:
	default:
		filter = FilterTodos
	}
	s.mu.Lock()
	s.dateFilter = filter
	s.mu.Unlock()
}

// StateInfo 状态快照
type StateInfo struct {
	State    State
	ErrorMsg string
	Category string
	Filter   string
}

// Info 返回当前状态快照
func (s *Store) Info() StateInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StateInfo{
		State:    s.state,
		ErrorMsg: s.errMsg,
		Category: s.category,
		Filter:   s.dateFilter,
	}
}

// All 返回完整列表的副本
func (s *Store) All() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Get 按ID查询当前用户的单条消费记录
func (s *Store) Get(expenseID uint) (*models.Expense, error) {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()
	if userID == 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(userID, expenseID)
}

// Filtered 返回按当前分类和时间筛选后的列表
// 周筛选的结束点取 now 而不是周日，与移动端的既有行为保持一致
func (s *Store) Filtered(now time.Time) []models.Expense {
	s.mu.RLock()
	expenses := s.expenses
	category := s.category
	dateFilter := s.dateFilter
	s.mu.RUnlock()

	filtered := service.FilterByCategory(expenses, category)

	switch dateFilter {
	case FilterHoy:
		filtered = service.FilterByDateRange(filtered, daterange.StartOfDay(now), daterange.EndOfDay(now))
	case FilterSemana:
		filtered = service.FilterByDateRange(filtered, daterange.StartOfWeek(now), now)
	case FilterMes:
		filtered = service.FilterByDateRange(filtered, daterange.StartOfMonth(now), daterange.EndOfMonth(now))
	}

	out := make([]models.Expense, len(filtered))
	copy(out, filtered)
	return out
}

// FilteredTotal 筛选后列表的总额
func (s *Store) FilteredTotal(now time.Time) float64 {
	return service.Total(s.Filtered(now))
}

// TodayTotal 今日消费总额（不受筛选影响）
func (s *Store) TodayTotal(now time.Time) float64 {
	return service.Total(service.FilterByDateRange(
		s.All(), daterange.StartOfDay(now), daterange.EndOfDay(now)))
}

// MonthTotal 本月消费总额（不受筛选影响）
func (s *Store) MonthTotal(now time.Time) float64 {
	return service.Total(service.FilterByDateRange(
		s.All(), daterange.StartOfMonth(now), daterange.EndOfMonth(now)))
}

// MonthTotalsByCategory 本月各分类消费总额，只含有记录的分类
func (s *Store) MonthTotalsByCategory(now time.Time) map[string]float64 {
	month := service.FilterByDateRange(
		s.All(), daterange.StartOfMonth(now), daterange.EndOfMonth(now))
	return service.TotalByCategory(month)
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"gastos/models"
	"gastos/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

// memRepo 内存消费记录仓储，避免每次请求都铺设 sqlmock 期望
type memRepo struct {
	expenses map[uint]*models.Expense
	nextID   uint
}

func newMemRepo() *memRepo {
	return &memRepo{expenses: make(map[uint]*models.Expense), nextID: 1}
}

func (r *memRepo) ListByUser(userID uint) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range r.expenses {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memRepo) Create(e *models.Expense) error {
	e.ID = r.nextID
	r.nextID++
	copied := *e
	r.expenses[e.ID] = &copied
	return nil
}

func (r *memRepo) Update(e *models.Expense) error {
	copied := *e
	r.expenses[e.ID] = &copied
	return nil
}

func (r *memRepo) Delete(userID, id uint) error {
	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return store.ErrNotFound
	}
	delete(r.expenses, id)
	return nil
}

func (r *memRepo) Get(userID, id uint) (*models.Expense, error) {
	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return nil, store.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

// memStorage 记录票据保存情况
type memStorage struct {
	saved   int
	deleted []string
}

func (s *memStorage) SaveReceipt(src io.Reader, userID uint) (string, error) {
	s.saved++
	return fmt.Sprintf("file:///data/recibos/recibo_%d_%d.jpg", userID, s.saved), nil
}

func (s *memStorage) Delete(uri string) error {
	s.deleted = append(s.deleted, uri)
	return nil
}

func newExpenseTestRouter(t *testing.T) (*gin.Engine, *memRepo, *memStorage) {
	repo := newMemRepo()
	stg := &memStorage{}
	stores := store.NewManager(repo, stg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	h := NewExpenseHandler(stores)
	router.POST("/expenses", h.Create)
	router.GET("/expenses", h.List)
	router.GET("/expenses/:id", h.Get)
	router.PUT("/expenses/:id", h.Update)
	router.DELETE("/expenses/:id", h.Delete)
	router.POST("/expenses/:id/receipt", h.UploadReceipt)
	return router, repo, stg
}

func expectCategoryQuery(mock sqlmock.Sqlmock, id string) {
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "icon", "color", "sort", "created_at", "updated_at"}).
			AddRow(id, "Comida", "🍔", "#FF6B6B", 10, time.Now(), time.Now()))
}

func TestExpenseHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	expectCategoryQuery(mock, "comida")

	router, repo, _ := newExpenseTestRouter(t)

	body := `{"amount":99.99,"category":"comida","description":"almuerzo","expense_date":"2024-01-15 12:30:00"}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	assert.Len(t, repo.expenses, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_InvalidCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs("inexistente").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router, _, _ := newExpenseTestRouter(t)

	body := `{"amount":99,"category":"inexistente","description":"x","expense_date":"2024-01-15 12:30:00"}`
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "无效的消费类别", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Create_FutureDate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	expectCategoryQuery(mock, "comida")

	router, _, _ := newExpenseTestRouter(t)

	future := time.Now().Add(48 * time.Hour).Format("2006-01-02 15:04:05")
	body := fmt.Sprintf(`{"amount":10,"category":"comida","description":"x","expense_date":"%s"}`, future)
	req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "消费日期不能晚于当前时间", resp["message"])
}

func TestExpenseHandler_List_Filters(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router, repo, _ := newExpenseTestRouter(t)

	now := time.Now()
	repo.Create(&models.Expense{UserID: 1, Amount: 50, Category: "comida", Description: "hoy", ExpenseDate: now})
	repo.Create(&models.Expense{UserID: 1, Amount: 30, Category: "transporte", Description: "mes pasado", ExpenseDate: now.AddDate(0, -1, 0)})
	repo.Create(&models.Expense{UserID: 2, Amount: 99, Category: "otros", Description: "de otra", ExpenseDate: now})

	// 不筛选：只看到自己的两条
	req := httptest.NewRequest("GET", "/expenses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])

	// 时间筛选 hoy
	req2 := httptest.NewRequest("GET", "/expenses?filtro=hoy", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	list := data["list"].([]interface{})
	first := list[0].(map[string]interface{})
	assert.Equal(t, "hoy", first["description"])

	// 类别筛选
	req3 := httptest.NewRequest("GET", "/expenses?categoria=transporte&filtro=todos", nil)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req3)

	require.NoError(t, json.Unmarshal(w3.Body.Bytes(), &resp))
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestExpenseHandler_Delete_NotFound(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router, _, _ := newExpenseTestRouter(t)

	req := httptest.NewRequest("DELETE", "/expenses/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}

func TestExpenseHandler_UploadReceipt(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router, repo, stg := newExpenseTestRouter(t)
	repo.Create(&models.Expense{UserID: 1, Amount: 20, Category: "comida", Description: "cena", ExpenseDate: time.Now()})

	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("receipt", "foto.jpg")
	require.NoError(t, err)
	part.Write([]byte("imagen"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/expenses/1/receipt", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Contains(t, data["receipt_url"], "recibo_1_")
	assert.Equal(t, 1, stg.saved)
}

package session

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"gastos/database"
	"gastos/models"
)

// 固定的认证错误文案，直接回传给客户端
var (
	ErrEmailTaken       = errors.New("该邮箱已被注册")
	ErrInvalidEmail     = errors.New("邮箱格式不正确")
	ErrWeakPassword     = errors.New("密码长度至少为6位")
	ErrWrongCredentials = errors.New("邮箱或密码错误")
	ErrAccountLocked    = errors.New("账号已被锁定，请联系管理员")
	ErrAuthFailed       = errors.New("认证失败，请稍后再试")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// GormAuthenticator 基于 gorm 用户表的认证实现
// 所有底层错误翻译成上面的固定文案，内部细节不外漏
type GormAuthenticator struct{}

// NewGormAuthenticator 创建认证实现
func NewGormAuthenticator() *GormAuthenticator {
	return &GormAuthenticator{}
}

// Register 注册新用户
func (a *GormAuthenticator) Register(email, password, displayName string) (*Identity, error) {
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	// 检查邮箱是否已注册
	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrAuthFailed
	}

	user := models.User{
		Email:       email,
		Password:    string(hashed),
		DisplayName: displayName,
		Status:      models.UserStatusActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, ErrAuthFailed
	}

	return &Identity{UserID: user.ID, Email: user.Email, DisplayName: user.DisplayName}, nil
}

// Login 校验邮箱和密码
func (a *GormAuthenticator) Login(email, password string) (*Identity, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrWrongCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrWrongCredentials
	}
	if user.Status == models.UserStatusLocked {
		return nil, ErrAccountLocked
	}
	return &Identity{UserID: user.ID, Email: user.Email, DisplayName: user.DisplayName}, nil
}

// ChangePassword 校验旧密码后更新为新密码
func (a *GormAuthenticator) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return ErrWrongCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrWrongCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrAuthFailed
	}
	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return ErrAuthFailed
	}
	return nil
}

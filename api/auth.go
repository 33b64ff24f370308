package api

import (
	"time"

	"gastos/config"
	"gastos/database"
	"gastos/middleware"
	"gastos/models"
	"gastos/service"
	"gastos/session"
	"gastos/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 认证与用户资料处理器
type AuthHandler struct {
	cfg          *config.Config
	sessions     *session.Manager
	storage      *storage.Service
	emailService *service.EmailService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config, sessions *session.Manager, store *storage.Service) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		sessions:     sessions,
		storage:      store,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password    string `json:"password" binding:"required,min=6,max=50" example:"password123"`
	DisplayName string `json:"display_name" binding:"omitempty,max=50" example:"Ana"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string           `json:"token"`
	UserInfo session.Identity `json:"user_info"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 使用邮箱和密码创建账号，注册成功即登录并返回 token。首次登录自动创建默认资料（预算 2000 美元）。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response{data=LoginResponse} "注册成功"
// @Failure 400 {object} Response "请求参数错误或邮箱已被注册"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	identity, err := h.sessions.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	token, err := middleware.GenerateToken(identity.UserID, identity.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	SuccessWithMessage(c, "注册成功", LoginResponse{Token: token, UserInfo: *identity})
}

// Login 用户登录
// @Summary 用户登录
// @Description 邮箱密码登录，获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "邮箱或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	identity, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}

	token, err := middleware.GenerateToken(identity.UserID, identity.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	Success(c, LoginResponse{Token: token, UserInfo: *identity})
}

// Logout 登出
// @Summary 登出
// @Description 登出当前身份，服务端清理该用户的列表状态
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "登出成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	h.sessions.Logout(userID)
	SuccessWithMessage(c, "已登出", nil)
}

// ProfileResponse 资料响应
type ProfileResponse struct {
	UserID        uint    `json:"user_id"`
	Email         string  `json:"email"`
	DisplayName   string  `json:"display_name"`
	AvatarURL     string  `json:"avatar_url"`
	MonthlyBudget float64 `json:"monthly_budget"`
	Currency      string  `json:"currency"`
}

// GetProfile 获取用户资料
// @Summary 获取当前用户资料
// @Description 获取当前登录用户的资料，资料缺失时自动补建默认资料
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=ProfileResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	profile, err := h.sessions.Profile(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "获取资料失败"))
		return
	}

	Success(c, ProfileResponse{
		UserID:        user.ID,
		Email:         user.Email,
		DisplayName:   profile.DisplayName,
		AvatarURL:     profile.AvatarURL,
		MonthlyBudget: profile.MonthlyBudget,
		Currency:      profile.Currency,
	})
}

// UpdateProfileRequest 更新资料请求，未提供的字段不修改
type UpdateProfileRequest struct {
	DisplayName   *string  `json:"display_name" binding:"omitempty,max=50" example:"Ana María"`
	MonthlyBudget *float64 `json:"monthly_budget" binding:"omitempty,gt=0" example:"1500"`
	Currency      *string  `json:"currency" binding:"omitempty,len=3" example:"MXN"`
}

// UpdateProfile 更新用户资料
// @Summary 更新当前用户资料
// @Description 更新显示名、月度预算或展示币种，只修改请求中携带的字段
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "资料信息"
// @Success 200 {object} Response{data=models.Profile} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	profile, err := h.sessions.UpdateProfile(userID, session.ProfileUpdate{
		DisplayName:   req.DisplayName,
		MonthlyBudget: req.MonthlyBudget,
		Currency:      req.Currency,
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "更新资料失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", profile)
}

// UploadAvatar 上传头像
// @Summary 上传头像
// @Description 上传当前用户头像（multipart 表单字段 avatar），同一用户的新头像覆盖旧头像
// @Tags 认证
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像图片"
// @Success 200 {object} Response{data=models.Profile} "上传成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/avatar [put]
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		BadRequest(c, "请上传头像文件（表单字段 avatar）")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "读取上传文件失败")
		return
	}
	defer file.Close()

	uri, err := h.storage.SaveAvatar(file, userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "保存头像失败"))
		return
	}

	profile, err := h.sessions.UpdateProfile(userID, session.ProfileUpdate{AvatarURL: &uri})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "更新资料失败"))
		return
	}

	SuccessWithMessage(c, "头像已更新", profile)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"oldpassword123"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Description 修改当前用户密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "密码信息"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "原密码错误"
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.sessions.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		Unauthorized(c, err.Error())
		return
	}

	SuccessWithMessage(c, "密码修改成功", nil)
}

// ============== 密码重置相关接口 ==============

// RequestPasswordResetRequest 请求密码重置
type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email" example:"ana@example.com"`
}

// RequestPasswordReset 请求密码重置（发送验证码）
// @Summary 请求密码重置
// @Description 通过邮箱发送密码重置验证码
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RequestPasswordResetRequest true "密码重置请求"
// @Success 200 {object} Response "验证码已发送"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 429 {object} Response "请求过于频繁"
// @Router /api/v1/auth/password/request-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请输入有效的邮箱地址")
		return
	}

	// 查找用户
	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// 为了安全，即使用户不存在也返回成功
		SuccessWithMessage(c, "如果该邮箱已注册，您将收到密码重置验证码", nil)
		return
	}

	// 检查是否有未使用的有效验证码（防止频繁发送）
	var existingReset models.PasswordReset
	if err := database.DB.Where("user_id = ? AND used = ? AND expires_at > ?",
		user.ID, false, time.Now()).First(&existingReset).Error; err == nil {
		// 如果距离上次发送不到1分钟，拒绝发送
		if time.Since(existingReset.CreatedAt) < time.Minute {
			TooManyRequests(c, "请求过于频繁，请稍后再试")
			return
		}
		// 使旧验证码失效
		database.DB.Model(&existingReset).Update("used", true)
	}

	// 生成6位数字验证码
	code, err := models.GenerateVerificationCode()
	if err != nil {
		InternalError(c, "生成验证码失败")
		return
	}

	// 保存重置令牌（使用验证码作为 token）
	passwordReset := models.PasswordReset{
		UserID:    user.ID,
		Token:     code,
		Email:     req.Email,
		ExpiresAt: time.Now().Add(10 * time.Minute), // 10分钟有效期
	}

	if err := database.DB.Create(&passwordReset).Error; err != nil {
		InternalError(c, "创建重置令牌失败")
		return
	}

	// 发送邮件
	if err := h.emailService.SendPasswordResetEmail(req.Email, user.DisplayName, code); err != nil {
		database.DB.Delete(&passwordReset)
		InternalError(c, "邮件发送失败: "+err.Error())
		return
	}

	SuccessWithMessage(c, "密码重置验证码已发送，请查收邮件", nil)
}

// VerifyResetCodeRequest 验证重置验证码
type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email" example:"ana@example.com"`
	Code  string `json:"code" binding:"required,len=6" example:"123456"`
}

// VerifyResetCode 验证重置验证码
// @Summary 验证重置验证码
// @Description 验证密码重置验证码是否正确
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body VerifyResetCodeRequest true "验证请求"
// @Success 200 {object} Response "验证成功"
// @Failure 400 {object} Response "验证码错误或已过期"
// @Router /api/v1/auth/password/verify-code [post]
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误")
		return
	}

	var passwordReset models.PasswordReset
	if err := database.DB.Where("email = ? AND token = ?", req.Email, req.Code).First(&passwordReset).Error; err != nil {
		BadRequest(c, "验证码错误")
		return
	}

	if !passwordReset.IsValid() {
		if passwordReset.Used {
			BadRequest(c, "验证码已被使用")
		} else {
			BadRequest(c, "验证码已过期，请重新获取")
		}
		return
	}

	SuccessWithMessage(c, "验证成功", nil)
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email" example:"ana@example.com"`
	Code        string `json:"code" binding:"required,len=6" example:"123456"`
	NewPassword string `json:"new_password" binding:"required,min=6" example:"newpassword123"`
}

// ResetPassword 重置密码
// @Summary 重置密码
// @Description 使用验证码重置密码
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "重置密码请求"
// @Success 200 {object} Response "密码重置成功"
// @Failure 400 {object} Response "验证码错误或已过期"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误")
		return
	}

	// 查找验证码
	var passwordReset models.PasswordReset
	if err := database.DB.Where("email = ? AND token = ?", req.Email, req.Code).First(&passwordReset).Error; err != nil {
		BadRequest(c, "验证码错误")
		return
	}

	if !passwordReset.IsValid() {
		if passwordReset.Used {
			BadRequest(c, "验证码已被使用")
		} else {
			BadRequest(c, "验证码已过期，请重新获取")
		}
		return
	}

	// 加密新密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	// 更新密码
	if err := database.DB.Model(&models.User{}).Where("id = ?", passwordReset.UserID).Update("password", string(hashedPassword)).Error; err != nil {
		InternalError(c, "更新密码失败")
		return
	}

	// 标记验证码为已使用
	database.DB.Model(&passwordReset).Update("used", true)

	// 使该用户所有未使用的重置令牌失效
	database.DB.Model(&models.PasswordReset{}).
		Where("user_id = ? AND used = ?", passwordReset.UserID, false).
		Update("used", true)

	SuccessWithMessage(c, "密码重置成功，请使用新密码登录", nil)
}

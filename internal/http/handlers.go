package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vboard/internal/auth"
	"vboard/internal/mail"
	"vboard/internal/models"
	"vboard/internal/ws"
)

// Env carries the collaborators every handler needs.
type Env struct {
	DB      *gorm.DB
	Mailer  mail.Sender
	Hub     *ws.Hub
	Secret  string
	BaseURL string
}

func (e *Env) verifier() auth.EmailVerifier {
	return auth.EmailVerifier{Secret: e.Secret}
}

// WsMessage is the JSON envelope for board event broadcasts.
type WsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func (e *Env) broadcast(msg WsMessage) {
	if e.Hub == nil {
		return
	}
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshalling WS message: %v", err)
		return
	}
	e.Hub.Broadcast <- jsonMsg
}

// --- Structs for request binding ---

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --- Account lifecycle handlers ---

func (e *Env) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// Pre-check mirrors the flow users see on the signup form; the unique
	// index on email catches the check-then-insert race.
	var count int64
	if err := e.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		log.Printf("Error checking email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
		return
	}

	record, err := auth.NewPasswordRecord(input.Password)
	if err != nil {
		log.Printf("Error creating password record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	user := models.User{
		Username: input.Username,
		Password: record,
		Email:    input.Email,
	}
	if err := e.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already in use"})
			return
		}
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	link := e.BaseURL + "/verify-email?" + url.Values{
		"username": {input.Username},
		"token":    {e.verifier().Token(input.Username)},
	}.Encode()
	if err := e.Mailer.SendVerification(input.Email, link); err != nil {
		// The account exists but cannot be verified without the link, so the
		// failure must reach the caller.
		log.Printf("Error sending verification mail: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration complete. Check your email to verify your account."})
}

func (e *Env) VerifyEmail(c *gin.Context) {
	username := c.Query("username")
	token := c.Query("token")

	if !e.verifier().Check(username, token) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification link"})
		return
	}

	tx := e.DB.Model(&models.User{}).Where("username = ?", username).Update("verified", true)
	if tx.Error != nil {
		log.Printf("Error verifying email: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

func (e *Env) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := e.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Error fetching user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	if !auth.VerifyPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
		return
	}
	if !user.Verified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not verified"})
		return
	}

	id := auth.Identity{Username: user.Username, Email: user.Email}
	token, err := auth.IssueSession(e.Secret, id)
	if err != nil {
		log.Printf("Error issuing session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"username": id.Username,
		"email":    id.Email,
	})
}

func (e *Env) CheckUsername(c *gin.Context) {
	username := c.Query("username")

	var count int64
	if err := e.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Printf("Error checking username: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": count == 0})
}

// CheckAuth reports whether the caller holds a valid session. Unlike the auth
// gate it never rejects; an absent or bad token just reads as anonymous.
func (e *Env) CheckAuth(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	id, err := auth.ParseSession(e.Secret, token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": id})
}

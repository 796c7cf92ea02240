package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/habitlog/internal/db"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 校验管理员账号并写入会话
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if isJSONRequest(c) {
		if !bindJSON(c, &payload, "请求参数不合法") {
			return
		}
	} else {
		payload.Username = c.PostForm("username")
		payload.Password = c.PostForm("password")
	}

	user, err := db.Authenticate(a.db, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, db.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "用户名或密码错误")
			return
		}
		respondError(c, http.StatusInternalServerError, "登录失败")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// Session 返回当前登录状态
func (a *API) Session(c *gin.Context) {
	if !a.authEnabled {
		c.JSON(http.StatusOK, gin.H{"auth_enabled": false, "authenticated": true})
		return
	}

	session := sessions.Default(c)
	username, _ := session.Get("username").(string)
	c.JSON(http.StatusOK, gin.H{
		"auth_enabled":  true,
		"authenticated": session.Get("user_id") != nil,
		"username":      username,
	})
}

// AuthRequired 未配置管理员时放行，否则要求已登录会话
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authEnabled {
			c.Next()
			return
		}
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}

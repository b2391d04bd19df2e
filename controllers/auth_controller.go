package controllers

import (
	"errors"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login → JWT สำหรับพนักงาน
func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ac.Svc.Login(req.Email, req.Password)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			resp.Unauthorized(c, vErr.Msg)
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

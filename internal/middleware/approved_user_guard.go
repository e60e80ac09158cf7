package middleware

import (
	"net/http"

	"mestej/internal/domain/model"
	"mestej/internal/repository"

	"github.com/labstack/echo/v4"
)

// 注文系のエンドポイント用。
// DBの最新ステータスがapprovedのユーザーだけ通す。
// tokenが有効でも承認前・ブロック後は403。
func ApprovedUserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//adminは承認審査の対象外
			if user.Role == model.RoleAdmin {
				return next(c)
			}

			if user.Status != model.UserStatusApproved {
				return c.JSON(http.StatusForbidden, errorJSON("account not approved"))
			}

			return next(c)
		}
	}
}

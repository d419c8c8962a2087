package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentStaffID extracts the staff identifier JWTAuth stored in
// context.  JWT numeric claims decode as float64; string subjects are
// passed through.  Unauthenticated requests rate-limit under "anon".
func currentStaffID(c echo.Context) string {
	switch v := c.Get("staff_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	}
	return "anon"
}

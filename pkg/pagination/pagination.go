package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds validated page/limit query values.
type Params struct {
	Page  int
	Limit int
}

// Parse reads ?page= and ?limit=, falling back to defaults on junk and capping limit at MaxLimit.
func Parse(c *gin.Context) Params {
	return Params{
		Page:  queryInt(c, "page", DefaultPage, DefaultPage),
		Limit: min(queryInt(c, "limit", DefaultLimit, 1), MaxLimit),
	}
}

func queryInt(c *gin.Context, key string, def, floor int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < floor {
		return def
	}
	return v
}

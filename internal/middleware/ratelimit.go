package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/logger"
)

// RateLimit throttles per authenticated user, or per client IP before
// authentication, using an in-process store. rate uses the
// limiter format, e.g. "20-M". An empty or invalid rate disables limiting.
func RateLimit(rate string) gin.HandlerFunc {
	if rate == "" {
		return func(c *gin.Context) { c.Next() }
	}

	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		logger.ErrorLogger.WithError(err).WithField("rate", rate).Warn("invalid rate limit, disabled")
		return func(c *gin.Context) { c.Next() }
	}

	l := limiter.New(memory.NewStore(), r)
	return mgin.NewMiddleware(l,
		mgin.WithKeyGetter(rateKey),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			abort(c, http.StatusTooManyRequests, "rate_limited")
		}),
	)
}

func rateKey(c *gin.Context) string {
	if id := actor.UserIDOf(ActorFrom(c)); id != 0 {
		return "user:" + uintToString(id)
	}
	return "ip:" + c.ClientIP()
}

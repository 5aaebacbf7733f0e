package middleware

import (
	"net/http"
	"sync"
	"time"

	"riceweigh/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Confirmation rate limiter ────────────────────────────────────────────────
// The delete passcode is short, so the exchange endpoint gets a tight
// per-IP budget to keep someone from just cycling through codes.

type ipEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	confirmMap   = make(map[string]*ipEntry)
	confirmMapMu sync.Mutex
)

// ConfirmRateLimiter limits passcode attempts to 10 per minute per IP.
func ConfirmRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		confirmMapMu.Lock()
		entry, exists := confirmMap[ip]
		if !exists {
			entry = &ipEntry{}
			confirmMap[ip] = entry
		}
		confirmMapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			// Reset sliding window
			entry.count = 0
			entry.windowEnd = now.Add(time.Minute)
		}

		entry.count++
		if entry.count > 10 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Nhập mã quá nhiều lần. Vui lòng đợi 1 phút."))
			return
		}
		c.Next()
	}
}

// ── General API rate limiter ──────────────────────────────────────────────────

type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	apiRateMap   = make(map[string]*rateEntry)
	apiRateMapMu sync.Mutex
)

// RateLimiter returns a general-purpose sliding-window rate limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		apiRateMapMu.Lock()
		entry, exists := apiRateMap[ip]
		if !exists {
			entry = &rateEntry{}
			apiRateMap[ip] = entry
		}
		apiRateMapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Quá nhiều yêu cầu. Vui lòng thử lại sau."))
			return
		}
		c.Next()
	}
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically removes expired entries from both rate limiter maps to
// prevent memory growth from IPs that never return.

const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		confirmMapMu.Lock()
		purgedConfirm := 0
		for ip, entry := range confirmMap {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(confirmMap, ip)
				purgedConfirm++
			}
			entry.mu.Unlock()
		}
		confirmMapMu.Unlock()

		apiRateMapMu.Lock()
		purgedAPI := 0
		for ip, entry := range apiRateMap {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(apiRateMap, ip)
				purgedAPI++
			}
			entry.mu.Unlock()
		}
		apiRateMapMu.Unlock()

		if purgedConfirm > 0 || purgedAPI > 0 {
			log.Debug().
				Int("confirm_entries_purged", purgedConfirm).
				Int("api_entries_purged", purgedAPI).
				Msg("rate limiter maps purged")
		}
	}
}

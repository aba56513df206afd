package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-storefront/internal/domain"
	"clinic-storefront/internal/storeapi"
)

// cookieName persists the upstream session token in the browser.
const cookieName = "wc_cart_token"

// cookieMaxAge is 30 days, matching the upstream session lifetime.
const cookieMaxAge = 30 * 24 * 60 * 60

// getCartHandler proxies the read-only cart request.
func getCartHandler(client *storeapi.Client, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		res, err := client.FetchCartRaw(c.Request.Context(), token)
		if err != nil {
			logger.Printf("fetch cart: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "cart backend unreachable"})
			return
		}
		relay(c, res)
	}
}

// postCartHandler proxies a cart mutation. The body carries the
// action plus action-specific fields; everything but the action is
// forwarded verbatim.
func postCartHandler(client *storeapi.Client, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
			return
		}

		action, _ := body["action"].(string)
		delete(body, "action")
		payload, err := json.Marshal(body)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "encode payload failed"})
			return
		}

		token, _ := c.Cookie(cookieName)
		res, err := client.MutateRaw(c.Request.Context(), token, action, payload)
		if err != nil {
			var invalid *domain.InvalidActionError
			if errors.As(err, &invalid) {
				c.JSON(http.StatusBadRequest, gin.H{
					"message": fmt.Sprintf("Invalid action. Must be one of: %s", strings.Join(invalid.Valid, ", ")),
				})
				return
			}
			logger.Printf("cart mutation %q: %v", action, err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "cart backend unreachable"})
			return
		}
		relay(c, res)
	}
}

// relay passes the upstream response through untouched and renews the
// session cookie whenever the upstream issued a new token.
func relay(c *gin.Context, res *storeapi.Result) {
	if res.Token != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, res.Token, cookieMaxAge, "/", "", false, true)
	}
	status := res.Status
	if res.OK() {
		status = http.StatusOK
	}
	c.Data(status, "application/json", res.Body)
}

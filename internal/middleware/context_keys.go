package middleware

import "github.com/gin-gonic/gin"

// deviceIDKey is the key used to store the authenticated device's ID in the Gin context.
const deviceIDKey = contextKey("deviceID")

// GetDeviceIDFromContext retrieves the authenticated device ID from the Gin context.
// It returns the device ID and a boolean indicating if it was found.
func GetDeviceIDFromContext(c *gin.Context) (string, bool) {
	deviceIDVal, exists := c.Get(string(deviceIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(deviceIDKey)
		if ctxVal != nil {
			return ctxVal.(string), true
		}
		return "", false
	}

	deviceID, ok := deviceIDVal.(string)
	if !ok {
		return "", false
	}

	return deviceID, true
}

package handler

import "github.com/gin-gonic/gin"

// development controls whether raw error detail leaks into responses.
var development bool

// SetDevelopment toggles error detail in failure envelopes. Call once at
// startup.
func SetDevelopment(on bool) { development = on }

// respondData wraps a payload in the uniform success envelope.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondMessage is for mutations whose result is just an acknowledgement.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

// respondError emits the uniform failure envelope. The underlying error is
// attached only in development mode.
func respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"success": false, "message": message}
	if development && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

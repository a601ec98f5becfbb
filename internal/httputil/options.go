// Package httputil contains helpers shared by the handlers of the mock API.
package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

func options(c *gin.Context, allow string) {
	c.Header("allow", allow)
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) {
	options(c, "OPTIONS, GET")
}

func OptionsPost(c *gin.Context) {
	options(c, "OPTIONS, POST")
}

func OptionsDelete(c *gin.Context) {
	options(c, "OPTIONS, DELETE")
}

func OptionsGetPost(c *gin.Context) {
	options(c, "OPTIONS, GET, POST")
}

func OptionsGetDelete(c *gin.Context) {
	options(c, "OPTIONS, GET, DELETE")
}

func OptionsGetPutDelete(c *gin.Context) {
	options(c, "OPTIONS, GET, PUT, DELETE")
}

// Package params binds path and query parameters for the gin handlers.
package params

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// PathID binds a positive integer path parameter.
func PathID(c *gin.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, fmt.Errorf("invalid path parameter %s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid path parameter %s: must be greater than 0", name)
	}
	return id, nil
}

// Query binds a required query parameter into dest.
func Query(c *gin.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, true, name, c.Request.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid query parameter %s: %w", name, err)
	}
	return nil
}

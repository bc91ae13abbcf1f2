package meta

import (
	"os"
	"regexp"
)

var envExpr = regexp.MustCompile(`\$\{env\.([A-Za-z0-9_]*)\}`)

// expandEnvExpr replaces every ${env.KEY} with the value of the environment
// variable KEY, or "" when unset. Malformed expressions are kept literally.
func expandEnvExpr(value string) string {
	return envExpr.ReplaceAllStringFunc(value, func(expr string) string {
		key := envExpr.FindStringSubmatch(expr)[1]
		return os.Getenv(key)
	})
}

package env

import (
	"os"
	"strings"

	"github.com/echoverse-team/echoverse/internal/envvar"
)

// Environment identifies the runtime environment.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// FromEnv resolves the environment from ECHOVERSE_ENV.
// Anything that is not recognizably production counts as development.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.EchoverseEnv)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}
